package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lossdesk/notifier"
	"lossdesk/store"
)

func main() {
	cfg := loadConfig()
	log := newLogger(cfg.LogLevel)

	// Support a lightweight migrate command: `./lossdesk migrate`.
	// It runs AutoMigrate and exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		cfg.AutoMigrate = true
		if _, err := openDB(cfg); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("migration completed")
		return
	}

	var n notifier.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		n = notifier.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	} else {
		log.Info("telegram notifications disabled (TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID unset)")
	}
	hook := insertHook(n, log)

	var st store.Store
	if cfg.MemoryStore {
		log.Warn("using in-memory store; data is lost on restart")
		st = store.NewMemory(hook)
	} else {
		db, err := openDB(cfg)
		if err != nil {
			log.WithError(err).Fatal("database init failed")
		}
		st = store.NewPostgres(db, hook)
	}

	r := gin.Default()
	s := &server{store: st, log: log, webDir: cfg.WebDir}
	s.setupRoutes(r)

	log.WithField("addr", cfg.Addr).Info("listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
