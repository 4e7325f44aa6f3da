package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment. It is
// built once in main and injected into the components; core packages never
// touch the environment themselves.
type Config struct {
	Addr           string
	DBDSN          string
	AutoMigrate    bool
	MemoryStore    bool // run without Postgres (local dev, demos)
	TelegramToken  string
	TelegramChatID string
	LogLevel       string
	WebDir         string
}

func loadConfig() Config {
	// Auto-load ./.env if present before reading vars; existing environment
	// variables win.
	_ = godotenv.Load()
	return Config{
		Addr:           envOr("ADDR", ":8081"),
		DBDSN:          os.Getenv("DB_DSN"),
		AutoMigrate:    envBool("DB_AUTO_MIGRATE", true),
		MemoryStore:    envBool("DEV_MEMORY_STORE", false),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		WebDir:         envOr("WEB_DIR", "web"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return def
	}
	return !(v == "false" || v == "0" || v == "no")
}
