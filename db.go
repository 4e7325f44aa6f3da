package main

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lossdesk/models"
)

func openDB(cfg Config) (*gorm.DB, error) {
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; this service requires a Postgres DSN in DB_DSN")
	}
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	// Schema migration is controlled with DB_AUTO_MIGRATE (default true) so
	// locked-down production roles can run with it off.
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&models.Report{}); err != nil {
			return nil, fmt.Errorf("migrate reports: %w", err)
		}
	}
	return db, nil
}
