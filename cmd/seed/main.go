// Command seed inserts a handful of sample loss reports, useful for local
// development and demo environments. Each run uses fresh explicit request
// identities, so repeated runs add new rows instead of being deduplicated.
package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lossdesk/models"
	"lossdesk/store"
)

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	if err := db.AutoMigrate(&models.Report{}); err != nil {
		log.Fatalf("migrate reports: %v", err)
	}

	s := store.NewPostgres(db, nil)
	samples := []store.Input{
		{Manager: "Ivan", Restaurant: "01 — Astana", Reason: "spill", Amount: "1500.7", Start: "07.01.2026 10:00", End: "07.01.2026 11:00"},
		{Manager: "Olga", Restaurant: "02 — Almaty", Reason: "breakage", Amount: "800", Start: "07.01.2026 10:00", End: "07.01.2026 12:30", Comment: "tray dropped"},
		{Manager: "Aset", Restaurant: "Main Street", Reason: "expiry", Amount: "240.5"},
	}
	for _, in := range samples {
		in.Identity = uuid.NewString()
		row, err := s.Create(context.Background(), in)
		if err != nil {
			log.Fatalf("seed %q: %v", in.Reason, err)
		}
		log.Printf("seeded report id=%d identity=%s", row.ID, row.RequestIdentity)
	}
}
