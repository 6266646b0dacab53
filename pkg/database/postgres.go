package database

import (
	"github.com/sirupsen/logrus"
	"github.com/techclub/club-portal/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Registration{}, &models.Inquiry{}); err != nil {
		logrus.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one active registration per (event, user).
	// Backstop for the duplicate race; the row lock handles capacity.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_active
		ON registrations (event_id, user_id)
		WHERE status <> 'cancelled'
	`)

	return db
}
