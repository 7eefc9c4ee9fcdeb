package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	// Emails are compared case-insensitively at login
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower
		ON users (LOWER(email));
	`).Error
}
