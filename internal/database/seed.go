package database

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/snapseek/api/internal/models"
	"gorm.io/gorm"
)

// SeedDevData populates the database with development test data.
// Idempotent: skips if data already exists.
func SeedDevData(db *gorm.DB) error {
	var existingUser models.User
	result := db.Where("email = ?", "dev@snapseek.local").First(&existingUser)
	if result.Error == nil {
		slog.Info("seed data already exists, skipping")
		return nil
	}

	googleID := "dev-google-" + uuid.NewString()
	user := models.User{
		GoogleID: &googleID,
		Email:    "dev@snapseek.local",
		Name:     "Dev User",
		Provider: models.ProviderGoogle,
	}

	if err := db.Create(&user).Error; err != nil {
		return err
	}

	for _, term := range []string{"mountains", "mountains", "ocean", "forest", "city lights"} {
		record := models.SearchRecord{UserID: user.ID, Term: term}
		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}

	slog.Info("seed data created", slog.Uint64("user_id", uint64(user.ID)))
	return nil
}
