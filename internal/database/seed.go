package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/security"
)

// SeedDemo creates a verified demo account with a week of tracker data.
// Idempotent: an existing demo account is left untouched.
func SeedDemo(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("seed: demo email and password are required")
	}

	var existing domain.User
	err := db.Where("email = ? AND verified = ?", email, true).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed: look up demo account: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed: hash demo password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := domain.User{Email: email, Name: "Demo User", PasswordHash: hash, Verified: true}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		settings := domain.DefaultSettings(user.ID)
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		for i := 0; i < 7; i++ {
			day := today.AddDate(0, 0, -i)
			rows := []any{
				&domain.Activity{UserID: user.ID, Date: day, Workouts: 1 + i%2, Calories: 250 + 40*i},
				&domain.WeightEntry{UserID: user.ID, Date: day, Weight: 72.5 - 0.1*float64(i)},
				&domain.StepsEntry{UserID: user.ID, Date: day, Steps: 6000 + 500*i},
			}
			for _, row := range rows {
				if err := tx.Create(row).Error; err != nil {
					return err
				}
			}
		}
		return tx.Create(&domain.Milestone{
			UserID:      user.ID,
			Description: "Joined SyncFit",
			Date:        today,
		}).Error
	})
}
