package database

import (
	"gorm.io/gorm"

	"github.com/syncfit/syncfit-backend/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Activity{},
		&domain.WeightEntry{},
		&domain.StepsEntry{},
		&domain.NutritionEntry{},
		&domain.BMIRecord{},
		&domain.CalorieCalc{},
		&domain.Milestone{},
		&domain.Settings{},
		&domain.Feedback{},
	)
}
