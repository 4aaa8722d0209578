package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/syncfit/syncfit-backend/internal/domain"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository stores the per-user preferences singleton.
type SettingsRepository interface {
	FindByUserID(userID uint) (*domain.Settings, error)
	Upsert(s *domain.Settings) error
	DeleteForUser(userID uint) error
}

type GormSettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) FindByUserID(userID uint) (*domain.Settings, error) {
	var s domain.Settings
	if err := r.db.Where("user_id = ?", userID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormSettingsRepository) Upsert(s *domain.Settings) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "notifications", "language", "updated_at"}),
	}).Create(s).Error
}

func (r *GormSettingsRepository) DeleteForUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.Settings{}).Error
}
