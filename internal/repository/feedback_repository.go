package repository

import (
	"gorm.io/gorm"

	"github.com/syncfit/syncfit-backend/internal/domain"
)

// FeedbackRepository stores public product reviews.
type FeedbackRepository interface {
	Create(f *domain.Feedback) error
	ListRecent(limit int) ([]domain.Feedback, error)
}

type GormFeedbackRepository struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

func (r *GormFeedbackRepository) Create(f *domain.Feedback) error { return r.db.Create(f).Error }

func (r *GormFeedbackRepository) ListRecent(limit int) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := r.db.Order("created_at desc").Limit(limit).Find(&out).Error
	return out, err
}
