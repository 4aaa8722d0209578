package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/syncfit/syncfit-backend/internal/domain"
)

var ErrEntryNotFound = errors.New("entry not found")

// ActivityRepository stores daily workout logs.
type ActivityRepository interface {
	FindByUserAndDate(userID uint, date time.Time) (*domain.Activity, error)
	Create(a *domain.Activity) error
	Save(a *domain.Activity) error
	ListRange(userID uint, from, to time.Time) ([]domain.Activity, error)
	ListAll(userID uint) ([]domain.Activity, error)
	DeleteAll(userID uint) error
}

type GormActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &GormActivityRepository{db: db} }

func (r *GormActivityRepository) FindByUserAndDate(userID uint, date time.Time) (*domain.Activity, error) {
	var a domain.Activity
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *GormActivityRepository) Create(a *domain.Activity) error { return r.db.Create(a).Error }
func (r *GormActivityRepository) Save(a *domain.Activity) error   { return r.db.Save(a).Error }

func (r *GormActivityRepository) ListRange(userID uint, from, to time.Time) ([]domain.Activity, error) {
	var out []domain.Activity
	err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date asc").Find(&out).Error
	return out, err
}

func (r *GormActivityRepository) ListAll(userID uint) ([]domain.Activity, error) {
	var out []domain.Activity
	err := r.db.Where("user_id = ?", userID).Order("date asc").Find(&out).Error
	return out, err
}

func (r *GormActivityRepository) DeleteAll(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.Activity{}).Error
}

// WeightRepository stores daily body-weight measurements.
type WeightRepository interface {
	FindByUserAndDate(userID uint, date time.Time) (*domain.WeightEntry, error)
	Create(w *domain.WeightEntry) error
	Save(w *domain.WeightEntry) error
	ListSince(userID uint, since time.Time) ([]domain.WeightEntry, error)
	DeleteAll(userID uint) error
}

type GormWeightRepository struct{ db *gorm.DB }

func NewWeightRepository(db *gorm.DB) WeightRepository { return &GormWeightRepository{db: db} }

func (r *GormWeightRepository) FindByUserAndDate(userID uint, date time.Time) (*domain.WeightEntry, error) {
	var w domain.WeightEntry
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *GormWeightRepository) Create(w *domain.WeightEntry) error { return r.db.Create(w).Error }
func (r *GormWeightRepository) Save(w *domain.WeightEntry) error   { return r.db.Save(w).Error }

func (r *GormWeightRepository) ListSince(userID uint, since time.Time) ([]domain.WeightEntry, error) {
	var out []domain.WeightEntry
	err := r.db.Where("user_id = ? AND date >= ?", userID, since).Order("date asc").Find(&out).Error
	return out, err
}

func (r *GormWeightRepository) DeleteAll(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.WeightEntry{}).Error
}

// StepsRepository stores one step-count row per user per day.
type StepsRepository interface {
	FindForDay(userID uint, day time.Time) (*domain.StepsEntry, error)
	Create(s *domain.StepsEntry) error
	Save(s *domain.StepsEntry) error
	DeleteAll(userID uint) error
}

type GormStepsRepository struct{ db *gorm.DB }

func NewStepsRepository(db *gorm.DB) StepsRepository { return &GormStepsRepository{db: db} }

func (r *GormStepsRepository) FindForDay(userID uint, day time.Time) (*domain.StepsEntry, error) {
	var s domain.StepsEntry
	err := r.db.Where("user_id = ? AND date >= ?", userID, day).Order("date asc").First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormStepsRepository) Create(s *domain.StepsEntry) error { return r.db.Create(s).Error }
func (r *GormStepsRepository) Save(s *domain.StepsEntry) error   { return r.db.Save(s).Error }

func (r *GormStepsRepository) DeleteAll(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.StepsEntry{}).Error
}

// NutritionRepository stores one nutrition row per user per day.
type NutritionRepository interface {
	FindByUserAndDate(userID uint, date time.Time) (*domain.NutritionEntry, error)
	Create(n *domain.NutritionEntry) error
	Save(n *domain.NutritionEntry) error
	ListSince(userID uint, since time.Time) ([]domain.NutritionEntry, error)
	DeleteAll(userID uint) error
}

type GormNutritionRepository struct{ db *gorm.DB }

func NewNutritionRepository(db *gorm.DB) NutritionRepository {
	return &GormNutritionRepository{db: db}
}

func (r *GormNutritionRepository) FindByUserAndDate(userID uint, date time.Time) (*domain.NutritionEntry, error) {
	var n domain.NutritionEntry
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *GormNutritionRepository) Create(n *domain.NutritionEntry) error { return r.db.Create(n).Error }
func (r *GormNutritionRepository) Save(n *domain.NutritionEntry) error   { return r.db.Save(n).Error }

func (r *GormNutritionRepository) ListSince(userID uint, since time.Time) ([]domain.NutritionEntry, error) {
	var out []domain.NutritionEntry
	err := r.db.Where("user_id = ? AND date >= ?", userID, since).Order("date asc").Find(&out).Error
	return out, err
}

func (r *GormNutritionRepository) DeleteAll(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.NutritionEntry{}).Error
}

// CalculatorRepository stores append-only BMI and calorie calculator results.
type CalculatorRepository interface {
	CreateBMI(b *domain.BMIRecord) error
	ListBMI(userID uint) ([]domain.BMIRecord, error)
	CreateCalorieCalc(c *domain.CalorieCalc) error
	ListCalorieCalcs(userID uint) ([]domain.CalorieCalc, error)
	DeleteAll(userID uint) error
}

type GormCalculatorRepository struct{ db *gorm.DB }

func NewCalculatorRepository(db *gorm.DB) CalculatorRepository {
	return &GormCalculatorRepository{db: db}
}

func (r *GormCalculatorRepository) CreateBMI(b *domain.BMIRecord) error { return r.db.Create(b).Error }

func (r *GormCalculatorRepository) ListBMI(userID uint) ([]domain.BMIRecord, error) {
	var out []domain.BMIRecord
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&out).Error
	return out, err
}

func (r *GormCalculatorRepository) CreateCalorieCalc(c *domain.CalorieCalc) error {
	return r.db.Create(c).Error
}

func (r *GormCalculatorRepository) ListCalorieCalcs(userID uint) ([]domain.CalorieCalc, error) {
	var out []domain.CalorieCalc
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&out).Error
	return out, err
}

func (r *GormCalculatorRepository) DeleteAll(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&domain.BMIRecord{}).Error; err != nil {
		return err
	}
	return r.db.Where("user_id = ?", userID).Delete(&domain.CalorieCalc{}).Error
}

// MilestoneRepository stores user achievements.
type MilestoneRepository interface {
	Create(m *domain.Milestone) error
	List(userID uint) ([]domain.Milestone, error)
	DeleteByIDForUser(userID, id uint) error
	DeleteAll(userID uint) error
}

type GormMilestoneRepository struct{ db *gorm.DB }

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

func (r *GormMilestoneRepository) Create(m *domain.Milestone) error { return r.db.Create(m).Error }

func (r *GormMilestoneRepository) List(userID uint) ([]domain.Milestone, error) {
	var out []domain.Milestone
	err := r.db.Where("user_id = ?", userID).Order("date desc").Find(&out).Error
	return out, err
}

func (r *GormMilestoneRepository) DeleteByIDForUser(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Milestone{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *GormMilestoneRepository) DeleteAll(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.Milestone{}).Error
}
