package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
)

type LogNutritionRequest struct {
	Date     time.Time
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Meals    []domain.Meal
}

func (r LogNutritionRequest) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if r.Calories < 0 || r.Protein < 0 || r.Carbs < 0 || r.Fats < 0 {
		return fmt.Errorf("%w: macros must not be negative", ErrInvalidRequest)
	}
	for _, m := range r.Meals {
		if m.Name == "" {
			return fmt.Errorf("%w: every meal needs a name", ErrInvalidRequest)
		}
		if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fats < 0 {
			return fmt.Errorf("%w: meal macros must not be negative", ErrInvalidRequest)
		}
	}
	return nil
}

// NutritionService keeps one nutrition row per user per day: daily totals plus
// the meal breakdown as a JSON column. Re-logging a day replaces both.
type NutritionService struct {
	repo repository.NutritionRepository
}

func NewNutritionService(repo repository.NutritionRepository) *NutritionService {
	return &NutritionService{repo: repo}
}

func (s *NutritionService) Log(ctx context.Context, userID uint, req LogNutritionRequest) (*domain.NutritionEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	day := Day(req.Date)

	meals := req.Meals
	if meals == nil {
		meals = []domain.Meal{}
	}
	mealsJSON, err := json.Marshal(meals)
	if err != nil {
		return nil, fmt.Errorf("%w: meals: %v", ErrInvalidRequest, err)
	}

	existing, err := s.repo.FindByUserAndDate(userID, day)
	if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
		return nil, storeErr(err)
	}
	if existing == nil {
		entry := &domain.NutritionEntry{
			UserID:   userID,
			Date:     day,
			Calories: req.Calories,
			Protein:  req.Protein,
			Carbs:    req.Carbs,
			Fats:     req.Fats,
			Meals:    mealsJSON,
		}
		if err := s.repo.Create(entry); err != nil {
			return nil, storeErr(err)
		}
		observability.RecordTrackerOperation(ctx, "nutrition", "log", "created")
		return entry, nil
	}

	existing.Calories = req.Calories
	existing.Protein = req.Protein
	existing.Carbs = req.Carbs
	existing.Fats = req.Fats
	existing.Meals = mealsJSON
	if err := s.repo.Save(existing); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "nutrition", "log", "replaced")
	return existing, nil
}

// History returns the last 30 days, oldest first.
func (s *NutritionService) History(ctx context.Context, userID uint) ([]domain.NutritionEntry, error) {
	since := Day(time.Now()).AddDate(0, 0, -historyWindowDays)
	out, err := s.repo.ListSince(userID, since)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}
