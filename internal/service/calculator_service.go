package service

import (
	"context"
	"fmt"
	"math"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
)

const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"

	lbPerKg = 2.2046226218
	cmPerIn = 2.54

	// Daily calorie delta behind the loss/gain targets, roughly one pound
	// of body weight per week.
	calorieTargetDelta = 500
)

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

type BMIRequest struct {
	Height float64 // cm (metric) or inches (imperial)
	Weight float64 // kg (metric) or pounds (imperial)
	Unit   string
}

func (r BMIRequest) Validate() error {
	if r.Height <= 0 || r.Weight <= 0 {
		return fmt.Errorf("%w: height and weight must be positive", ErrInvalidRequest)
	}
	if r.Unit != UnitMetric && r.Unit != UnitImperial {
		return fmt.Errorf("%w: unit must be metric or imperial", ErrInvalidRequest)
	}
	return nil
}

type CalorieRequest struct {
	Age      int
	Gender   string
	Height   float64
	Weight   float64
	Activity string
	Unit     string
}

func (r CalorieRequest) Validate() error {
	if r.Age <= 0 || r.Age > 120 {
		return fmt.Errorf("%w: age must be between 1 and 120", ErrInvalidRequest)
	}
	if r.Gender != "male" && r.Gender != "female" {
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidRequest)
	}
	if r.Height <= 0 || r.Weight <= 0 {
		return fmt.Errorf("%w: height and weight must be positive", ErrInvalidRequest)
	}
	if _, ok := activityMultipliers[r.Activity]; !ok {
		return fmt.Errorf("%w: unknown activity level %q", ErrInvalidRequest, r.Activity)
	}
	if r.Unit != UnitMetric && r.Unit != UnitImperial {
		return fmt.Errorf("%w: unit must be metric or imperial", ErrInvalidRequest)
	}
	return nil
}

// CalculatorService computes and appends BMI and daily-calorie results.
// History is append-only; there is nothing to edit on a past calculation.
type CalculatorService struct {
	repo repository.CalculatorRepository
}

func NewCalculatorService(repo repository.CalculatorRepository) *CalculatorService {
	return &CalculatorService{repo: repo}
}

func (s *CalculatorService) CalculateBMI(ctx context.Context, userID uint, req BMIRequest) (*domain.BMIRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	heightCm, weightKg := req.Height, req.Weight
	if req.Unit == UnitImperial {
		heightCm = req.Height * cmPerIn
		weightKg = req.Weight / lbPerKg
	}
	heightM := heightCm / 100
	value := round1(weightKg / (heightM * heightM))

	record := &domain.BMIRecord{
		UserID: userID,
		Value:  value,
		Height: req.Height,
		Weight: req.Weight,
		Unit:   req.Unit,
	}
	if err := s.repo.CreateBMI(record); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "calculator", "bmi", "created")
	return record, nil
}

func (s *CalculatorService) BMIHistory(ctx context.Context, userID uint) ([]domain.BMIRecord, error) {
	out, err := s.repo.ListBMI(userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// CalculateCalories derives BMR with Mifflin-St Jeor and scales by activity
// level. Loss/gain targets sit a fixed delta around maintenance.
func (s *CalculatorService) CalculateCalories(ctx context.Context, userID uint, req CalorieRequest) (*domain.CalorieCalc, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	heightCm, weightKg := req.Height, req.Weight
	if req.Unit == UnitImperial {
		heightCm = req.Height * cmPerIn
		weightKg = req.Weight / lbPerKg
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(req.Age)
	if req.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	maintenance := bmr * activityMultipliers[req.Activity]

	record := &domain.CalorieCalc{
		UserID:      userID,
		BMR:         math.Round(bmr),
		Maintenance: math.Round(maintenance),
		WeightLoss:  math.Round(maintenance - calorieTargetDelta),
		WeightGain:  math.Round(maintenance + calorieTargetDelta),
		Age:         req.Age,
		Gender:      req.Gender,
		Height:      req.Height,
		Weight:      req.Weight,
		Activity:    req.Activity,
		Unit:        req.Unit,
	}
	if err := s.repo.CreateCalorieCalc(record); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "calculator", "calories", "created")
	return record, nil
}

func (s *CalculatorService) CalorieHistory(ctx context.Context, userID uint) ([]domain.CalorieCalc, error) {
	out, err := s.repo.ListCalorieCalcs(userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
