package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
)

const (
	activitySummaryDays = 7
	historyWindowDays   = 30
)

// Day truncates t to its UTC calendar day. All tracker rows are keyed by day,
// never by wall-clock time.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

type LogActivityRequest struct {
	Date     time.Time
	Workouts int
	Calories int
}

func (r LogActivityRequest) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if r.Workouts < 0 || r.Calories < 0 {
		return fmt.Errorf("%w: workouts and calories must not be negative", ErrInvalidRequest)
	}
	if r.Workouts == 0 && r.Calories == 0 {
		return fmt.Errorf("%w: nothing to log", ErrInvalidRequest)
	}
	return nil
}

// ActivityService logs workouts. Same-day logs accumulate: logging twice adds
// to the stored counts instead of replacing them.
type ActivityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) Log(ctx context.Context, userID uint, req LogActivityRequest) (*domain.Activity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	day := Day(req.Date)

	existing, err := s.repo.FindByUserAndDate(userID, day)
	if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
		return nil, storeErr(err)
	}
	if existing == nil {
		entry := &domain.Activity{UserID: userID, Date: day, Workouts: req.Workouts, Calories: req.Calories}
		if err := s.repo.Create(entry); err != nil {
			return nil, storeErr(err)
		}
		observability.RecordTrackerOperation(ctx, "activity", "log", "created")
		return entry, nil
	}

	existing.Workouts += req.Workouts
	existing.Calories += req.Calories
	if err := s.repo.Save(existing); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "activity", "log", "accumulated")
	return existing, nil
}

// Summary returns the last 7 days of activity, oldest first.
func (s *ActivityService) Summary(ctx context.Context, userID uint) ([]domain.Activity, error) {
	to := Day(time.Now())
	from := to.AddDate(0, 0, -(activitySummaryDays - 1))
	out, err := s.repo.ListRange(userID, from, to)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *ActivityService) History(ctx context.Context, userID uint) ([]domain.Activity, error) {
	out, err := s.repo.ListAll(userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *ActivityService) ClearHistory(ctx context.Context, userID uint) error {
	if err := s.repo.DeleteAll(userID); err != nil {
		return storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "activity", "clear", "success")
	return nil
}

type LogWeightRequest struct {
	Date   time.Time
	Weight float64
}

func (r LogWeightRequest) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if r.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidRequest)
	}
	return nil
}

// WeightService logs body weight. Re-logging a day replaces the value; a day
// has exactly one measurement.
type WeightService struct {
	repo repository.WeightRepository
}

func NewWeightService(repo repository.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

func (s *WeightService) Log(ctx context.Context, userID uint, req LogWeightRequest) (*domain.WeightEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	day := Day(req.Date)

	existing, err := s.repo.FindByUserAndDate(userID, day)
	if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
		return nil, storeErr(err)
	}
	if existing == nil {
		entry := &domain.WeightEntry{UserID: userID, Date: day, Weight: req.Weight}
		if err := s.repo.Create(entry); err != nil {
			return nil, storeErr(err)
		}
		observability.RecordTrackerOperation(ctx, "weight", "log", "created")
		return entry, nil
	}

	existing.Weight = req.Weight
	if err := s.repo.Save(existing); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "weight", "log", "replaced")
	return existing, nil
}

// History returns the last 30 days of measurements, oldest first.
func (s *WeightService) History(ctx context.Context, userID uint) ([]domain.WeightEntry, error) {
	since := Day(time.Now()).AddDate(0, 0, -historyWindowDays)
	out, err := s.repo.ListSince(userID, since)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *WeightService) ClearHistory(ctx context.Context, userID uint) error {
	if err := s.repo.DeleteAll(userID); err != nil {
		return storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "weight", "clear", "success")
	return nil
}

type LogStepsRequest struct {
	Steps int
}

func (r LogStepsRequest) Validate() error {
	if r.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative", ErrInvalidRequest)
	}
	return nil
}

// StepsService keeps a single step count per user per day. Logging replaces
// today's count.
type StepsService struct {
	repo repository.StepsRepository
}

func NewStepsService(repo repository.StepsRepository) *StepsService {
	return &StepsService{repo: repo}
}

func (s *StepsService) LogToday(ctx context.Context, userID uint, req LogStepsRequest) (*domain.StepsEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	today := Day(time.Now())

	existing, err := s.repo.FindForDay(userID, today)
	if err != nil && !errors.Is(err, repository.ErrEntryNotFound) {
		return nil, storeErr(err)
	}
	if existing == nil {
		entry := &domain.StepsEntry{UserID: userID, Date: today, Steps: req.Steps}
		if err := s.repo.Create(entry); err != nil {
			return nil, storeErr(err)
		}
		observability.RecordTrackerOperation(ctx, "steps", "log", "created")
		return entry, nil
	}

	existing.Steps = req.Steps
	if err := s.repo.Save(existing); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "steps", "log", "replaced")
	return existing, nil
}

// Today returns today's entry, or a zero-count entry when nothing was logged.
func (s *StepsService) Today(ctx context.Context, userID uint) (*domain.StepsEntry, error) {
	today := Day(time.Now())
	entry, err := s.repo.FindForDay(userID, today)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return &domain.StepsEntry{UserID: userID, Date: today, Steps: 0}, nil
		}
		return nil, storeErr(err)
	}
	return entry, nil
}
