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

const maxMilestoneDescription = 500

type CreateMilestoneRequest struct {
	Description string
	Date        time.Time
}

func (r CreateMilestoneRequest) Validate() error {
	if r.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}
	if len(r.Description) > maxMilestoneDescription {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidRequest, maxMilestoneDescription)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	return nil
}

// MilestoneService manages user-defined achievements.
type MilestoneService struct {
	repo repository.MilestoneRepository
}

func NewMilestoneService(repo repository.MilestoneRepository) *MilestoneService {
	return &MilestoneService{repo: repo}
}

func (s *MilestoneService) Create(ctx context.Context, userID uint, req CreateMilestoneRequest) (*domain.Milestone, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m := &domain.Milestone{UserID: userID, Description: req.Description, Date: Day(req.Date)}
	if err := s.repo.Create(m); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "milestone", "create", "created")
	return m, nil
}

// List returns the user's milestones, newest date first.
func (s *MilestoneService) List(ctx context.Context, userID uint) ([]domain.Milestone, error) {
	out, err := s.repo.List(userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Delete removes one milestone. Rows owned by other users are invisible: the
// caller gets ErrNotFound, not a hint the id exists.
func (s *MilestoneService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.DeleteByIDForUser(userID, id); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "milestone", "delete", "deleted")
	return nil
}

func (s *MilestoneService) DeleteAll(ctx context.Context, userID uint) error {
	if err := s.repo.DeleteAll(userID); err != nil {
		return storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "milestone", "clear", "success")
	return nil
}
