package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
)

const (
	feedbackListLimit  = 50
	maxFeedbackMessage = 2000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SubmitFeedbackRequest struct {
	Name    string
	Email   string
	Rating  int
	Message string
}

func (r SubmitFeedbackRequest) Validate() error {
	if r.Name == "" || r.Message == "" {
		return fmt.Errorf("%w: name and message are required", ErrInvalidRequest)
	}
	if len(r.Message) > maxFeedbackMessage {
		return fmt.Errorf("%w: message must be at most %d characters", ErrInvalidRequest, maxFeedbackMessage)
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("%w: email format is invalid", ErrInvalidRequest)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidRequest)
	}
	return nil
}

// FeedbackService accepts public product reviews. Submission needs no account;
// the listing is capped so the public endpoint cannot dump the whole table.
type FeedbackService struct {
	repo repository.FeedbackRepository
}

func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

func (s *FeedbackService) Submit(ctx context.Context, req SubmitFeedbackRequest) (*domain.Feedback, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	fb := &domain.Feedback{Name: req.Name, Email: req.Email, Rating: req.Rating, Message: req.Message}
	if err := s.repo.Create(fb); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "feedback", "submit", "created")
	return fb, nil
}

// Recent returns the newest feedback entries, most recent first.
func (s *FeedbackService) Recent(ctx context.Context) ([]domain.Feedback, error) {
	out, err := s.repo.ListRecent(feedbackListLimit)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}
