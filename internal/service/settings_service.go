package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
)

// UpdateSettingsRequest is a partial update; nil fields keep their stored (or
// default) value.
type UpdateSettingsRequest struct {
	Theme         *string
	Notifications *bool
	Language      *string
}

func (r UpdateSettingsRequest) Validate() error {
	if r.Theme == nil && r.Notifications == nil && r.Language == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidRequest)
	}
	if r.Theme != nil && *r.Theme != domain.ThemeLight && *r.Theme != domain.ThemeDark {
		return fmt.Errorf("%w: theme must be light or dark", ErrInvalidRequest)
	}
	if r.Language != nil && *r.Language == "" {
		return fmt.Errorf("%w: language must not be empty", ErrInvalidRequest)
	}
	return nil
}

// SettingsService keeps one preferences row per user, created lazily on first
// write. Reads fall back to defaults so a fresh account still gets a settings
// payload.
type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context, userID uint) (*domain.Settings, error) {
	stored, err := s.repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			def := domain.DefaultSettings(userID)
			return &def, nil
		}
		return nil, storeErr(err)
	}
	return stored, nil
}

func (s *SettingsService) Update(ctx context.Context, userID uint, req UpdateSettingsRequest) (*domain.Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Theme != nil {
		current.Theme = *req.Theme
	}
	if req.Notifications != nil {
		current.Notifications = *req.Notifications
	}
	if req.Language != nil {
		current.Language = *req.Language
	}

	if err := s.repo.Upsert(current); err != nil {
		return nil, storeErr(err)
	}
	observability.RecordTrackerOperation(ctx, "settings", "update", "success")
	return current, nil
}
