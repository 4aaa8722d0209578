package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
	"github.com/syncfit/syncfit-backend/internal/security"
)

const (
	maxProfileImageBytes = 5 << 20
	imageURLExpiry       = 15 * time.Minute
	minPasswordLength    = 8
)

var ErrUnsupportedImage = errors.New("unsupported image type")

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name  *string
	Email *string
}

func (r UpdateProfileRequest) Validate() error {
	if r.Name == nil && r.Email == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidRequest)
	}
	if r.Name != nil && *r.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidRequest)
	}
	if r.Email != nil && *r.Email == "" {
		return fmt.Errorf("%w: email must not be empty", ErrInvalidRequest)
	}
	return nil
}

type ChangePasswordRequest struct {
	Current string
	New     string
}

func (r ChangePasswordRequest) Validate() error {
	if r.Current == "" || r.New == "" {
		return fmt.Errorf("%w: current and new password are required", ErrInvalidRequest)
	}
	if len(r.New) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", ErrInvalidRequest, minPasswordLength)
	}
	return nil
}

// ProfileImage is the result of an image upload: the stored key plus a
// short-lived URL the client can render immediately.
type ProfileImage struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ownedDataDeleter is implemented by every repository holding user-owned rows.
// DeleteAccount fans out over the full set.
type ownedDataDeleter interface {
	DeleteAll(userID uint) error
}

// ProfileService manages the account behind an authenticated session: the
// public identity, credentials, profile image, and whole-account deletion.
type ProfileService struct {
	userRepo repository.UserRepository
	storage  ObjectStorage
	owned    []ownedDataDeleter
	settings repository.SettingsRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	storage ObjectStorage,
	settings repository.SettingsRepository,
	activities repository.ActivityRepository,
	weights repository.WeightRepository,
	steps repository.StepsRepository,
	nutrition repository.NutritionRepository,
	calculators repository.CalculatorRepository,
	milestones repository.MilestoneRepository,
) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		storage:  storage,
		settings: settings,
		owned:    []ownedDataDeleter{activities, weights, steps, nutrition, calculators, milestones},
	}
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*domain.PublicUser, error) {
	user, err := s.findVerified(userID)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// Update changes name and/or email. An email already owned by another user is
// rejected as a duplicate.
func (s *ProfileService) Update(ctx context.Context, userID uint, req UpdateProfileRequest) (*domain.PublicUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.findVerified(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		_, err := s.userRepo.FindVerifiedByEmailExcluding(*req.Email, user.ID)
		if err == nil {
			return nil, ErrAlreadyRegistered
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, storeErr(err)
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, storeErr(err)
	}
	observability.AuditEvent(ctx, "profile.updated", "user_id", user.ID)
	pub := user.Public()
	return &pub, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	user, err := s.findVerified(userID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(user.PasswordHash, req.Current)
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hash, err := security.HashPassword(req.New)
	if err != nil {
		return storeErr(err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.Save(user); err != nil {
		return storeErr(err)
	}
	observability.AuditEvent(ctx, "profile.password_changed", "user_id", user.ID)
	return nil
}

// UploadImage sniffs the content, enforces the size cap, stores the object,
// and replaces any previous image.
func (s *ProfileService) UploadImage(ctx context.Context, userID uint, body io.Reader, size int64) (*ProfileImage, error) {
	if size <= 0 || size > maxProfileImageBytes {
		return nil, fmt.Errorf("%w: image must be between 1 byte and %d bytes", ErrInvalidRequest, maxProfileImageBytes)
	}
	user, err := s.findVerified(userID)
	if err != nil {
		return nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, storeErr(err)
	}
	head = head[:n]

	var ext string
	contentType := http.DetectContentType(head)
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	key := fmt.Sprintf("profiles/user-%d/%s%s", user.ID, uuid.NewString(), ext)
	payload := io.MultiReader(bytes.NewReader(head), body)
	if err := s.storage.Put(ctx, key, contentType, size, payload); err != nil {
		return nil, storeErr(err)
	}

	previous := user.ProfileImageKey
	user.ProfileImageKey = key
	if err := s.userRepo.Save(user); err != nil {
		// Orphaned object; best effort cleanup.
		_ = s.storage.Remove(ctx, key)
		return nil, storeErr(err)
	}
	if previous != "" {
		_ = s.storage.Remove(ctx, previous)
	}

	url, err := s.storage.PresignGet(ctx, key, imageURLExpiry)
	if err != nil {
		return nil, storeErr(err)
	}
	observability.AuditEvent(ctx, "profile.image_uploaded", "user_id", user.ID, "key", key)
	return &ProfileImage{Key: key, URL: url}, nil
}

// ImageURL returns a fresh presigned URL for the stored image, or ErrNotFound
// when none is set.
func (s *ProfileService) ImageURL(ctx context.Context, userID uint) (string, error) {
	user, err := s.findVerified(userID)
	if err != nil {
		return "", err
	}
	if user.ProfileImageKey == "" {
		return "", ErrNotFound
	}
	url, err := s.storage.PresignGet(ctx, user.ProfileImageKey, imageURLExpiry)
	if err != nil {
		return "", storeErr(err)
	}
	return url, nil
}

func (s *ProfileService) DeleteImage(ctx context.Context, userID uint) error {
	user, err := s.findVerified(userID)
	if err != nil {
		return err
	}
	if user.ProfileImageKey == "" {
		return ErrNotFound
	}
	if err := s.storage.Remove(ctx, user.ProfileImageKey); err != nil {
		return storeErr(err)
	}
	user.ProfileImageKey = ""
	if err := s.userRepo.Save(user); err != nil {
		return storeErr(err)
	}
	observability.AuditEvent(ctx, "profile.image_deleted", "user_id", user.ID)
	return nil
}

// DeleteAccount removes the account and every row it owns. Tracker data goes
// first so a mid-way failure leaves a still-working account rather than
// orphaned rows.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.findVerified(userID)
	if err != nil {
		return err
	}

	for _, repo := range s.owned {
		if err := repo.DeleteAll(user.ID); err != nil {
			return storeErr(err)
		}
	}
	if err := s.settings.DeleteForUser(user.ID); err != nil {
		return storeErr(err)
	}
	if user.ProfileImageKey != "" {
		_ = s.storage.Remove(ctx, user.ProfileImageKey)
	}
	if err := s.userRepo.DeleteByID(user.ID); err != nil {
		return storeErr(err)
	}
	observability.AuditEvent(ctx, "profile.account_deleted", "user_id", user.ID)
	return nil
}

func (s *ProfileService) findVerified(userID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	if !user.Verified {
		return nil, ErrNotFound
	}
	return user, nil
}
