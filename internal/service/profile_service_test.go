package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/security"
)

// Minimal PNG header; enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestProfileServiceGetAndUpdate(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	pub, err := fx.profile.Get(ctx, fx.userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pub.Email != "ann@x.com" || pub.Name != "Ann" {
		t.Fatalf("unexpected identity: %+v", pub)
	}

	t.Run("unknown user", func(t *testing.T) {
		if _, err := fx.profile.Get(ctx, 999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		if _, err := fx.profile.Update(ctx, fx.userID, UpdateProfileRequest{}); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("rename", func(t *testing.T) {
		name := "Ann B."
		pub, err := fx.profile.Update(ctx, fx.userID, UpdateProfileRequest{Name: &name})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if pub.Name != "Ann B." || pub.Email != "ann@x.com" {
			t.Fatalf("rename must not touch email: %+v", pub)
		}
	})

	t.Run("email taken by another verified user", func(t *testing.T) {
		fx.seedVerified("taken@x.com", "Other", "secret123")
		email := "taken@x.com"
		_, err := fx.profile.Update(ctx, fx.userID, UpdateProfileRequest{Email: &email})
		if !errors.Is(err, ErrAlreadyRegistered) {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("email change to a free address", func(t *testing.T) {
		email := "new@x.com"
		pub, err := fx.profile.Update(ctx, fx.userID, UpdateProfileRequest{Email: &email})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if pub.Email != "new@x.com" {
			t.Fatalf("email not updated: %+v", pub)
		}
	})
}

func TestProfileServiceChangePassword(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	if err := fx.profile.ChangePassword(ctx, fx.userID, ChangePasswordRequest{Current: "wrong", New: "newsecret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := fx.profile.ChangePassword(ctx, fx.userID, ChangePasswordRequest{Current: "secret123", New: "short"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for short password, got %v", err)
	}
	if err := fx.profile.ChangePassword(ctx, fx.userID, ChangePasswordRequest{Current: "secret123", New: "newsecret"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	// The old password stops working.
	if err := fx.profile.ChangePassword(ctx, fx.userID, ChangePasswordRequest{Current: "secret123", New: "whatever123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials with stale password, got %v", err)
	}
	if err := fx.profile.ChangePassword(ctx, fx.userID, ChangePasswordRequest{Current: "newsecret", New: "whatever123"}); err != nil {
		t.Fatalf("change with fresh password: %v", err)
	}
}

func TestProfileServiceImageLifecycle(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	t.Run("non-image payload rejected", func(t *testing.T) {
		body := strings.NewReader("definitely not an image")
		_, err := fx.profile.UploadImage(ctx, fx.userID, body, int64(body.Len()))
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Fatalf("expected ErrUnsupportedImage, got %v", err)
		}
	})

	t.Run("oversized payload rejected without reading", func(t *testing.T) {
		_, err := fx.profile.UploadImage(ctx, fx.userID, bytes.NewReader(nil), maxProfileImageBytes+1)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("png upload, replace, delete", func(t *testing.T) {
		img := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 600)...)
		first, err := fx.profile.UploadImage(ctx, fx.userID, bytes.NewReader(img), int64(len(img)))
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
		if !strings.HasPrefix(first.Key, fmt.Sprintf("profiles/user-%d/", fx.userID)) || !strings.HasSuffix(first.Key, ".png") {
			t.Fatalf("unexpected key %q", first.Key)
		}
		if _, ok := fx.storage.objects[first.Key]; !ok {
			t.Fatal("object not stored")
		}

		second, err := fx.profile.UploadImage(ctx, fx.userID, bytes.NewReader(img), int64(len(img)))
		if err != nil {
			t.Fatalf("second upload: %v", err)
		}
		if _, ok := fx.storage.objects[first.Key]; ok {
			t.Fatal("previous object must be removed on replace")
		}

		url, err := fx.profile.ImageURL(ctx, fx.userID)
		if err != nil || url == "" {
			t.Fatalf("image url: %q %v", url, err)
		}

		if err := fx.profile.DeleteImage(ctx, fx.userID); err != nil {
			t.Fatalf("delete image: %v", err)
		}
		if _, ok := fx.storage.objects[second.Key]; ok {
			t.Fatal("object must be removed on delete")
		}
		if _, err := fx.profile.ImageURL(ctx, fx.userID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := fx.profile.DeleteImage(ctx, fx.userID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound on double delete, got %v", err)
		}
	})
}

func TestProfileServiceDeleteAccountCascades(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	if _, err := NewActivityService(fx.activities).Log(ctx, fx.userID, LogActivityRequest{Date: time.Now(), Workouts: 1, Calories: 100}); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	dark := "dark"
	if _, err := NewSettingsService(fx.settings).Update(ctx, fx.userID, UpdateSettingsRequest{Theme: &dark}); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	img := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 600)...)
	if _, err := fx.profile.UploadImage(ctx, fx.userID, bytes.NewReader(img), int64(len(img))); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	if err := fx.profile.DeleteAccount(ctx, fx.userID); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := fx.profile.Get(ctx, fx.userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("account must be gone, got %v", err)
	}
	if rows, _ := fx.activities.ListAll(fx.userID); len(rows) != 0 {
		t.Fatalf("activity rows must be gone, %d left", len(rows))
	}
	if len(fx.settings.rows) != 0 {
		t.Fatal("settings row must be gone")
	}
	if len(fx.storage.objects) != 0 {
		t.Fatal("stored image must be gone")
	}
}

type profileFixture struct {
	profile    *ProfileService
	users      *userRepoState
	storage    *objectStoreState
	settings   *settingsRepoState
	activities *activityRepoState
	userID     uint
}

func (fx *profileFixture) seedVerified(email, name, password string) uint {
	hash, err := security.HashPassword(password)
	if err != nil {
		panic(err)
	}
	u := &domain.User{Email: email, Name: name, PasswordHash: hash, Verified: true}
	if err := fx.users.Create(u); err != nil {
		panic(err)
	}
	return u.ID
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	users := newUserRepoState()
	storage := newObjectStoreState()
	settings := &settingsRepoState{}
	activities := &activityRepoState{}

	profile := NewProfileService(
		users, storage, settings,
		activities,
		&weightRepoState{},
		&stepsRepoState{},
		&nutritionRepoState{},
		&calculatorRepoState{},
		&milestoneRepoState{},
	)

	fx := &profileFixture{
		profile:    profile,
		users:      users,
		storage:    storage,
		settings:   settings,
		activities: activities,
	}
	fx.userID = fx.seedVerified("ann@x.com", "Ann", "secret123")
	return fx
}

type objectStoreState struct {
	objects map[string][]byte
}

func newObjectStoreState() *objectStoreState {
	return &objectStoreState{objects: map[string][]byte{}}
}

func (s *objectStoreState) Put(_ context.Context, key, _ string, _ int64, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *objectStoreState) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := s.objects[key]; !ok {
		return "", errors.New("no such object")
	}
	return "https://storage.local/" + key, nil
}

func (s *objectStoreState) Remove(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}
