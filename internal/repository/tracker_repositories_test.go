package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/syncfit/syncfit-backend/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestActivityRepositoryRangeAndLookup(t *testing.T) {
	db := newRepositoryDBForTest(t)
	if err := db.AutoMigrate(&domain.Activity{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewActivityRepository(db)

	for _, d := range []string{"2026-08-01", "2026-08-03", "2026-08-07"} {
		if err := repo.Create(&domain.Activity{UserID: 1, Date: day(d), Workouts: 1, Calories: 200}); err != nil {
			t.Fatalf("create %s: %v", d, err)
		}
	}
	if err := repo.Create(&domain.Activity{UserID: 2, Date: day("2026-08-03"), Workouts: 5, Calories: 900}); err != nil {
		t.Fatalf("create other user: %v", err)
	}

	got, err := repo.ListRange(1, day("2026-08-02"), day("2026-08-07"))
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(got) != 2 || !got[0].Date.Equal(day("2026-08-03")) || !got[1].Date.Equal(day("2026-08-07")) {
		t.Fatalf("unexpected range result: %+v", got)
	}

	found, err := repo.FindByUserAndDate(1, day("2026-08-03"))
	if err != nil {
		t.Fatalf("find by date: %v", err)
	}
	if found.Calories != 200 {
		t.Fatalf("wrong row: %+v", found)
	}
	if _, err := repo.FindByUserAndDate(1, day("2026-08-02")); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	if err := repo.DeleteAll(1); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	rest, err := repo.ListAll(1)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no rows for user 1, got %d", len(rest))
	}
	others, err := repo.ListAll(2)
	if err != nil || len(others) != 1 {
		t.Fatalf("other user's rows must survive: %v %d", err, len(others))
	}
}

func TestMilestoneRepositoryScopedDelete(t *testing.T) {
	db := newRepositoryDBForTest(t)
	if err := db.AutoMigrate(&domain.Milestone{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewMilestoneRepository(db)

	mine := &domain.Milestone{UserID: 1, Description: "First 10k run", Date: day("2026-07-20")}
	theirs := &domain.Milestone{UserID: 2, Description: "Marathon", Date: day("2026-07-21")}
	for _, m := range []*domain.Milestone{mine, theirs} {
		if err := repo.Create(m); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// Deleting another user's milestone must look like it does not exist.
	if err := repo.DeleteByIDForUser(1, theirs.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound for foreign milestone, got %v", err)
	}
	if err := repo.DeleteByIDForUser(1, mine.ID); err != nil {
		t.Fatalf("delete own milestone: %v", err)
	}
	left, err := repo.List(2)
	if err != nil || len(left) != 1 {
		t.Fatalf("other user's milestone must survive: %v %d", err, len(left))
	}
}

func TestSettingsRepositoryUpsert(t *testing.T) {
	db := newRepositoryDBForTest(t)
	if err := db.AutoMigrate(&domain.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewSettingsRepository(db)

	if _, err := repo.FindByUserID(7); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	first := domain.DefaultSettings(7)
	if err := repo.Upsert(&first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := domain.Settings{UserID: 7, Theme: domain.ThemeDark, Notifications: false, Language: "de"}
	if err := repo.Upsert(&second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.FindByUserID(7)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Theme != domain.ThemeDark || got.Notifications || got.Language != "de" {
		t.Fatalf("upsert did not replace values: %+v", got)
	}

	var count int64
	if err := db.Model(&domain.Settings{}).Where("user_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single settings row, got %d", count)
	}
}

func TestFeedbackRepositoryListRecent(t *testing.T) {
	db := newRepositoryDBForTest(t)
	if err := db.AutoMigrate(&domain.Feedback{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewFeedbackRepository(db)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		f := &domain.Feedback{Name: "n", Email: "n@example.com", Rating: 5, Message: "great"}
		f.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.Create(f).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.ListRecent(3)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected limit applied, got %d rows", len(got))
	}
	if got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Fatalf("expected newest first: %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}
}
