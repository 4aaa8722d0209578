package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/http/middleware"
	"github.com/syncfit/syncfit-backend/internal/repository"
	"github.com/syncfit/syncfit-backend/internal/security"
	"github.com/syncfit/syncfit-backend/internal/service"
)

type memActivityRepo struct {
	nextID  uint
	entries map[uint]domain.Activity
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{nextID: 1, entries: map[uint]domain.Activity{}}
}

func (m *memActivityRepo) FindByUserAndDate(userID uint, date time.Time) (*domain.Activity, error) {
	for _, a := range m.entries {
		if a.UserID == userID && a.Date.Equal(date) {
			return &a, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (m *memActivityRepo) Create(a *domain.Activity) error {
	a.ID = m.nextID
	m.nextID++
	m.entries[a.ID] = *a
	return nil
}

func (m *memActivityRepo) Save(a *domain.Activity) error {
	m.entries[a.ID] = *a
	return nil
}

func (m *memActivityRepo) ListRange(userID uint, from, to time.Time) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, a := range m.entries {
		if a.UserID == userID && !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memActivityRepo) ListAll(userID uint) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, a := range m.entries {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memActivityRepo) DeleteAll(userID uint) error {
	for id, a := range m.entries {
		if a.UserID == userID {
			delete(m.entries, id)
		}
	}
	return nil
}

type memStepsRepo struct {
	nextID  uint
	entries map[uint]domain.StepsEntry
}

func newMemStepsRepo() *memStepsRepo {
	return &memStepsRepo{nextID: 1, entries: map[uint]domain.StepsEntry{}}
}

func (m *memStepsRepo) FindForDay(userID uint, day time.Time) (*domain.StepsEntry, error) {
	for _, s := range m.entries {
		if s.UserID == userID && !s.Date.Before(day) {
			return &s, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (m *memStepsRepo) Create(s *domain.StepsEntry) error {
	s.ID = m.nextID
	m.nextID++
	m.entries[s.ID] = *s
	return nil
}

func (m *memStepsRepo) Save(s *domain.StepsEntry) error {
	m.entries[s.ID] = *s
	return nil
}

func (m *memStepsRepo) DeleteAll(userID uint) error {
	for id, s := range m.entries {
		if s.UserID == userID {
			delete(m.entries, id)
		}
	}
	return nil
}

type memWeightRepo struct {
	nextID  uint
	entries map[uint]domain.WeightEntry
}

func newMemWeightRepo() *memWeightRepo {
	return &memWeightRepo{nextID: 1, entries: map[uint]domain.WeightEntry{}}
}

func (m *memWeightRepo) FindByUserAndDate(userID uint, date time.Time) (*domain.WeightEntry, error) {
	for _, w := range m.entries {
		if w.UserID == userID && w.Date.Equal(date) {
			return &w, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (m *memWeightRepo) Create(w *domain.WeightEntry) error {
	w.ID = m.nextID
	m.nextID++
	m.entries[w.ID] = *w
	return nil
}

func (m *memWeightRepo) Save(w *domain.WeightEntry) error {
	m.entries[w.ID] = *w
	return nil
}

func (m *memWeightRepo) ListSince(userID uint, since time.Time) ([]domain.WeightEntry, error) {
	var out []domain.WeightEntry
	for _, w := range m.entries {
		if w.UserID == userID && !w.Date.Before(since) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memWeightRepo) DeleteAll(userID uint) error {
	for id, w := range m.entries {
		if w.UserID == userID {
			delete(m.entries, id)
		}
	}
	return nil
}

func newTrackerRouterForTest(t *testing.T) (http.Handler, string) {
	t.Helper()
	jwtMgr := security.NewJWTManager("test-secret-test-secret-test-secret", "syncfit", "syncfit-app", time.Hour)
	token, _, err := jwtMgr.Sign(7, "Ann", "ann@x.com")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	h := NewTrackerHandler(
		service.NewActivityService(newMemActivityRepo()),
		service.NewWeightService(newMemWeightRepo()),
		service.NewStepsService(newMemStepsRepo()),
	)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(jwtMgr))
		r.Post("/activity", h.LogActivity)
		r.Get("/activity/summary", h.ActivitySummary)
		r.Delete("/activity/history", h.ClearActivityHistory)
		r.Post("/weight", h.LogWeight)
		r.Get("/weight/history", h.WeightHistory)
		r.Post("/steps", h.LogSteps)
		r.Get("/steps/today", h.StepsToday)
	})
	return r, token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestTrackerHandlerRequiresAuth(t *testing.T) {
	r, _ := newTrackerRouterForTest(t)
	rr := doJSON(t, r, http.MethodGet, "/api/v1/activity/summary", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rr.Code)
	}
}

func TestTrackerHandlerActivityAccumulates(t *testing.T) {
	r, token := newTrackerRouterForTest(t)
	today := time.Now().UTC().Format("2006-01-02")

	rr := doJSON(t, r, http.MethodPost, "/api/v1/activity", token, map[string]any{"date": today, "workouts": 1, "calories": 200})
	if rr.Code != http.StatusOK {
		t.Fatalf("first log: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, r, http.MethodPost, "/api/v1/activity", token, map[string]any{"date": today, "workouts": 2, "calories": 300})
	if rr.Code != http.StatusOK {
		t.Fatalf("second log: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var entry domain.Activity
	if err := json.Unmarshal(rr.Body.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry.Workouts != 3 || entry.Calories != 500 {
		t.Fatalf("same-day activity must accumulate, got %+v", entry)
	}

	rr = doJSON(t, r, http.MethodPost, "/api/v1/activity", token, map[string]any{"date": "not-a-date", "workouts": 1})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad date, got %d", rr.Code)
	}
}

func TestTrackerHandlerWeightReplaces(t *testing.T) {
	r, token := newTrackerRouterForTest(t)
	today := time.Now().UTC().Format("2006-01-02")

	doJSON(t, r, http.MethodPost, "/api/v1/weight", token, map[string]any{"date": today, "weight": 72.5})
	rr := doJSON(t, r, http.MethodPost, "/api/v1/weight", token, map[string]any{"date": today, "weight": 71.8})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var entry domain.WeightEntry
	if err := json.Unmarshal(rr.Body.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry.Weight != 71.8 {
		t.Fatalf("same-day weight must replace, got %+v", entry)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/v1/weight/history", token, nil)
	var history []domain.WeightEntry
	if err := json.Unmarshal(rr.Body.Bytes(), &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single row for the day, got %d", len(history))
	}
}

func TestTrackerHandlerStepsToday(t *testing.T) {
	r, token := newTrackerRouterForTest(t)

	// Nothing logged yet: zero-value payload, not an error.
	rr := doJSON(t, r, http.MethodGet, "/api/v1/steps/today", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var entry domain.StepsEntry
	if err := json.Unmarshal(rr.Body.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry.Steps != 0 {
		t.Fatalf("expected zero steps before logging, got %d", entry.Steps)
	}

	doJSON(t, r, http.MethodPost, "/api/v1/steps", token, map[string]any{"steps": 4200})
	rr = doJSON(t, r, http.MethodGet, "/api/v1/steps/today", token, nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry.Steps != 4200 {
		t.Fatalf("expected 4200 steps, got %d", entry.Steps)
	}
}
