package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/service"
)

type memFeedbackRepo struct {
	nextID  uint
	entries []domain.Feedback
}

func (m *memFeedbackRepo) Create(fb *domain.Feedback) error {
	m.nextID++
	fb.ID = m.nextID
	m.entries = append(m.entries, *fb)
	return nil
}

func (m *memFeedbackRepo) ListRecent(limit int) ([]domain.Feedback, error) {
	out := make([]domain.Feedback, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func newFeedbackRouterForTest() (http.Handler, *memFeedbackRepo) {
	repo := &memFeedbackRepo{}
	h := NewFeedbackHandler(service.NewFeedbackService(repo))
	r := chi.NewRouter()
	r.Post("/api/v1/feedback", h.Submit)
	r.Get("/api/v1/feedback", h.Recent)
	return r, repo
}

func postFeedback(t *testing.T, h http.Handler, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestFeedbackHandlerSubmit(t *testing.T) {
	r, _ := newFeedbackRouterForTest()

	t.Run("valid submission", func(t *testing.T) {
		rr := postFeedback(t, r, map[string]any{"name": "Ann", "email": "ann@x.com", "rating": 5, "message": "great app"})
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
		}
	})

	t.Run("rating out of bounds", func(t *testing.T) {
		rr := postFeedback(t, r, map[string]any{"name": "Ann", "email": "ann@x.com", "rating": 6, "message": "nope"})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("bad email format", func(t *testing.T) {
		rr := postFeedback(t, r, map[string]any{"name": "Ann", "email": "not-an-email", "rating": 3, "message": "hmm"})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestFeedbackHandlerRecentNewestFirst(t *testing.T) {
	r, _ := newFeedbackRouterForTest()
	for _, msg := range []string{"first", "second", "third"} {
		rr := postFeedback(t, r, map[string]any{"name": "Ann", "email": "ann@x.com", "rating": 4, "message": msg})
		if rr.Code != http.StatusCreated {
			t.Fatalf("submit %q: expected 201, got %d", msg, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var entries []domain.Feedback
	if err := json.Unmarshal(rr.Body.Bytes(), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 3 || entries[0].Message != "third" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
}
