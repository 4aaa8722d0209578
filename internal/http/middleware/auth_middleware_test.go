package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/syncfit/syncfit-backend/internal/security"
)

func TestAuthMiddleware(t *testing.T) {
	jwtMgr := security.NewJWTManager("test-secret-test-secret-test-secret", "syncfit", "syncfit-app", time.Hour)
	var gotUserID uint
	handler := AuthMiddleware(jwtMgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Fatal("claims missing from context inside protected handler")
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token passes claims through", func(t *testing.T) {
		token, _, err := jwtMgr.Sign(42, "Ann", "ann@example.com")
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
		}
		if gotUserID != 42 {
			t.Fatalf("expected user id 42, got %d", gotUserID)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("forged token", func(t *testing.T) {
		other := security.NewJWTManager("other-secret-other-secret-other-sec", "syncfit", "syncfit-app", time.Hour)
		token, _, err := other.Sign(42, "Ann", "ann@example.com")
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for forged token, got %d", rr.Code)
		}
	})
}
