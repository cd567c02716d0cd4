package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func okHandler(t *testing.T, seen *user.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		if seen != nil {
			*seen = actor
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestAuthRequired(t *testing.T) {
	svc, err := jwt.NewJWTService(testSecret, "1h")
	require.NoError(t, err)
	chain := func(next http.Handler) http.Handler {
		return jwtauth.Verifier(svc.JWTAuth())(AuthRequired(next))
	}

	t.Run("access token yields actor", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("u1", "u1@example.com", "c1", user.RoleManager)
		require.NoError(t, err)

		var seen user.Actor
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		chain(okHandler(t, &seen)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, user.Actor{UserID: "u1", CompanyID: "c1", Role: user.RoleManager}, seen)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		chain(okHandler(t, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sse token is not an access token", func(t *testing.T) {
		token, _, err := svc.GenerateSSEToken("u1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		chain(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other, err := jwt.NewJWTService("another-secret-key-for-jwt-tests", "1h")
		require.NoError(t, err)
		token, _, err := other.GenerateAccessToken("u1", "u1@example.com", "c1", user.RoleEmployee)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		chain(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without company", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("u1", "u1@example.com", "", user.RoleEmployee)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		chain(okHandler(t, nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		mw         func(http.Handler) http.Handler
		role       user.Role
		wantStatus int
	}{
		{"admin passes admin gate", RequireAdmin, user.RoleAdmin, http.StatusNoContent},
		{"manager blocked by admin gate", RequireAdmin, user.RoleManager, http.StatusForbidden},
		{"manager passes manager gate", RequireManager, user.RoleManager, http.StatusNoContent},
		{"admin passes manager gate", RequireManager, user.RoleAdmin, http.StatusNoContent},
		{"employee blocked by manager gate", RequireManager, user.RoleEmployee, http.StatusForbidden},
		{"employee may create leave", RequirePermission(user.PermissionLeaveCreate), user.RoleEmployee, http.StatusNoContent},
		{"admin may not create leave", RequirePermission(user.PermissionLeaveCreate), user.RoleAdmin, http.StatusForbidden},
		{"employee may view own leave", RequirePermission(user.PermissionLeaveViewOwn), user.RoleEmployee, http.StatusNoContent},
		{"admin may view company", RequirePermission(user.PermissionCompanyView), user.RoleAdmin, http.StatusNoContent},
		{"unknown role may not view leave", RequirePermission(user.PermissionLeaveViewOwn), user.Role("guest"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(WithActor(req.Context(), user.Actor{UserID: "u1", CompanyID: "c1", Role: tt.role}))
			rec := httptest.NewRecorder()

			tt.mw(okHandler(t, nil)).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("no actor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireManager(okHandler(t, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("burst then reject per ip", func(t *testing.T) {
		limiter := NewIPRateLimiter(0.001, 2)
		h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		do := func(addr string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec
		}

		assert.Equal(t, http.StatusOK, do("10.0.0.1:1111").Code)
		assert.Equal(t, http.StatusOK, do("10.0.0.1:2222").Code)
		rejected := do("10.0.0.1:3333")
		assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
		assert.Equal(t, "TOO_MANY_REQUESTS", errorCode(t, rejected))

		assert.Equal(t, http.StatusOK, do("10.0.0.2:1111").Code)
	})

	t.Run("prune forgets idle keys", func(t *testing.T) {
		limiter := NewIPRateLimiter(1, 1)
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		limiter.GetLimiter("a")
		now = now.Add(5 * time.Minute)
		limiter.GetLimiter("b")
		now = now.Add(6 * time.Minute)

		assert.Equal(t, 1, limiter.Prune())
		assert.Len(t, limiter.visitors, 1)
		assert.Contains(t, limiter.visitors, "b")
	})
}
