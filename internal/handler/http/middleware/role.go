package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(user.ErrAdminAccessRequired, user.RoleAdmin)(next)
}

// RequireManager requires manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return RequireRole(user.ErrManagerAccessRequired, user.RoleManager, user.RoleAdmin)(next)
}

// RequireRole rejects callers whose role is not listed with denied
func RequireRole(denied error, roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !slices.Contains(roles, actor.Role) {
				response.HandleError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !user.HasPermission(actor.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, actor.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
