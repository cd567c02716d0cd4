package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// WithActor returns a context carrying the authenticated caller
func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller stored by AuthRequired
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}

// AuthRequired accepts verified access tokens only and stores the caller in the
// request context. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func actorFromClaims(claims map[string]any) (user.Actor, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}

	companyID, _ := claims["company_id"].(string)
	if companyID == "" {
		return user.Actor{}, user.ErrCompanyIDRequired
	}

	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)
	if !role.Valid() {
		return user.Actor{}, auth.ErrInvalidToken
	}

	return user.Actor{UserID: userID, CompanyID: companyID, Role: role}, nil
}
