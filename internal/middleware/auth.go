package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/pkg/jwt"
)

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// Auth returns a middleware that validates JWT tokens and places the
// caller's identity in the request context.
func Auth(tokens TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				switch err {
				case jwt.ErrTokenExpired:
					model.NewUnauthorizedError("token expired").WriteJSON(w)
				case jwt.ErrInvalidSignature:
					model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
				default:
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
				}
				return
			}

			role := model.Role(claims.Role)
			if !role.IsValid() {
				model.NewUnauthorizedError("invalid token").WriteJSON(w)
				return
			}

			identity := &model.SessionIdentity{
				UserID:      claims.UserID,
				Email:       claims.Email,
				DisplayName: claims.DisplayName,
				Role:        role,
				CommunityID: claims.CommunityID,
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the caller's identity from context. Returns nil when
// the request did not pass the Auth middleware.
func GetIdentity(ctx context.Context) *model.SessionIdentity {
	if id, ok := ctx.Value(IdentityKey).(*model.SessionIdentity); ok {
		return id
	}
	return nil
}

// GetCommunityID extracts the community scope resolved by the access
// middleware. Zero when the route is not community-scoped.
func GetCommunityID(ctx context.Context) int64 {
	if id, ok := ctx.Value(CommunityKey).(int64); ok {
		return id
	}
	return 0
}
