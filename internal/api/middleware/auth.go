package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/service"
	"github.com/go-chi/render"
)

type contextKey string

const (
	ClaimsKey contextKey = "claims"
)

type errPayload struct {
	Message string `json:"message"`
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, errPayload{Message: message})
}

// Auth requires a valid bearer access token and stores the verified claims
// on the request context.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "Authentication required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, r, "Authentication required")
				return
			}

			claims, err := tokens.VerifyAccess(r.Context(), parts[1])
			if err != nil {
				unauthorized(w, r, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole enforces the role policy for an action. Failing the policy is
// forbidden, distinct from failing authentication.
func RequireRole(action domain.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				unauthorized(w, r, "Authentication required")
				return
			}

			if !claims.Role.Allowed(action) {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, errPayload{Message: "Not authorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetClaims(ctx context.Context) (*service.AccessClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*service.AccessClaims)
	return claims, ok
}
