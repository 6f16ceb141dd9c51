// Package middleware holds the HTTP middleware specific to this API. The
// generic pieces (request ids, panic recovery) come from chi's middleware
// package.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/student-registry/internal/auth"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*auth.Claims, error)
}

type contextKeyClaims struct{}

// ClaimsFromContext returns the claims stored by RequireAuth, or nil.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(contextKeyClaims{}).(*auth.Claims)
	return claims
}

// RequireAuth rejects requests without a valid "Authorization: Bearer"
// header with 401. Valid claims are stored in the request context.
func RequireAuth(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				log.WarnContext(ctx, "unauthorized access - missing token",
					slog.String("request_id", chimw.GetReqID(ctx)))
				unauthorized(w, "missing or invalid Authorization header")
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				log.WarnContext(ctx, "unauthorized access - invalid token",
					slog.String("request_id", chimw.GetReqID(ctx)),
					slog.String("error", err.Error()))
				unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, contextKeyClaims{}, claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="student-registry"`)
	response.WriteJSON(w, http.StatusUnauthorized, response.Response{
		Status: response.StatusError,
		Error:  msg,
	})
}
