package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pingspace-dev/pingspace/internal/domain"
	"github.com/pingspace-dev/pingspace/internal/utils"
	"github.com/pingspace-dev/pingspace/internal/utils/jwt"
)

// Key to store auth principals in the request context
type key int

const (
	userIdKey key = iota
	apiKeyPrincipalKey
)

// NeedAuth enforces member authentication. The access token is read from
// the "accessToken" cookie, with an Authorization bearer fallback for
// non-browser clients.
func NeedAuth(jwtService jwt.JwtService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			userId, err := jwtService.DecodeToken(token)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIdKey, userId)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return bearer
	}
	return ""
}

// GetUserIdFromContext returns the authenticated user's id, or "" when
// the request did not pass NeedAuth.
func GetUserIdFromContext(r *http.Request) domain.UserId {
	userId, ok := r.Context().Value(userIdKey).(domain.UserId)
	if !ok {
		return ""
	}
	return userId
}
