package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pingspace-dev/pingspace/internal/domain"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

type ApiKeyVerifier interface {
	Verify(ctx context.Context, token string) (*domain.ApiKeyPrincipal, error)
}

// NeedApiKey authenticates producer requests. The composite token comes
// from the X-Api-Key header, or from "Authorization: ApiKey <token>".
func NeedApiKey(verifier ApiKeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Api-Key")
			if token == "" {
				if v, ok := strings.CutPrefix(r.Header.Get("Authorization"), "ApiKey "); ok {
					token = v
				}
			}
			if token == "" {
				http.Error(w, "Api key required", http.StatusUnauthorized)
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), apiKeyPrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetApiKeyPrincipalFromContext returns the producer identity, or nil
// when the request did not pass NeedApiKey.
func GetApiKeyPrincipalFromContext(r *http.Request) *domain.ApiKeyPrincipal {
	principal, ok := r.Context().Value(apiKeyPrincipalKey).(*domain.ApiKeyPrincipal)
	if !ok {
		return nil
	}
	return principal
}
