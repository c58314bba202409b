package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"relay/relay/auth"
	"relay/relay/types"
	"relay/relay/utils/logging"

	"go.uber.org/zap"
)

type contextKey string

const IdentityKey contextKey = "identity"

// TokenVerifier is what AuthMiddleware needs from the auth package.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

// AuthMiddleware extracts the bearer credential, verifies it and attaches
// the resulting Identity to the request context. Pass a nil verifier when
// the issuer settings are missing; requests then fail with 500 rather than
// being waved through.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.Split(header, " ")
			if header == "" || len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "No token provided")
				return
			}
			if verifier == nil {
				logging.ErrorLogger.Error("token verifier not configured; check ISSUER_URL and CLIENT_ID")
				writeError(w, http.StatusInternalServerError, "Authentication not configured")
				return
			}

			ident, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				logging.AppLogger.Info("token verification failed", zap.Error(err))
				if errors.Is(err, auth.ErrExpired) {
					writeError(w, http.StatusForbidden, "Token has expired")
					return
				}
				writeError(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the verified Identity attached by AuthMiddleware,
// or nil when the request was not authenticated.
func IdentityFrom(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(IdentityKey).(*auth.Identity)
	return ident
}

// RequireGroups gates a route on membership in at least one allowed group.
func RequireGroups(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := IdentityFrom(r.Context())
			if ident == nil {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, group := range ident.Groups {
				for _, want := range allowed {
					if group == want {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":      "Insufficient permissions",
				"required":   allowed,
				"userGroups": ident.Groups,
			})
		})
	}
}

// RateLimitFor returns the request budget for the caller's highest tier.
func RateLimitFor(ident *auth.Identity) types.RateLimit {
	groups := []string{}
	if ident != nil {
		groups = ident.Groups
	}
	for _, g := range groups {
		if g == "admin" {
			return types.RateLimit{Requests: 1000, Window: "1h"}
		}
	}
	for _, g := range groups {
		if g == "analyst" {
			return types.RateLimit{Requests: 500, Window: "1h"}
		}
	}
	return types.RateLimit{Requests: 100, Window: "1h"}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
