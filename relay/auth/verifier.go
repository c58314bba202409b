package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNotConfigured means the trusted-issuer settings are absent.
	ErrNotConfigured = errors.New("token verifier not configured")
	// ErrExpired means the credential's expiry timestamp has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalidToken covers malformed tokens, bad signatures and
	// issuer/audience mismatches.
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier validates bearer credentials against a trusted issuer's public
// signing keys and an expected audience. Keys come from the issuer's JWKS
// endpoint and are cached with a TTL.
type Verifier struct {
	issuer   string
	audience string
	keys     *jwksCache
}

// NewVerifier returns ErrNotConfigured when either the issuer URL or the
// expected audience is empty. The JWKS endpoint is derived from the issuer
// per the OIDC convention.
func NewVerifier(issuerURL, audience string, cacheTTL time.Duration) (*Verifier, error) {
	if issuerURL == "" || audience == "" {
		return nil, ErrNotConfigured
	}
	issuer := strings.TrimSuffix(issuerURL, "/")
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		keys:     newJWKSCache(issuer+"/.well-known/jwks.json", cacheTTL),
	}, nil
}

// Verify checks signature, issuer, audience and expiry, and extracts the
// caller's Identity. The groups claim defaults to an empty set when absent.
func (v *Verifier) Verify(ctx context.Context, tokenStr string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{
		Email:    stringClaim(claims, "email"),
		Sub:      stringClaim(claims, "sub"),
		Groups:   stringSliceClaim(claims, "cognito:groups"),
		Username: stringClaim(claims, "cognito:username"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

func stringSliceClaim(claims jwt.MapClaims, key string) []string {
	out := []string{}
	raw, ok := claims[key].([]interface{})
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
