package auth

import (
	"errors"
	"strings"
)

// ErrMissingCredential is returned when neither the header nor the cookie carries a token.
var ErrMissingCredential = errors.New("missing credential")

// Requester is the per-request identity derived from a verified token.
type Requester struct {
	UserID string
}

// Resolver turns request credential carriers into a Requester.
type Resolver struct {
	tokens *TokenManager
}

// NewResolver constructs a resolver.
func NewResolver(tokens *TokenManager) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve picks the bearer token from the Authorization header, falling back to the cookie
// value, and verifies it. A bearer header wins over the cookie when both are present.
func (r *Resolver) Resolve(authorization, cookie string) (Requester, error) {
	token := bearerToken(authorization)
	if token == "" {
		token = strings.TrimSpace(cookie)
	}
	if token == "" {
		return Requester{}, ErrMissingCredential
	}

	identity, err := r.tokens.Verify(token)
	if err != nil {
		return Requester{}, err
	}
	return Requester{UserID: identity.UserID}, nil
}

// bearerToken returns the token of a "Bearer <token>" header, or "" for any other shape.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
