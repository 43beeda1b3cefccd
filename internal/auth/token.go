package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// DefaultTokenTTL is the lifetime of every issued token. There is no refresh flow.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidCredential is returned for malformed, tampered or expired tokens.
var ErrInvalidCredential = errors.New("invalid credential")

// Identity is the verified content of a token.
type Identity struct {
	UserID string
	Role   domain.Role
}

// Claims describes the JWT payload: id, role and the registered exp/iat claims.
type Claims struct {
	UserID string      `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 identity tokens with a process-wide secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the subject that expires after the configured TTL.
func (tm *TokenManager) Issue(userID string, role domain.Role) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, errors.New("issue token: empty subject")
	}
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("issue token: unknown role %q", role)
	}

	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature, algorithm and expiry and returns the identity.
// Every failure wraps ErrInvalidCredential.
func (tm *TokenManager) Verify(tokenStr string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: unexpected claims", ErrInvalidCredential)
	}
	if strings.TrimSpace(claims.UserID) == "" || !claims.Role.Valid() {
		return Identity{}, fmt.Errorf("%w: incomplete claims", ErrInvalidCredential)
	}
	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// TTL returns the token lifetime, used for cookie expiry.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
