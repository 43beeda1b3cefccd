package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

const requesterKey = "auth_requester"

// AuthMiddleware gates route groups: it resolves the requester once and stores it for handlers.
type AuthMiddleware struct {
	resolver   *Resolver
	cookieName string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver *Resolver, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	requester, err := m.resolver.Resolve(c.Get(fiber.HeaderAuthorization), c.Cookies(m.cookieName))
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			return apperrors.NewMissingCredential()
		}
		return apperrors.NewInvalidCredential()
	}

	c.Locals(requesterKey, requester)
	return c.Next()
}

// RequesterFromContext retrieves the identity stored by Handle.
func RequesterFromContext(c *fiber.Ctx) (Requester, bool) {
	requester, ok := c.Locals(requesterKey).(Requester)
	if !ok || requester.UserID == "" {
		return Requester{}, false
	}
	return requester, true
}

// RequesterHandler is a handler that receives the resolved identity explicitly.
type RequesterHandler func(c *fiber.Ctx, requester Requester) error

// WithRequester adapts a RequesterHandler. It fails closed when the gate did not run.
func WithRequester(next RequesterHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requester, ok := RequesterFromContext(c)
		if !ok {
			return apperrors.NewMissingCredential()
		}
		return next(c, requester)
	}
}
