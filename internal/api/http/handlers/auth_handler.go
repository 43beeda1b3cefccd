package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// CookieSettings controls the session cookie carrying the token.
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler exposes account endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	validate *Validator
	cookie   CookieSettings
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, validate *Validator, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{auth: authService, validate: validate, cookie: cookie}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := h.validate.Bind(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Country:     req.Country,
		Description: req.Description,
		IsSeller:    req.IsSeller,
	})
	if err != nil {
		return err
	}
	h.setCookie(c, session.Token, session.ExpiresAt)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(session)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := h.validate.Bind(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	h.setCookie(c, session.Token, session.ExpiresAt)
	return c.JSON(fiber.Map{"data": authResponse(session)})
}

// Logout handles POST /api/auth/logout. Tokens are stateless; only the cookie is cleared.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setCookie(c, "", time.Unix(0, 0))
	return c.JSON(fiber.Map{"message": "User has been logged out."})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx, requester auth.Requester) error {
	user, err := h.auth.Me(c.UserContext(), requester)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func authResponse(session *service.Session) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      dto.NewUserResponse(session.User),
	}
}
