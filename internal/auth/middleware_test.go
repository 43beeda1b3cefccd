package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

func newGatedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			derr := apperrors.ToDomainError(err)
			return c.Status(derr.HTTPStatus).JSON(fiber.Map{"code": derr.Code})
		},
	})
	gate := NewAuthMiddleware(NewResolver(tm), "accessToken")
	app.Get("/private", gate.Handle, WithRequester(func(c *fiber.Ctx, requester Requester) error {
		return c.SendString(requester.UserID)
	}))
	app.Get("/ungated", WithRequester(func(c *fiber.Ctx, requester Requester) error {
		return c.SendString(requester.UserID)
	}))
	return app
}

func TestAuthMiddleware_Statuses(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newGatedApp(tm)
	token := issueFor(t, tm, "u1")

	tests := []struct {
		name       string
		path       string
		header     string
		cookie     string
		wantStatus int
	}{
		{name: "no credential", path: "/private", wantStatus: http.StatusUnauthorized},
		{name: "bad token", path: "/private", header: "Bearer nope", wantStatus: http.StatusForbidden},
		{name: "bearer ok", path: "/private", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "cookie ok", path: "/private", cookie: token, wantStatus: http.StatusOK},
		{name: "handler without gate fails closed", path: "/ungated", header: "Bearer " + token, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "accessToken", Value: tt.cookie})
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestRequesterFromContext_Missing(t *testing.T) {
	app := fiber.New()
	var found bool
	app.Get("/", func(c *fiber.Ctx) error {
		_, found = RequesterFromContext(c)
		return nil
	})
	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("request: %v", err)
	}
	if found {
		t.Error("expected no requester on an ungated request")
	}
}
