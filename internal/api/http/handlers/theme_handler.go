package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// ThemeHandler manages storefront theme endpoints.
type ThemeHandler struct {
	service *service.ThemeService
}

// NewThemeHandler constructs handler.
func NewThemeHandler(themeService *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{service: themeService}
}

// Create POST /api/theme-customizations. A storeId in the body is ignored.
func (h *ThemeHandler) Create(c *fiber.Ctx, requester auth.Requester) error {
	var settings domain.ThemeSettings
	if err := c.BodyParser(&settings); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	theme, err := h.service.Create(c.UserContext(), requester, settings)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewThemeResponse(theme)})
}

// Mine GET /api/theme-customizations/mine.
func (h *ThemeHandler) Mine(c *fiber.Ctx, requester auth.Requester) error {
	theme, err := h.service.Mine(c.UserContext(), requester)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewThemeResponse(theme)})
}

// GetByStoreName GET /api/theme-customizations/store/:name.
func (h *ThemeHandler) GetByStoreName(c *fiber.Ctx) error {
	theme, err := h.service.GetByStoreName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewThemeResponse(theme)})
}

// Upsert PUT /api/theme-customizations/:storeId.
func (h *ThemeHandler) Upsert(c *fiber.Ctx, requester auth.Requester) error {
	body := c.Body()
	if len(body) > 0 && !json.Valid(body) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	patch := make(json.RawMessage, len(body))
	copy(patch, body)

	theme, err := h.service.Upsert(c.UserContext(), requester, c.Params("storeId"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewThemeResponse(theme)})
}

// Delete DELETE /api/theme-customizations/:storeId.
func (h *ThemeHandler) Delete(c *fiber.Ctx, requester auth.Requester) error {
	if err := h.service.Delete(c.UserContext(), requester, c.Params("storeId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Theme customization deleted"})
}
