package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// StoreHandler manages storefront endpoints.
type StoreHandler struct {
	service  *service.StoreService
	validate *Validator
}

// NewStoreHandler constructs handler.
func NewStoreHandler(storeService *service.StoreService, validate *Validator) *StoreHandler {
	return &StoreHandler{service: storeService, validate: validate}
}

// Create POST /api/stores.
func (h *StoreHandler) Create(c *fiber.Ctx, requester auth.Requester) error {
	var req dto.StoreRequest
	if err := h.validate.Bind(c, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return apperrors.NewValidationError("validation failed", map[string]any{"name": "required"})
	}
	store, err := h.service.Create(c.UserContext(), requester, service.StoreInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStoreResponse(store)})
}

// Mine GET /api/stores/mine.
func (h *StoreHandler) Mine(c *fiber.Ctx, requester auth.Requester) error {
	store, err := h.service.Mine(c.UserContext(), requester)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponse(store)})
}

// Update PUT /api/stores/:id.
func (h *StoreHandler) Update(c *fiber.Ctx, requester auth.Requester) error {
	var req dto.StoreRequest
	if err := h.validate.Decode(c, &req); err != nil {
		return err
	}
	store, err := h.service.Update(c.UserContext(), requester, c.Params("id"), service.StoreInput{
		Name:        req.Name,
		Description: req.Description,
		Check:       func() error { return h.validate.Struct(&req) },
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponse(store)})
}

// GetByName GET /api/stores/name/:name.
func (h *StoreHandler) GetByName(c *fiber.Ctx) error {
	store, err := h.service.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponse(store)})
}
