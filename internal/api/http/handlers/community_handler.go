package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// CommunityHandler manages community endpoints.
type CommunityHandler struct {
	service  *service.CommunityService
	validate *Validator
}

// NewCommunityHandler constructs handler.
func NewCommunityHandler(communityService *service.CommunityService, validate *Validator) *CommunityHandler {
	return &CommunityHandler{service: communityService, validate: validate}
}

// Create POST /api/communities.
func (h *CommunityHandler) Create(c *fiber.Ctx, requester auth.Requester) error {
	var req dto.CreateCommunityRequest
	if err := h.validate.Bind(c, &req); err != nil {
		return err
	}
	community, err := h.service.Create(c.UserContext(), requester, service.CommunityCreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommunityResponse(community)})
}

// List GET /api/communities.
func (h *CommunityHandler) List(c *fiber.Ctx) error {
	communities, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CommunityResponse, 0, len(communities))
	for i := range communities {
		items = append(items, dto.NewCommunityResponse(&communities[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/communities/:id.
func (h *CommunityHandler) Get(c *fiber.Ctx) error {
	community, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommunityResponse(community)})
}
