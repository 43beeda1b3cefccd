package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
)

const maxPageSize = 100

// PostHandler manages community post and like endpoints.
type PostHandler struct {
	service  *service.PostService
	validate *Validator
}

// NewPostHandler constructs handler.
func NewPostHandler(postService *service.PostService, validate *Validator) *PostHandler {
	return &PostHandler{service: postService, validate: validate}
}

// Create POST /api/community-posts.
func (h *PostHandler) Create(c *fiber.Ctx, requester auth.Requester) error {
	var req dto.CreatePostRequest
	if err := h.validate.Bind(c, &req); err != nil {
		return err
	}
	post, err := h.service.Create(c.UserContext(), requester, service.PostCreateInput{
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Content:     req.Content,
		Link:        req.Link,
		Image:       req.Image,
		Video:       req.Video,
		Audio:       req.Audio,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// List GET /api/community-posts.
func (h *PostHandler) List(c *fiber.Ctx) error {
	return h.list(c, pageFilter(c))
}

// ListByCommunity GET /api/community-posts/community/:communityId.
func (h *PostHandler) ListByCommunity(c *fiber.Ctx) error {
	filter := pageFilter(c)
	communityID := c.Params("communityId")
	filter.CommunityID = &communityID
	return h.list(c, filter)
}

// ListByUser GET /api/community-posts/user/:userId.
func (h *PostHandler) ListByUser(c *fiber.Ctx) error {
	filter := pageFilter(c)
	userID := c.Params("userId")
	filter.UserID = &userID
	return h.list(c, filter)
}

// Get GET /api/community-posts/:id.
func (h *PostHandler) Get(c *fiber.Ctx) error {
	post, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Update PUT /api/community-posts/:id.
func (h *PostHandler) Update(c *fiber.Ctx, requester auth.Requester) error {
	var req dto.UpdatePostRequest
	if err := h.validate.Decode(c, &req); err != nil {
		return err
	}
	post, err := h.service.Update(c.UserContext(), requester, c.Params("id"), service.PostUpdateInput{
		Title:   req.Title,
		Content: req.Content,
		Check:   func() error { return h.validate.Struct(&req) },
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Delete DELETE /api/community-posts/:id.
func (h *PostHandler) Delete(c *fiber.Ctx, requester auth.Requester) error {
	if err := h.service.Delete(c.UserContext(), requester, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// Like POST /api/community-posts/:id/like.
func (h *PostHandler) Like(c *fiber.Ctx, requester auth.Requester) error {
	created, err := h.service.Like(c.UserContext(), requester, c.Params("id"))
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(fiber.Map{"message": "Already liked"})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Post liked"})
}

// Unlike DELETE /api/community-posts/:id/like.
func (h *PostHandler) Unlike(c *fiber.Ctx, requester auth.Requester) error {
	if err := h.service.Unlike(c.UserContext(), requester, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Post unliked"})
}

// Likes GET /api/community-posts/:id/likes.
func (h *PostHandler) Likes(c *fiber.Ctx) error {
	likes, err := h.service.Likes(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.LikeResponse, 0, len(likes))
	for i := range likes {
		items = append(items, dto.NewLikeResponse(&likes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *PostHandler) list(c *fiber.Ctx, filter repository.PostFilter) error {
	posts, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postResponses(posts)})
}

func postResponses(posts []domain.CommunityPost) []dto.PostResponse {
	items := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, dto.NewPostResponse(&posts[i]))
	}
	return items
}

func pageFilter(c *fiber.Ctx) repository.PostFilter {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return repository.PostFilter{Limit: limit, Offset: offset}
}
