package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CreateCommunityRequest payload.
type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// CommunityResponse view.
type CommunityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerUserID string    `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewCommunityResponse maps a domain community.
func NewCommunityResponse(c *domain.Community) CommunityResponse {
	return CommunityResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerUserID: c.OwnerID,
		CreatedAt:   c.CreatedAt,
	}
}

// CreatePostRequest payload. There is deliberately no author field: the author is the requester.
type CreatePostRequest struct {
	CommunityID string `json:"communityId" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	Link        string `json:"link" validate:"omitempty,url"`
	Image       string `json:"image"`
	Video       string `json:"video"`
	Audio       string `json:"audio"`
}

// UpdatePostRequest payload. Absent or empty fields keep their stored value.
type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

// PostResponse view.
type PostResponse struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"communityId"`
	OwnerUserID string    `json:"ownerUserId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Link        string    `json:"link,omitempty"`
	Image       string    `json:"image,omitempty"`
	Video       string    `json:"video,omitempty"`
	Audio       string    `json:"audio,omitempty"`
	LikeCount   int       `json:"likeCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPostResponse maps a domain post.
func NewPostResponse(p *domain.CommunityPost) PostResponse {
	return PostResponse{
		ID:          p.ID,
		CommunityID: p.CommunityID,
		OwnerUserID: p.UserID,
		Title:       p.Title,
		Content:     p.Content,
		Link:        p.Link,
		Image:       p.Image,
		Video:       p.Video,
		Audio:       p.Audio,
		LikeCount:   p.LikeCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// LikeResponse view.
type LikeResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLikeResponse maps a domain like.
func NewLikeResponse(l *domain.PostLike) LikeResponse {
	return LikeResponse{ID: l.ID, PostID: l.PostID, UserID: l.UserID, CreatedAt: l.CreatedAt}
}
