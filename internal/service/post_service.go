package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// PostService coordinates community post workflows, including likes.
type PostService struct {
	posts       repository.PostRepository
	likes       repository.LikeRepository
	communities repository.CommunityRepository
	dispatcher  events.Dispatcher
}

// PostDependencies bundles repositories for the post service.
type PostDependencies struct {
	PostRepo      repository.PostRepository
	LikeRepo      repository.LikeRepository
	CommunityRepo repository.CommunityRepository
	Dispatcher    events.Dispatcher
}

// NewPostService constructs the service.
func NewPostService(deps PostDependencies) *PostService {
	return &PostService{
		posts:       deps.PostRepo,
		likes:       deps.LikeRepo,
		communities: deps.CommunityRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// PostCreateInput describes post creation payload. The author always comes from the requester.
type PostCreateInput struct {
	CommunityID string
	Title       string
	Content     string
	Link        string
	Image       string
	Video       string
	Audio       string
}

// PostUpdateInput carries the editable fields. Nil or blank values keep the stored value.
type PostUpdateInput struct {
	Title   *string
	Content *string
	// Check, when set, validates the input once the post is found and owned by the requester.
	Check func() error
}

// Create stores a post authored by the requester.
func (s *PostService) Create(ctx context.Context, requester auth.Requester, input PostCreateInput) (*domain.CommunityPost, error) {
	if _, err := s.communities.GetByID(ctx, input.CommunityID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("community does not exist", map[string]any{"field": "communityId"})
		}
		return nil, err
	}

	post := &domain.CommunityPost{
		CommunityID: input.CommunityID,
		UserID:      requester.UserID,
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		Link:        input.Link,
		Image:       input.Image,
		Video:       input.Video,
		Audio:       input.Audio,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		var fk *repository.ForeignKeyViolation
		if errors.As(err, &fk) && fk.Constraint == repository.ConstraintPostsCommunity {
			// The community was removed after the lookup above.
			return nil, apperrors.NewValidationError("community does not exist", map[string]any{"field": "communityId"})
		}
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventPostCreated,
		ResourceID:  post.ID,
		ActorUserID: requester.UserID,
		Payload:     events.PostCreatedPayload{CommunityID: post.CommunityID, Title: post.Title},
	})
	return post, nil
}

// Get returns one post.
func (s *PostService) Get(ctx context.Context, id string) (*domain.CommunityPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Post", err)
	}
	return post, nil
}

// List returns posts, newest first.
func (s *PostService) List(ctx context.Context, filter repository.PostFilter) ([]domain.CommunityPost, error) {
	return s.posts.List(ctx, filter)
}

// Update edits a post owned by the requester.
func (s *PostService) Update(ctx context.Context, requester auth.Requester, id string, input PostUpdateInput) (*domain.CommunityPost, error) {
	post, err := loadOwned(ctx, "Post", id, requester.UserID, s.posts.GetByID)
	if err != nil {
		return nil, err
	}
	if input.Check != nil {
		if err := input.Check(); err != nil {
			return nil, err
		}
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil && *input.Content != "" {
		post.Content = *input.Content
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, notFound("Post", err)
	}
	return post, nil
}

// Delete removes a post owned by the requester. Its likes go with it.
func (s *PostService) Delete(ctx context.Context, requester auth.Requester, id string) error {
	post, err := loadOwned(ctx, "Post", id, requester.UserID, s.posts.GetByID)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return notFound("Post", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventPostDeleted,
		ResourceID:  post.ID,
		ActorUserID: requester.UserID,
	})
	return nil
}

// Like records the requester's like. It reports false when the like already existed.
func (s *PostService) Like(ctx context.Context, requester auth.Requester, postID string) (bool, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return false, err
	}

	like := &domain.PostLike{PostID: post.ID, UserID: requester.UserID}
	if err := s.likes.Create(ctx, like); err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintPostLikesPair) {
			return false, nil
		}
		return false, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventPostLiked,
		ResourceID:  post.ID,
		ActorUserID: requester.UserID,
		Payload:     events.PostLikedPayload{OwnerUserID: post.UserID},
	})
	return true, nil
}

// Unlike removes the requester's own like.
func (s *PostService) Unlike(ctx context.Context, requester auth.Requester, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.likes.Delete(ctx, post.ID, requester.UserID); err != nil {
		return notFound("Like", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventPostUnliked,
		ResourceID:  post.ID,
		ActorUserID: requester.UserID,
	})
	return nil
}

// Likes lists the likes of a post.
func (s *PostService) Likes(ctx context.Context, postID string) ([]domain.PostLike, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.likes.ListByPost(ctx, post.ID)
}
