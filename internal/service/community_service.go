package service

import (
	"context"
	"strings"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// CommunityService manages communities.
type CommunityService struct {
	communities repository.CommunityRepository
}

// NewCommunityService constructs the service.
func NewCommunityService(communities repository.CommunityRepository) *CommunityService {
	return &CommunityService{communities: communities}
}

// CommunityCreateInput describes a new community.
type CommunityCreateInput struct {
	Name        string
	Description string
}

// Create registers a community owned by the requester.
func (s *CommunityService) Create(ctx context.Context, requester auth.Requester, input CommunityCreateInput) (*domain.Community, error) {
	community := &domain.Community{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		OwnerID:     requester.UserID,
	}
	if err := s.communities.Create(ctx, community); err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintCommunitiesName) {
			return nil, apperrors.NewUniqueViolation("name", "Community name already exists!")
		}
		return nil, err
	}
	return community, nil
}

// Get returns one community.
func (s *CommunityService) Get(ctx context.Context, id string) (*domain.Community, error) {
	community, err := s.communities.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Community", err)
	}
	return community, nil
}

// List returns every community.
func (s *CommunityService) List(ctx context.Context) ([]domain.Community, error) {
	return s.communities.List(ctx)
}
