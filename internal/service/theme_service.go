package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// ThemeService manages storefront theme customizations. Ownership is resolved through the
// store, never through a field on the theme.
type ThemeService struct {
	themes     repository.ThemeRepository
	stores     repository.StoreRepository
	guard      *auth.Guard
	dispatcher events.Dispatcher
}

// ThemeDependencies bundles collaborators for the theme service.
type ThemeDependencies struct {
	ThemeRepo  repository.ThemeRepository
	StoreRepo  repository.StoreRepository
	Guard      *auth.Guard
	Dispatcher events.Dispatcher
}

// NewThemeService constructs the service.
func NewThemeService(deps ThemeDependencies) *ThemeService {
	return &ThemeService{
		themes:     deps.ThemeRepo,
		stores:     deps.StoreRepo,
		guard:      deps.Guard,
		dispatcher: deps.Dispatcher,
	}
}

// Create stores the theme of the requester's own store.
func (s *ThemeService) Create(ctx context.Context, requester auth.Requester, settings domain.ThemeSettings) (*domain.ThemeCustomization, error) {
	store, err := s.stores.GetByOwner(ctx, requester.UserID)
	if err != nil {
		return nil, notFound("Store", err)
	}

	theme := &domain.ThemeCustomization{StoreID: store.ID, Settings: settings}
	if err := s.themes.Create(ctx, theme); err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintThemesStore) {
			return nil, apperrors.NewUniqueViolation("storeId", "Theme customization already exists for this store!")
		}
		return nil, err
	}
	s.published(ctx, requester, theme)
	return theme, nil
}

// Mine returns the theme of the requester's store.
func (s *ThemeService) Mine(ctx context.Context, requester auth.Requester) (*domain.ThemeCustomization, error) {
	store, err := s.stores.GetByOwner(ctx, requester.UserID)
	if err != nil {
		return nil, notFound("Store", err)
	}
	return s.byStore(ctx, store.ID)
}

// GetByStoreName returns the public theme of a storefront.
func (s *ThemeService) GetByStoreName(ctx context.Context, name string) (*domain.ThemeCustomization, error) {
	store, err := s.stores.GetByName(ctx, name)
	if err != nil {
		return nil, notFound("Store", err)
	}
	return s.byStore(ctx, store.ID)
}

// Upsert overlays patch onto the stored settings of the store, creating the theme if needed.
// Only fields present in patch change.
func (s *ThemeService) Upsert(ctx context.Context, requester auth.Requester, storeID string, patch json.RawMessage) (*domain.ThemeCustomization, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, notFound("Store", err)
	}
	if err := s.guard.AuthorizeStoreMutation(ctx, requester.UserID, store); err != nil {
		return nil, forbidden(err)
	}

	theme, err := s.themes.GetByStore(ctx, store.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		theme = &domain.ThemeCustomization{StoreID: store.ID}
	case err != nil:
		return nil, err
	}
	if len(patch) > 0 {
		if err := json.Unmarshal(patch, &theme.Settings); err != nil {
			return nil, apperrors.NewValidationError("invalid theme settings", map[string]any{"details": err.Error()})
		}
	}

	if err := s.themes.Upsert(ctx, theme); err != nil {
		return nil, err
	}
	s.published(ctx, requester, theme)
	return theme, nil
}

// Delete removes the theme of a store owned by the requester.
func (s *ThemeService) Delete(ctx context.Context, requester auth.Requester, storeID string) error {
	theme, err := s.byStore(ctx, storeID)
	if err != nil {
		return err
	}
	if err := s.guard.AuthorizeStoreMutation(ctx, requester.UserID, theme); err != nil {
		return forbidden(err)
	}
	if err := s.themes.DeleteByStore(ctx, theme.StoreID); err != nil {
		return notFound("Theme customization", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventThemeCustomRemoved,
		ResourceID:  theme.ID,
		ActorUserID: requester.UserID,
		Payload:     events.ThemeCustomizedPayload{StoreID: theme.StoreID},
	})
	return nil
}

func (s *ThemeService) byStore(ctx context.Context, storeID string) (*domain.ThemeCustomization, error) {
	theme, err := s.themes.GetByStore(ctx, storeID)
	if err != nil {
		return nil, notFound("Theme customization", err)
	}
	return theme, nil
}

func (s *ThemeService) published(ctx context.Context, requester auth.Requester, theme *domain.ThemeCustomization) {
	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventThemeCustomized,
		ResourceID:  theme.ID,
		ActorUserID: requester.UserID,
		Payload:     events.ThemeCustomizedPayload{StoreID: theme.StoreID},
	})
}
