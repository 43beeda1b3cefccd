package service

import (
	"context"
	"strings"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

// StoreService manages seller storefronts.
type StoreService struct {
	stores     repository.StoreRepository
	dispatcher events.Dispatcher
}

// NewStoreService constructs the service.
func NewStoreService(stores repository.StoreRepository, dispatcher events.Dispatcher) *StoreService {
	return &StoreService{stores: stores, dispatcher: dispatcher}
}

// StoreInput describes store fields. Blank values keep the stored value on update.
type StoreInput struct {
	Name        string
	Description string
	// Check runs on Update after the lookup and ownership checks.
	Check func() error
}

// Create opens the requester's store. A user owns at most one.
func (s *StoreService) Create(ctx context.Context, requester auth.Requester, input StoreInput) (*domain.Store, error) {
	store := &domain.Store{
		OwnerID:     requester.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, storeError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventStoreCreated,
		ResourceID:  store.ID,
		ActorUserID: requester.UserID,
	})
	return store, nil
}

// Mine returns the requester's store.
func (s *StoreService) Mine(ctx context.Context, requester auth.Requester) (*domain.Store, error) {
	store, err := s.stores.GetByOwner(ctx, requester.UserID)
	if err != nil {
		return nil, notFound("Store", err)
	}
	return store, nil
}

// GetByName returns a store by its public name.
func (s *StoreService) GetByName(ctx context.Context, name string) (*domain.Store, error) {
	store, err := s.stores.GetByName(ctx, name)
	if err != nil {
		return nil, notFound("Store", err)
	}
	return store, nil
}

// Update edits a store owned by the requester.
func (s *StoreService) Update(ctx context.Context, requester auth.Requester, id string, input StoreInput) (*domain.Store, error) {
	store, err := loadOwned(ctx, "Store", id, requester.UserID, s.stores.GetByID)
	if err != nil {
		return nil, err
	}
	if input.Check != nil {
		if err := input.Check(); err != nil {
			return nil, err
		}
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		store.Name = name
	}
	if input.Description != "" {
		store.Description = input.Description
	}
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, storeError(err)
	}
	return store, nil
}

func storeError(err error) error {
	switch {
	case repository.IsUniqueViolation(err, repository.ConstraintStoresOwner):
		return apperrors.NewUniqueViolation("owner", "You already have a store!")
	case repository.IsUniqueViolation(err, repository.ConstraintStoresName):
		return apperrors.NewUniqueViolation("name", "Store name already exists!")
	}
	return notFound("Store", err)
}
