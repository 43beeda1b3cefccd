package auth

import (
	"context"
	"errors"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// ErrForbidden is returned when the requester does not own the resource.
var ErrForbidden = errors.New("forbidden")

// Owned is a resource with a direct owning user.
type Owned interface {
	OwnerUserID() string
}

// StoreScoped is a resource owned through a store.
type StoreScoped interface {
	OwningStoreID() string
}

// StoreLookup resolves the store owned by a user.
type StoreLookup interface {
	GetByOwner(ctx context.Context, ownerUserID string) (*domain.Store, error)
}

// AuthorizeMutation allows the mutation iff the requester is the resource owner.
// An empty requester or owner id never matches.
func AuthorizeMutation(requesterID string, resource Owned) error {
	if requesterID == "" || resource == nil {
		return ErrForbidden
	}
	owner := resource.OwnerUserID()
	if owner == "" || owner != requesterID {
		return ErrForbidden
	}
	return nil
}

// Guard evaluates indirect ownership that needs a store lookup.
type Guard struct {
	stores StoreLookup
}

// NewGuard constructs a guard.
func NewGuard(stores StoreLookup) *Guard {
	return &Guard{stores: stores}
}

// AuthorizeStoreMutation resolves the store owned by the requester and allows the mutation
// iff the resource belongs to that store. A requester without a store is denied.
func (g *Guard) AuthorizeStoreMutation(ctx context.Context, requesterID string, resource StoreScoped) error {
	if requesterID == "" || resource == nil || resource.OwningStoreID() == "" {
		return ErrForbidden
	}
	store, err := g.stores.GetByOwner(ctx, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if store.ID != resource.OwningStoreID() {
		return ErrForbidden
	}
	return nil
}
