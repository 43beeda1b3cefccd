package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

type fakeStoreLookup struct {
	byOwner map[string]*domain.Store
	err     error
}

func (f *fakeStoreLookup) GetByOwner(_ context.Context, ownerUserID string) (*domain.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	store, ok := f.byOwner[ownerUserID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return store, nil
}

func TestAuthorizeMutation(t *testing.T) {
	post := &domain.CommunityPost{ID: "p1", UserID: "u1"}

	if err := AuthorizeMutation("u1", post); err != nil {
		t.Errorf("owner should be allowed, got %v", err)
	}
	if err := AuthorizeMutation("u2", post); !errors.Is(err, ErrForbidden) {
		t.Errorf("non owner should be forbidden, got %v", err)
	}
	if err := AuthorizeMutation("", post); !errors.Is(err, ErrForbidden) {
		t.Errorf("empty requester should be forbidden, got %v", err)
	}
	if err := AuthorizeMutation("", &domain.CommunityPost{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("empty owner never matches empty requester, got %v", err)
	}
	if err := AuthorizeMutation("u1", &domain.Transaction{UserID: "u1"}); err != nil {
		t.Errorf("transaction owner should be allowed, got %v", err)
	}
}

func TestGuard_AuthorizeStoreMutation(t *testing.T) {
	lookup := &fakeStoreLookup{byOwner: map[string]*domain.Store{
		"u1": {ID: "s1", OwnerID: "u1"},
		"u2": {ID: "s2", OwnerID: "u2"},
	}}
	guard := NewGuard(lookup)
	theme := &domain.ThemeCustomization{ID: "t1", StoreID: "s1"}
	ctx := context.Background()

	if err := guard.AuthorizeStoreMutation(ctx, "u1", theme); err != nil {
		t.Errorf("store owner should be allowed, got %v", err)
	}
	if err := guard.AuthorizeStoreMutation(ctx, "u2", theme); !errors.Is(err, ErrForbidden) {
		t.Errorf("other store owner should be forbidden, got %v", err)
	}
	if err := guard.AuthorizeStoreMutation(ctx, "u3", theme); !errors.Is(err, ErrForbidden) {
		t.Errorf("requester without store should be forbidden, got %v", err)
	}
	if err := guard.AuthorizeStoreMutation(ctx, "u1", &domain.ThemeCustomization{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("resource without store should be forbidden, got %v", err)
	}
}

func TestGuard_PropagatesLookupFailure(t *testing.T) {
	boom := errors.New("db down")
	guard := NewGuard(&fakeStoreLookup{err: boom})

	err := guard.AuthorizeStoreMutation(context.Background(), "u1", &domain.ThemeCustomization{StoreID: "s1"})
	if !errors.Is(err, boom) {
		t.Errorf("expected lookup error, got %v", err)
	}
}
