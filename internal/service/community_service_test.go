package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/repository/memrepo"
)

func TestCommunityService(t *testing.T) {
	svc := NewCommunityService(memrepo.NewCommunities())
	ctx := context.Background()

	community, err := svc.Create(ctx, auth.Requester{UserID: "u1"}, CommunityCreateInput{Name: " gophers "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if community.OwnerID != "u1" || community.Name != "gophers" {
		t.Errorf("unexpected community %+v", community)
	}

	_, err = svc.Create(ctx, auth.Requester{UserID: "u2"}, CommunityCreateInput{Name: "gophers"})
	expectStatus(t, err, http.StatusBadRequest)

	_, err = svc.Get(ctx, "missing")
	expectStatus(t, err, http.StatusNotFound)

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one community, got %d (%v)", len(list), err)
	}
}
