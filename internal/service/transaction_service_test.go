package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository/memrepo"
)

func TestTransactionService_ScopedToRequester(t *testing.T) {
	repo := memrepo.NewTransactions()
	dispatcher := &recordingDispatcher{}
	svc := NewTransactionService(repo, dispatcher)
	ctx := context.Background()
	u1 := auth.Requester{UserID: "u1"}
	u2 := auth.Requester{UserID: "u2"}

	tx, err := svc.Create(ctx, u1, TransactionCreateInput{Type: "deposit", Amount: 12.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.UserID != "u1" {
		t.Fatalf("expected owner u1, got %q", tx.UserID)
	}
	if _, err := svc.Create(ctx, u2, TransactionCreateInput{Type: "withdrawal", Amount: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx, u1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != tx.ID {
		t.Errorf("expected only u1's transaction, got %+v", list)
	}

	_, err = svc.Get(ctx, u2, tx.ID)
	expectStatus(t, err, http.StatusForbidden)
	expectStatus(t, svc.Delete(ctx, u2, tx.ID), http.StatusForbidden)

	_, err = svc.Get(ctx, u1, "missing")
	expectStatus(t, err, http.StatusNotFound)

	if err := svc.Delete(ctx, u1, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = svc.Get(ctx, u1, tx.ID)
	expectStatus(t, err, http.StatusNotFound)

	if got := dispatcher.types(); len(got) != 2 || got[0] != events.EventTransactionCreated {
		t.Errorf("unexpected events %v", got)
	}
}
