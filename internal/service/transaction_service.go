package service

import (
	"context"
	"strings"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// TransactionService manages the requester's private ledger.
type TransactionService struct {
	transactions repository.TransactionRepository
	dispatcher   events.Dispatcher
}

// NewTransactionService constructs the service.
func NewTransactionService(transactions repository.TransactionRepository, dispatcher events.Dispatcher) *TransactionService {
	return &TransactionService{transactions: transactions, dispatcher: dispatcher}
}

// TransactionCreateInput describes a ledger entry.
type TransactionCreateInput struct {
	Type        string
	Amount      float64
	Description string
}

// Create records a transaction for the requester.
func (s *TransactionService) Create(ctx context.Context, requester auth.Requester, input TransactionCreateInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		UserID:      requester.UserID,
		Type:        strings.TrimSpace(input.Type),
		Amount:      input.Amount,
		Description: input.Description,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:        events.EventTransactionCreated,
		ResourceID:  tx.ID,
		ActorUserID: requester.UserID,
		Payload:     events.TransactionCreatedPayload{Type: tx.Type, Amount: tx.Amount},
	})
	return tx, nil
}

// List returns the requester's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, requester auth.Requester) ([]domain.Transaction, error) {
	return s.transactions.ListByUser(ctx, requester.UserID)
}

// Get returns one of the requester's transactions.
func (s *TransactionService) Get(ctx context.Context, requester auth.Requester, id string) (*domain.Transaction, error) {
	return loadOwned(ctx, "Transaction", id, requester.UserID, s.transactions.GetByID)
}

// Delete removes one of the requester's transactions.
func (s *TransactionService) Delete(ctx context.Context, requester auth.Requester, id string) error {
	tx, err := loadOwned(ctx, "Transaction", id, requester.UserID, s.transactions.GetByID)
	if err != nil {
		return err
	}
	return notFound("Transaction", s.transactions.Delete(ctx, tx.ID))
}
