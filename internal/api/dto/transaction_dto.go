package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CreateTransactionRequest payload.
type CreateTransactionRequest struct {
	Type        string   `json:"type" validate:"required,max=32"`
	// Amount must be present; zero and negative entries are valid ledger lines. The bounds
	// are the NUMERIC(14,2) column range.
	Amount      *float64 `json:"amount" validate:"required,gte=-999999999999.99,lte=999999999999.99"`
	Description string   `json:"description" validate:"max=500"`
}

// TransactionResponse view.
type TransactionResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"ownerUserId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTransactionResponse maps a domain transaction.
func NewTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		OwnerUserID: t.UserID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
