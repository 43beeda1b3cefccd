package domain

import "time"

// Transaction is a private ledger entry of a single user.
type Transaction struct {
	ID          string
	UserID      string
	Type        string
	Amount      float64
	Description string
	CreatedAt   time.Time
}

// OwnerUserID implements ownership checks.
func (t *Transaction) OwnerUserID() string { return t.UserID }
