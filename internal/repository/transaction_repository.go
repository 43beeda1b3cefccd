package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// TransactionRepository manages user ledger entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository builds repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (id, user_id, type, amount, description)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	return translate(r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Type,
		tx.Amount,
		tx.Description,
	).Scan(&tx.CreatedAt))
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	const query = `
        SELECT id, user_id, type, amount, description, created_at
        FROM transactions WHERE id=$1`
	var tx domain.Transaction
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description, &tx.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	const query = `
        SELECT id, user_id, type, amount, description, created_at
        FROM transactions WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		var tx domain.Transaction
		err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description, &tx.CreatedAt)
		return tx, err
	})
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
