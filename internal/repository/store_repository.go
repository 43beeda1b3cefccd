package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// StoreRepository manages seller storefronts.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*domain.Store, error)
	GetByName(ctx context.Context, name string) (*domain.Store, error)
}

type storeRepository struct {
	pool *pgxpool.Pool
}

// NewStoreRepository builds repository.
func NewStoreRepository(pool *pgxpool.Pool) StoreRepository {
	return &storeRepository{pool: pool}
}

const storeColumns = `id, owner_user_id, name, description, created_at, updated_at`

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	const query = `
        INSERT INTO stores (id, owner_user_id, name, description)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at, updated_at`
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	return translate(r.pool.QueryRow(ctx, query,
		store.ID,
		store.OwnerID,
		store.Name,
		store.Description,
	).Scan(&store.CreatedAt, &store.UpdatedAt))
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	const query = `
        UPDATE stores SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return translate(r.pool.QueryRow(ctx, query, store.Name, store.Description, store.ID).Scan(&store.UpdatedAt))
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return r.fetchSingle(ctx, `SELECT `+storeColumns+` FROM stores WHERE id=$1`, id)
}

func (r *storeRepository) GetByOwner(ctx context.Context, ownerUserID string) (*domain.Store, error) {
	if !validID(ownerUserID) {
		return nil, ErrNotFound
	}
	return r.fetchSingle(ctx, `SELECT `+storeColumns+` FROM stores WHERE owner_user_id=$1`, ownerUserID)
}

func (r *storeRepository) GetByName(ctx context.Context, name string) (*domain.Store, error) {
	return r.fetchSingle(ctx, `SELECT `+storeColumns+` FROM stores WHERE name=$1`, name)
}

func (r *storeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Store, error) {
	var store domain.Store
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&store.ID,
		&store.OwnerID,
		&store.Name,
		&store.Description,
		&store.CreatedAt,
		&store.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &store, nil
}
