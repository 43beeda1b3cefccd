package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CommunityRepository manages communities.
type CommunityRepository interface {
	Create(ctx context.Context, community *domain.Community) error
	GetByID(ctx context.Context, id string) (*domain.Community, error)
	List(ctx context.Context) ([]domain.Community, error)
}

type communityRepository struct {
	pool *pgxpool.Pool
}

// NewCommunityRepository builds repository.
func NewCommunityRepository(pool *pgxpool.Pool) CommunityRepository {
	return &communityRepository{pool: pool}
}

func (r *communityRepository) Create(ctx context.Context, community *domain.Community) error {
	const query = `
        INSERT INTO communities (id, name, description, owner_user_id)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at`
	if community.ID == "" {
		community.ID = uuid.NewString()
	}
	return translate(r.pool.QueryRow(ctx, query,
		community.ID,
		community.Name,
		community.Description,
		community.OwnerID,
	).Scan(&community.CreatedAt))
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*domain.Community, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	const query = `SELECT id, name, description, owner_user_id, created_at FROM communities WHERE id=$1`
	var c domain.Community
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *communityRepository) List(ctx context.Context) ([]domain.Community, error) {
	const query = `SELECT id, name, description, owner_user_id, created_at FROM communities ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Community, error) {
		var c domain.Community
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.CreatedAt)
		return c, err
	})
}
