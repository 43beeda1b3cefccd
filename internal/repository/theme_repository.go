package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ThemeRepository manages store theme customizations, keyed by store id.
type ThemeRepository interface {
	Create(ctx context.Context, theme *domain.ThemeCustomization) error
	Upsert(ctx context.Context, theme *domain.ThemeCustomization) error
	GetByStore(ctx context.Context, storeID string) (*domain.ThemeCustomization, error)
	DeleteByStore(ctx context.Context, storeID string) error
}

type themeRepository struct {
	pool *pgxpool.Pool
}

// NewThemeRepository builds repository.
func NewThemeRepository(pool *pgxpool.Pool) ThemeRepository {
	return &themeRepository{pool: pool}
}

func (r *themeRepository) Create(ctx context.Context, theme *domain.ThemeCustomization) error {
	const query = `
        INSERT INTO theme_customizations (id, store_id, settings)
        VALUES ($1,$2,$3)
        RETURNING created_at, updated_at`
	if theme.ID == "" {
		theme.ID = uuid.NewString()
	}
	return translate(r.pool.QueryRow(ctx, query, theme.ID, theme.StoreID, theme.Settings).
		Scan(&theme.CreatedAt, &theme.UpdatedAt))
}

func (r *themeRepository) Upsert(ctx context.Context, theme *domain.ThemeCustomization) error {
	const query = `
        INSERT INTO theme_customizations (id, store_id, settings)
        VALUES ($1,$2,$3)
        ON CONFLICT (store_id) DO UPDATE SET settings=EXCLUDED.settings, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return translate(r.pool.QueryRow(ctx, query, uuid.NewString(), theme.StoreID, theme.Settings).
		Scan(&theme.ID, &theme.CreatedAt, &theme.UpdatedAt))
}

func (r *themeRepository) GetByStore(ctx context.Context, storeID string) (*domain.ThemeCustomization, error) {
	if !validID(storeID) {
		return nil, ErrNotFound
	}
	const query = `
        SELECT id, store_id, settings, created_at, updated_at
        FROM theme_customizations WHERE store_id=$1`
	var theme domain.ThemeCustomization
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(
		&theme.ID,
		&theme.StoreID,
		&theme.Settings,
		&theme.CreatedAt,
		&theme.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &theme, nil
}

func (r *themeRepository) DeleteByStore(ctx context.Context, storeID string) error {
	if !validID(storeID) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM theme_customizations WHERE store_id=$1`, storeID)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
