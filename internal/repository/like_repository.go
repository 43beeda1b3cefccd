package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// LikeRepository manages post likes. (post_id, user_id) carries a unique constraint, so a
// duplicate Create returns a *UniqueViolation on ConstraintPostLikesPair.
type LikeRepository interface {
	Create(ctx context.Context, like *domain.PostLike) error
	Delete(ctx context.Context, postID, userID string) error
	ListByPost(ctx context.Context, postID string) ([]domain.PostLike, error)
}

type likeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository builds repository.
func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &likeRepository{pool: pool}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.PostLike) error {
	const query = `
        INSERT INTO post_likes (id, post_id, user_id)
        VALUES ($1,$2,$3)
        RETURNING created_at`
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	return translate(r.pool.QueryRow(ctx, query, like.ID, like.PostID, like.UserID).Scan(&like.CreatedAt))
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID string) error {
	if !validID(postID) || !validID(userID) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`, postID, userID)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *likeRepository) ListByPost(ctx context.Context, postID string) ([]domain.PostLike, error) {
	if !validID(postID) {
		return []domain.PostLike{}, nil
	}
	const query = `
        SELECT id, post_id, user_id, created_at
        FROM post_likes WHERE post_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PostLike, error) {
		var like domain.PostLike
		err := row.Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt)
		return like, err
	})
}
