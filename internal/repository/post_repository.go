package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// PostFilter narrows post listings. Empty fields are ignored.
type PostFilter struct {
	CommunityID *string
	UserID      *string
	Limit       int
	Offset      int
}

// PostRepository encapsulates community post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.CommunityPost) error
	Update(ctx context.Context, post *domain.CommunityPost) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.CommunityPost, error)
	List(ctx context.Context, filter PostFilter) ([]domain.CommunityPost, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository instantiates repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postSelect = `
        SELECT p.id, p.community_id, p.user_id, p.title, p.content, p.link, p.image, p.video, p.audio,
               (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id), p.created_at, p.updated_at
        FROM community_posts p`

func (r *postRepository) Create(ctx context.Context, post *domain.CommunityPost) error {
	const query = `
        INSERT INTO community_posts (id, community_id, user_id, title, content, link, image, video, audio)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if !validID(post.CommunityID) {
		return &ForeignKeyViolation{Constraint: ConstraintPostsCommunity}
	}
	return translate(r.pool.QueryRow(ctx, query,
		post.ID,
		post.CommunityID,
		post.UserID,
		post.Title,
		post.Content,
		post.Link,
		post.Image,
		post.Video,
		post.Audio,
	).Scan(&post.CreatedAt, &post.UpdatedAt))
}

func (r *postRepository) Update(ctx context.Context, post *domain.CommunityPost) error {
	const query = `
        UPDATE community_posts SET title=$1, content=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return translate(r.pool.QueryRow(ctx, query, post.Title, post.Content, post.ID).Scan(&post.UpdatedAt))
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM community_posts WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.CommunityPost, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := r.pool.QueryRow(ctx, postSelect+` WHERE p.id=$1`, id)
	post, err := scanPost(row)
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]domain.CommunityPost, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CommunityID != nil {
		if !validID(*filter.CommunityID) {
			return []domain.CommunityPost{}, nil
		}
		args = append(args, *filter.CommunityID)
		clauses = append(clauses, fmt.Sprintf("p.community_id=$%d", len(args)))
	}
	if filter.UserID != nil {
		if !validID(*filter.UserID) {
			return []domain.CommunityPost{}, nil
		}
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("p.user_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY p.created_at DESC LIMIT %d OFFSET %d`,
		postSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CommunityPost, error) {
		return scanPost(row)
	})
}

func scanPost(row pgx.Row) (domain.CommunityPost, error) {
	var post domain.CommunityPost
	err := row.Scan(
		&post.ID,
		&post.CommunityID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.Link,
		&post.Image,
		&post.Video,
		&post.Audio,
		&post.LikeCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	return post, err
}
