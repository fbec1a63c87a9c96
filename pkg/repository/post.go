package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pronos-app/pronos/pkg/domain"
)

// PostRepository handles post-related database operations
type PostRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// postSQL represents a post joined with its author for SQL operations
type postSQL struct {
	ID         string    `db:"id"`
	Content    string    `db:"content"`
	ImageURL   string    `db:"image_url"`
	Odds       float64   `db:"odds"`
	Confidence int       `db:"confidence"`
	Likes      int       `db:"likes"`
	Comments   int       `db:"comments"`
	Shares     int       `db:"shares"`
	CreatedAt  time.Time `db:"created_at"`

	// joined from profiles
	Username  string `db:"username"`
	AvatarURL string `db:"avatar_url"`
}

const selectPostsWithAuthor = `
	SELECT p.id, p.content, p.image_url, p.odds, p.confidence,
	       p.likes, p.comments, p.shares, p.created_at,
	       pr.username, pr.avatar_url
	FROM posts p
	JOIN profiles pr ON pr.id = p.user_id
`

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db, now: time.Now}
}

// CreatePost inserts a new post for the given user with zeroed engagement counters
// and returns the stored row joined with its author
func (r *PostRepository) CreatePost(ctx context.Context, userID string, post domain.NewPost) (*domain.Post, error) {
	id := uuid.NewString()
	createdAt := r.now().UTC()

	err := withLockRetry(ctx, func() error {
		query := `
			INSERT INTO posts (
				id, user_id, content, image_url, odds, confidence,
				likes, comments, shares, created_at
			) VALUES (?, ?, ?, ?, ?, ?, 0, 0, 0, ?)
		`
		_, err := r.db.ExecContext(ctx, query, id, userID, post.Content, post.ImageURL,
			post.Odds, post.Confidence, createdAt)
		return err
	})
	if err != nil {
		if isUniqueError(err) {
			return nil, fmt.Errorf("create post: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	return r.GetPost(ctx, id)
}

// GetPost retrieves a post with its author by ID
func (r *PostRepository) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var p postSQL
	err := r.db.GetContext(ctx, &p, selectPostsWithAuthor+" WHERE p.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p.toDomain(), nil
}

// ListPosts retrieves a range of posts ordered from the most recent one
func (r *PostRepository) ListPosts(ctx context.Context, offset, limit int) ([]domain.Post, error) {
	query := selectPostsWithAuthor + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?
	`
	var rows []postSQL
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, len(rows))
	for i := range rows {
		posts[i] = *rows[i].toDomain()
	}
	return posts, nil
}

// CountPosts returns the total number of posts
func (r *PostRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM posts"); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func (p *postSQL) toDomain() *domain.Post {
	return &domain.Post{
		ID:         p.ID,
		Content:    p.Content,
		ImageURL:   p.ImageURL,
		Odds:       p.Odds,
		Confidence: p.Confidence,
		CreatedAt:  p.CreatedAt,
		Likes:      p.Likes,
		Comments:   p.Comments,
		Shares:     p.Shares,
		User:       domain.Author{Username: p.Username, AvatarURL: p.AvatarURL},
	}
}
