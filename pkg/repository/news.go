package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pronos-app/pronos/pkg/domain"
)

// NewsRepository handles news-related database operations
type NewsRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db, now: time.Now}
}

// CreateNews inserts a news entry published by the given user
func (r *NewsRepository) CreateNews(ctx context.Context, userID string, news domain.NewNews) (*domain.News, error) {
	res := &domain.News{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     news.Title,
		Content:   news.Content,
		Source:    news.Source,
		ImageURL:  news.ImageURL,
		CreatedAt: r.now().UTC(),
	}

	err := withLockRetry(ctx, func() error {
		query := `
			INSERT INTO news (id, user_id, title, content, source, image_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		_, err := r.db.ExecContext(ctx, query, res.ID, res.UserID, res.Title, res.Content,
			res.Source, res.ImageURL, res.CreatedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return res, nil
}

// CountNews returns the total number of news entries
func (r *NewsRepository) CountNews(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM news"); err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return count, nil
}
