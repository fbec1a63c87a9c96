package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/pronos-app/pronos/pkg/domain"
	"github.com/pronos-app/pronos/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// CountPosts returns the number of stored posts
func (r *RepositoryAdapter) CountPosts(ctx context.Context) (int64, error) {
	count, err := r.repos.Post.CountPosts(ctx)
	return count, translate(err)
}

// ListPosts returns posts with authors, newest first
func (r *RepositoryAdapter) ListPosts(ctx context.Context, offset, limit int) ([]domain.Post, error) {
	posts, err := r.repos.Post.ListPosts(ctx, offset, limit)
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// GetPost returns a single post with its author
func (r *RepositoryAdapter) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	res, err := r.repos.Post.GetPost(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// CreatePost stores a post for the user
func (r *RepositoryAdapter) CreatePost(ctx context.Context, userID string, post domain.NewPost) (*domain.Post, error) {
	res, err := r.repos.Post.CreatePost(ctx, userID, post)
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// CreateNews stores a news entry for the user
func (r *RepositoryAdapter) CreateNews(ctx context.Context, userID string, news domain.NewNews) (*domain.News, error) {
	res, err := r.repos.News.CreateNews(ctx, userID, news)
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// GetProfileByToken returns the profile owning the token
func (r *RepositoryAdapter) GetProfileByToken(ctx context.Context, token string) (*domain.Profile, error) {
	res, err := r.repos.Profile.GetProfileByToken(ctx, token)
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// Ping checks the database connection
func (r *RepositoryAdapter) Ping(ctx context.Context) error {
	return r.repos.Ping(ctx)
}

// translate maps repository errors to the server's error set, keeping the original in the chain
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case repository.IsSchemaError(err):
		return fmt.Errorf("%w: %w", ErrSchema, err)
	default:
		return err
	}
}
