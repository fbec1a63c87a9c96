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

// ProfileRepository handles profile-related database operations
type ProfileRepository struct {
	db *sqlx.DB
}

// profileSQL represents a profile for SQL operations
type profileSQL struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	AvatarURL string    `db:"avatar_url"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// UpsertProfile creates a profile or updates avatar and token of an existing one with the same username.
// The profile's ID and CreatedAt are set from the stored row.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	if profile.Username == "" {
		return errors.New("upsert profile: empty username")
	}
	if profile.Token == "" {
		return errors.New("upsert profile: empty token")
	}

	err := withLockRetry(ctx, func() error {
		query := `
			INSERT INTO profiles (id, username, avatar_url, token)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(username) DO UPDATE SET
				avatar_url = excluded.avatar_url,
				token = excluded.token
		`
		_, err := r.db.ExecContext(ctx, query, uuid.NewString(), profile.Username, profile.AvatarURL, profile.Token)
		return err
	})
	if err != nil {
		if isUniqueError(err) {
			return fmt.Errorf("upsert profile %s: %w", profile.Username, ErrDuplicate)
		}
		return fmt.Errorf("upsert profile %s: %w", profile.Username, err)
	}

	var stored profileSQL
	if err := r.db.GetContext(ctx, &stored, "SELECT * FROM profiles WHERE username = ?", profile.Username); err != nil {
		return fmt.Errorf("get upserted profile: %w", err)
	}
	profile.ID = stored.ID
	profile.CreatedAt = stored.CreatedAt
	return nil
}

// GetProfileByToken retrieves a profile by its access token
func (r *ProfileRepository) GetProfileByToken(ctx context.Context, token string) (*domain.Profile, error) {
	if token == "" {
		return nil, fmt.Errorf("get profile by token: %w", ErrNotFound)
	}
	var p profileSQL
	err := r.db.GetContext(ctx, &p, "SELECT * FROM profiles WHERE token = ?", token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile by token: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by token: %w", err)
	}
	return p.toDomain(), nil
}

func (p *profileSQL) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:        p.ID,
		Username:  p.Username,
		AvatarURL: p.AvatarURL,
		Token:     p.Token,
		CreatedAt: p.CreatedAt,
	}
}
