package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pronos-app/pronos/pkg/domain"
)

func setupTestDB(t *testing.T) (repos *Repositories, cleanup func()) {
	t.Helper()
	cfg := Config{
		DSN:          "file:" + filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate",
		MaxOpenConns: 1,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	return repos, func() { _ = repos.Close() }
}

func createTestProfile(t *testing.T, repos *Repositories, username string) *domain.Profile {
	t.Helper()
	p := &domain.Profile{Username: username, AvatarURL: "https://cdn.example.com/" + username + ".png", Token: "token-" + username}
	require.NoError(t, repos.Profile.UpsertProfile(context.Background(), p))
	return p
}

// stepClock returns a clock advancing by one minute per call
func stepClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		res := current
		current = current.Add(time.Minute)
		return res
	}
}
