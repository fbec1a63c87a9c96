package feedstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pronos-app/pronos/pkg/domain"
	"github.com/pronos-app/pronos/pkg/feedstate/mocks"
	"github.com/pronos-app/pronos/pkg/remote"
)

var baseTime = time.Date(2024, 4, 20, 21, 0, 0, 0, time.UTC)

// makePosts returns n posts with ids prefix-from..prefix-(from+n-1), newest first
func makePosts(prefix string, from, n int) []domain.Post {
	res := make([]domain.Post, n)
	for i := 0; i < n; i++ {
		res[i] = domain.Post{
			ID:        fmt.Sprintf("%s-%d", prefix, from+i),
			Content:   fmt.Sprintf("prediction %d", from+i),
			Odds:      1.5,
			CreatedAt: baseTime.Add(-time.Duration(from+i) * time.Minute),
			User:      domain.Author{Username: "alice"},
		}
	}
	return res
}

func healthy(context.Context) error { return nil }

func assertUniqueIDs(t *testing.T, posts []domain.Post) {
	t.Helper()
	seen := map[string]bool{}
	for _, p := range posts {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestNew(t *testing.T) {
	s := New(&mocks.RemoteMock{})
	assert.Empty(t, s.Posts())
	assert.Equal(t, PaginationState{Page: 0, HasMore: true, Loading: false}, s.State())
}

func TestStore_FetchMorePosts(t *testing.T) {
	t.Run("full page then short page", func(t *testing.T) {
		pages := [][]domain.Post{makePosts("p", 0, 20), makePosts("p", 20, 5)}
		rm := &mocks.RemoteMock{
			HealthFunc: healthy,
			ListPostsFunc: func(_ context.Context, offset, limit int) ([]domain.Post, error) {
				return pages[offset/limit], nil
			},
		}
		s := New(rm)

		s.FetchMorePosts(context.Background())
		assert.Len(t, s.Posts(), 20)
		assert.Equal(t, PaginationState{Page: 1, HasMore: true}, s.State())

		s.FetchMorePosts(context.Background())
		posts := s.Posts()
		assert.Len(t, posts, 25)
		assert.Equal(t, PaginationState{Page: 2, HasMore: false}, s.State())
		assert.Equal(t, "p-0", posts[0].ID)
		assert.Equal(t, "p-24", posts[24].ID)

		calls := rm.ListPostsCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, 0, calls[0].Offset)
		assert.Equal(t, PageSize, calls[0].Limit)
		assert.Equal(t, 20, calls[1].Offset)
		assert.Equal(t, PageSize, calls[1].Limit)
		assert.Len(t, rm.HealthCalls(), 2, "connectivity checked before each page")
	})

	t.Run("overlapping pages are deduplicated", func(t *testing.T) {
		// second page repeats the last 5 posts of the first one, as happens when new posts shift offsets
		second := append(makePosts("p", 15, 5), makePosts("p", 20, 15)...)
		pages := [][]domain.Post{makePosts("p", 0, 20), second}
		rm := &mocks.RemoteMock{
			HealthFunc: healthy,
			ListPostsFunc: func(_ context.Context, offset, limit int) ([]domain.Post, error) {
				return pages[offset/limit], nil
			},
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())
		s.FetchMorePosts(context.Background())

		posts := s.Posts()
		assert.Len(t, posts, 35)
		assertUniqueIDs(t, posts)
		assert.Equal(t, "p-34", posts[34].ID)
		// a full page was received even though only 15 were new
		assert.Equal(t, PaginationState{Page: 2, HasMore: true}, s.State())
	})

	t.Run("duplicates inside a page are dropped", func(t *testing.T) {
		page := append(makePosts("p", 0, 3), makePosts("p", 1, 2)...)
		rm := &mocks.RemoteMock{
			HealthFunc: healthy,
			ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
				return page, nil
			},
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())

		posts := s.Posts()
		require.Len(t, posts, 3)
		assertUniqueIDs(t, posts)
		assert.False(t, s.State().HasMore)
	})

	t.Run("empty first page", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			HealthFunc: healthy,
			ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
				return nil, nil
			},
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())
		assert.Empty(t, s.Posts())
		assert.Equal(t, PaginationState{Page: 1, HasMore: false}, s.State())
	})

	t.Run("no-op after exhaustion", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			HealthFunc: healthy,
			ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
				return makePosts("p", 0, 3), nil
			},
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())
		before := s.State()

		s.FetchMorePosts(context.Background())
		s.FetchMorePosts(context.Background())
		assert.Equal(t, before, s.State())
		assert.Len(t, s.Posts(), 3)
		assert.Len(t, rm.ListPostsCalls(), 1)
		assert.Len(t, rm.HealthCalls(), 1)
	})
}

func TestStore_FetchMorePosts_InFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	rm := &mocks.RemoteMock{
		HealthFunc: healthy,
		ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
			close(started)
			<-release
			return makePosts("p", 0, 20), nil
		},
	}
	s := New(rm)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.FetchMorePosts(context.Background())
	}()
	<-started

	assert.True(t, s.State().Loading)

	// concurrent calls return immediately without touching state
	for i := 0; i < 5; i++ {
		s.FetchMorePosts(context.Background())
	}
	assert.Empty(t, s.Posts())
	assert.Equal(t, PaginationState{Page: 0, HasMore: true, Loading: true}, s.State())

	close(release)
	wg.Wait()

	assert.Len(t, rm.ListPostsCalls(), 1)
	assert.Len(t, s.Posts(), 20)
	assert.Equal(t, PaginationState{Page: 1, HasMore: true, Loading: false}, s.State())
}

func TestStore_FetchMorePosts_Errors(t *testing.T) {
	t.Run("health check failure", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			HealthFunc: func(context.Context) error {
				return &remote.Error{Kind: remote.KindConnectivity, Message: "backend url is not configured"}
			},
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())

		assert.Empty(t, s.Posts())
		assert.Equal(t, PaginationState{Page: 0, HasMore: false, Loading: false}, s.State())
		assert.Empty(t, rm.ListPostsCalls())
	})

	t.Run("failure after a successful page keeps loaded posts", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			HealthFunc: healthy,
			ListPostsFunc: func(_ context.Context, offset, _ int) ([]domain.Post, error) {
				if offset == 0 {
					return makePosts("p", 0, 20), nil
				}
				return nil, &remote.Error{Kind: remote.KindSchema, Code: remote.CodeSchema, Message: "no such table: posts"}
			},
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())
		s.FetchMorePosts(context.Background())

		assert.Len(t, s.Posts(), 20)
		assert.Equal(t, PaginationState{Page: 1, HasMore: false, Loading: false}, s.State())

		// pagination stays halted
		s.FetchMorePosts(context.Background())
		assert.Len(t, rm.ListPostsCalls(), 2)
	})

	t.Run("canceled context", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			HealthFunc: func(ctx context.Context) error { return ctx.Err() },
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := New(rm)
		s.FetchMorePosts(ctx)
		assert.False(t, s.State().HasMore)
		assert.False(t, s.State().Loading)
	})
}

func TestStore_fetchPage_ErrorMessages(t *testing.T) {
	tests := []struct {
		name      string
		healthErr error
		listErr   error
		msg       string
	}{
		{name: "unauthorized", healthErr: &remote.Error{Kind: remote.KindAuth, Message: "invalid api key"},
			msg: "database connection error, invalid api key or unauthorized"},
		{name: "health schema", healthErr: &remote.Error{Kind: remote.KindSchema, Message: "no such table"},
			msg: "database connection error, invalid database schema"},
		{name: "unreachable", healthErr: &remote.Error{Kind: remote.KindConnectivity, Message: "connection refused"},
			msg: "database connection error: connection refused"},
		{name: "list schema", listErr: &remote.Error{Kind: remote.KindSchema, Message: "no such column"},
			msg: "error fetching posts, database schema error"},
		{name: "list duplicate", listErr: &remote.Error{Kind: remote.KindConstraint, Message: "dup"},
			msg: "error fetching posts, duplicate entry"},
		{name: "list other", listErr: errors.New("boom"), msg: "error fetching posts: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := &mocks.RemoteMock{
				HealthFunc: func(context.Context) error { return tt.healthErr },
				ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
					return nil, tt.listErr
				},
			}
			_, err := New(rm).fetchPage(context.Background(), 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestStore_AddPost(t *testing.T) {
	user := &domain.Profile{ID: "u1", Username: "alice", AvatarURL: "https://cdn.example.com/a.png"}
	signedIn := func(context.Context) (*domain.Profile, error) { return user, nil }

	t.Run("prepends created post", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			HealthFunc: healthy,
			ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
				return makePosts("p", 0, 20), nil
			},
			CurrentUserFunc: signedIn,
			InsertPostFunc: func(_ context.Context, post domain.NewPost) (*domain.Post, error) {
				return &domain.Post{ID: "new", Content: post.Content, ImageURL: post.ImageURL, Odds: post.Odds,
					Confidence: post.Confidence, CreatedAt: baseTime.Add(-time.Hour), User: user.Author()}, nil
			},
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())

		post, err := s.AddPost(context.Background(), NewPostInput{Text: "PSG win", Image: "img.png", TotalOdds: "2,50", Confidence: 80})
		require.NoError(t, err)
		assert.Equal(t, "new", post.ID)

		calls := rm.InsertPostCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, domain.NewPost{Content: "PSG win", ImageURL: "img.png", Odds: 2.5, Confidence: 80}, calls[0].Post)

		posts := s.Posts()
		require.Len(t, posts, 21)
		assert.Equal(t, "new", posts[0].ID, "new post first even with an older timestamp")
		assert.Equal(t, "p-0", posts[1].ID)
		assert.Equal(t, PaginationState{Page: 1, HasMore: true}, s.State())
	})

	t.Run("added post is not duplicated by later pages", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			HealthFunc:      healthy,
			CurrentUserFunc: signedIn,
			InsertPostFunc: func(context.Context, domain.NewPost) (*domain.Post, error) {
				return &domain.Post{ID: "p-3"}, nil
			},
			ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
				return makePosts("p", 0, 5), nil
			},
		}
		s := New(rm)
		_, err := s.AddPost(context.Background(), NewPostInput{Text: "x", TotalOdds: "1.5"})
		require.NoError(t, err)

		s.FetchMorePosts(context.Background())
		posts := s.Posts()
		assert.Len(t, posts, 5)
		assertUniqueIDs(t, posts)
		assert.Equal(t, "p-3", posts[0].ID)
	})

	// seeded returns a store holding one fetched page, plus a snapshot of its state
	seeded := func(t *testing.T, rm *mocks.RemoteMock) (*Store, []domain.Post, PaginationState) {
		t.Helper()
		rm.HealthFunc = healthy
		rm.ListPostsFunc = func(context.Context, int, int) ([]domain.Post, error) {
			return makePosts("p", 0, PageSize), nil
		}
		s := New(rm)
		s.FetchMorePosts(context.Background())
		require.Len(t, s.Posts(), PageSize)
		return s, s.Posts(), s.State()
	}

	assertUnchanged := func(t *testing.T, s *Store, posts []domain.Post, state PaginationState) {
		t.Helper()
		assert.Equal(t, posts, s.Posts())
		assert.Equal(t, state, s.State())
	}

	t.Run("invalid odds", func(t *testing.T) {
		rm := &mocks.RemoteMock{CurrentUserFunc: signedIn}
		s, posts, state := seeded(t, rm)

		post, err := s.AddPost(context.Background(), NewPostInput{Text: "x", TotalOdds: "abc"})
		require.Error(t, err)
		assert.Nil(t, post)
		assert.ErrorIs(t, err, ErrInvalidOdds)
		assert.Empty(t, rm.InsertPostCalls())
		assertUnchanged(t, s, posts, state)
	})

	t.Run("odds with trailing text", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			CurrentUserFunc: signedIn,
			InsertPostFunc: func(_ context.Context, post domain.NewPost) (*domain.Post, error) {
				return &domain.Post{ID: "new", Content: post.Content, Odds: post.Odds, User: user.Author()}, nil
			},
		}
		s, _, _ := seeded(t, rm)

		post, err := s.AddPost(context.Background(), NewPostInput{Text: "OM draw", TotalOdds: "1,85 cote"})
		require.NoError(t, err)
		assert.InDelta(t, 1.85, post.Odds, 0.000001)
		require.Len(t, rm.InsertPostCalls(), 1)
		assert.InDelta(t, 1.85, rm.InsertPostCalls()[0].Post.Odds, 0.000001)
		assert.Len(t, s.Posts(), PageSize+1)
	})

	t.Run("signed out", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			CurrentUserFunc: func(context.Context) (*domain.Profile, error) { return nil, nil },
		}
		s, posts, state := seeded(t, rm)

		_, err := s.AddPost(context.Background(), NewPostInput{Text: "x", TotalOdds: "2"})
		require.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, "user not authenticated", err.Error())
		assert.Empty(t, rm.InsertPostCalls())
		assertUnchanged(t, s, posts, state)
	})

	t.Run("user lookup failure", func(t *testing.T) {
		backendErr := &remote.Error{Kind: remote.KindConnectivity, Message: "refused"}
		rm := &mocks.RemoteMock{
			CurrentUserFunc: func(context.Context) (*domain.Profile, error) { return nil, backendErr },
		}
		s, posts, state := seeded(t, rm)

		_, err := s.AddPost(context.Background(), NewPostInput{Text: "x", TotalOdds: "2"})
		require.ErrorIs(t, err, ErrNotAuthenticated)
		assert.ErrorIs(t, err, backendErr)
		assert.Empty(t, rm.InsertPostCalls())
		assertUnchanged(t, s, posts, state)
	})

	t.Run("duplicate post", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			CurrentUserFunc: signedIn,
			InsertPostFunc: func(context.Context, domain.NewPost) (*domain.Post, error) {
				return nil, &remote.Error{Kind: remote.KindConstraint, Code: remote.CodeUniqueViolation, Status: 409, Message: "duplicate entry"}
			},
		}
		s, posts, state := seeded(t, rm)

		_, err := s.AddPost(context.Background(), NewPostInput{Text: "x", TotalOdds: "2"})
		require.ErrorIs(t, err, ErrDuplicatePost)
		assert.Equal(t, "a post with this content already exists", err.Error())
		var rerr *remote.Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, remote.CodeUniqueViolation, rerr.Code)
		assertUnchanged(t, s, posts, state)
	})

	t.Run("other insert failure", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			CurrentUserFunc: signedIn,
			InsertPostFunc: func(context.Context, domain.NewPost) (*domain.Post, error) {
				return nil, &remote.Error{Kind: remote.KindValidation, Code: remote.CodeInvalidInput, Message: "content is required"}
			},
		}
		s, posts, state := seeded(t, rm)

		_, err := s.AddPost(context.Background(), NewPostInput{TotalOdds: "2"})
		require.Error(t, err)
		assert.Equal(t, "error adding post: content is required (22P02)", err.Error())
		assert.Equal(t, remote.KindValidation, remote.KindOf(err))
		assertUnchanged(t, s, posts, state)
	})

	t.Run("empty insert response", func(t *testing.T) {
		rm := &mocks.RemoteMock{
			CurrentUserFunc: signedIn,
			InsertPostFunc:  func(context.Context, domain.NewPost) (*domain.Post, error) { return nil, nil },
		}
		s, posts, state := seeded(t, rm)

		_, err := s.AddPost(context.Background(), NewPostInput{Text: "x", TotalOdds: "2"})
		require.Error(t, err)
		assertUnchanged(t, s, posts, state)
	})
}

func TestStore_PostsReturnsCopy(t *testing.T) {
	rm := &mocks.RemoteMock{
		HealthFunc: healthy,
		ListPostsFunc: func(context.Context, int, int) ([]domain.Post, error) {
			return makePosts("p", 0, 2), nil
		},
	}
	s := New(rm)
	s.FetchMorePosts(context.Background())

	posts := s.Posts()
	posts[0].Content = "changed"
	assert.Equal(t, "prediction 0", s.Posts()[0].Content)
}
