// Package feedstate keeps the client-side feed: a growing, deduplicated list of posts loaded
// page by page from the backend, newest first, plus optimistic prepending of posts created
// by the signed-in user.
//
// A Store is the single owner of its posts and pagination state. Callers mutate it only
// through FetchMorePosts and AddPost and read copies via Posts and State.
package feedstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/pronos-app/pronos/pkg/domain"
	"github.com/pronos-app/pronos/pkg/remote"
)

//go:generate moq -out mocks/remote.go -pkg mocks -skip-ensure -fmt goimports . Remote

// PageSize is the number of posts requested per page
const PageSize = 20

var (
	// ErrNotAuthenticated is returned by AddPost when no user is signed in
	ErrNotAuthenticated = errors.New("user not authenticated")
	// ErrDuplicatePost is returned by AddPost when the backend already has the same post
	ErrDuplicatePost = errors.New("a post with this content already exists")
)

// Remote is the backend used by the store
type Remote interface {
	Health(ctx context.Context) error
	ListPosts(ctx context.Context, offset, limit int) ([]domain.Post, error)
	CurrentUser(ctx context.Context) (*domain.Profile, error)
	InsertPost(ctx context.Context, post domain.NewPost) (*domain.Post, error)
}

// PaginationState is a snapshot of the store's paging progress
type PaginationState struct {
	Page    int  // zero-based index of the next page to fetch
	HasMore bool // false once a short page was received or a fetch failed
	Loading bool // true while a fetch is in flight
}

// NewPostInput is the raw user input for a new post
type NewPostInput struct {
	Text       string
	Image      string // optional image reference
	TotalOdds  string // decimal odds, comma or period as separator
	Confidence int
}

// Store holds the feed posts and pagination state
type Store struct {
	remote Remote

	mu      sync.Mutex
	posts   []domain.Post
	ids     map[string]struct{}
	page    int
	hasMore bool
	loading bool
}

// New makes an empty store, ready to fetch the first page
func New(r Remote) *Store {
	return &Store{remote: r, ids: map[string]struct{}{}, hasMore: true}
}

// FetchMorePosts loads the next page and appends posts not seen yet.
// It is a no-op while another fetch is in flight or after pagination is exhausted.
// Errors are logged and stop pagination, already loaded posts are kept.
func (s *Store) FetchMorePosts(ctx context.Context) {
	s.mu.Lock()
	if s.loading || !s.hasMore {
		s.mu.Unlock()
		return
	}
	s.loading = true
	page := s.page
	s.mu.Unlock()

	posts, err := s.fetchPage(ctx, page)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		lgr.Printf("[WARN] error fetching posts: %v", err)
		s.hasMore = false
		return
	}

	added := 0
	for _, p := range posts {
		if _, seen := s.ids[p.ID]; seen {
			continue
		}
		s.ids[p.ID] = struct{}{}
		s.posts = append(s.posts, p)
		added++
	}
	s.hasMore = len(posts) >= PageSize
	s.page++
	lgr.Printf("[DEBUG] fetched page %d, received %d posts, added %d, has more: %v", page, len(posts), added, s.hasMore)
}

// fetchPage checks the backend and requests one page
func (s *Store) fetchPage(ctx context.Context, page int) ([]domain.Post, error) {
	if err := s.remote.Health(ctx); err != nil {
		switch remote.KindOf(err) {
		case remote.KindAuth:
			return nil, fmt.Errorf("database connection error, invalid api key or unauthorized: %w", err)
		case remote.KindSchema:
			return nil, fmt.Errorf("database connection error, invalid database schema: %w", err)
		default:
			return nil, fmt.Errorf("database connection error: %w", err)
		}
	}

	posts, err := s.remote.ListPosts(ctx, page*PageSize, PageSize)
	if err != nil {
		switch remote.KindOf(err) {
		case remote.KindSchema:
			return nil, fmt.Errorf("error fetching posts, database schema error: %w", err)
		case remote.KindConstraint:
			return nil, fmt.Errorf("error fetching posts, duplicate entry: %w", err)
		default:
			return nil, fmt.Errorf("error fetching posts: %w", err)
		}
	}
	return posts, nil
}

// AddPost validates the input, inserts the post for the signed-in user and puts it
// in front of the feed. On failure the feed is unchanged and a descriptive error is returned.
func (s *Store) AddPost(ctx context.Context, in NewPostInput) (*domain.Post, error) {
	post, err := s.insert(ctx, in)
	if err != nil {
		lgr.Printf("[WARN] error adding post: %v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// new post goes first regardless of timestamps of loaded posts
	s.posts = append([]domain.Post{*post}, s.posts...)
	s.ids[post.ID] = struct{}{}
	lgr.Printf("[INFO] added post %s by %s", post.ID, post.User.Username)
	return post, nil
}

func (s *Store) insert(ctx context.Context, in NewPostInput) (*domain.Post, error) {
	user, err := s.remote.CurrentUser(ctx)
	if err != nil {
		return nil, &postError{reason: ErrNotAuthenticated, cause: err}
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	odds, err := ParseOdds(in.TotalOdds)
	if err != nil {
		return nil, err
	}

	post, err := s.remote.InsertPost(ctx, domain.NewPost{
		Content:    in.Text,
		ImageURL:   in.Image,
		Odds:       odds,
		Confidence: in.Confidence,
	})
	if err != nil {
		if remote.KindOf(err) == remote.KindConstraint {
			return nil, &postError{reason: ErrDuplicatePost, cause: err}
		}
		return nil, fmt.Errorf("error adding post: %w", err)
	}
	if post == nil {
		return nil, errors.New("error adding post: empty response")
	}
	return post, nil
}

// Posts returns a copy of the loaded posts, most recent first
func (s *Store) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]domain.Post, len(s.posts))
	copy(res, s.posts)
	return res
}

// State returns the current pagination state
func (s *Store) State() PaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PaginationState{Page: s.page, HasMore: s.hasMore, Loading: s.loading}
}

// postError reports a user-facing reason while keeping the backend cause in the chain
type postError struct {
	reason error
	cause  error
}

func (e *postError) Error() string {
	return e.reason.Error()
}

func (e *postError) Unwrap() []error {
	return []error{e.reason, e.cause}
}
