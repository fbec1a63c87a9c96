package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pronos-app/pronos/pkg/domain"
	"github.com/pronos-app/pronos/pkg/remote"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	version   string
	debug     bool
	sanitizer *bluemonday.Policy

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for server operations
type Database interface {
	CountPosts(ctx context.Context) (int64, error)
	ListPosts(ctx context.Context, offset, limit int) ([]domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	CreatePost(ctx context.Context, userID string, post domain.NewPost) (*domain.Post, error)
	CreateNews(ctx context.Context, userID string, news domain.NewNews) (*domain.News, error)
	GetProfileByToken(ctx context.Context, token string) (*domain.Profile, error)
	Ping(ctx context.Context) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetAPIConfig() (apiKey string, maxPageSize int)
}

// errors reported by Database implementations, mapped to wire codes by handlers
var (
	ErrDuplicate = errors.New("duplicate entry")
	ErrNotFound  = errors.New("not found")
	ErrSchema    = errors.New("invalid database schema")
)

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		version:   version,
		debug:     debug,
		sanitizer: bluemonday.StrictPolicy(),
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("pronos", "pronos-app", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.Use(s.apiKeyAuth)
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /health", s.healthHandler)
		r.HandleFunc("GET /posts", s.listPostsHandler)
		r.HandleFunc("GET /posts/{id}", s.getPostHandler)
		r.HandleFunc("POST /posts", s.withUser(s.createPostHandler))
		r.HandleFunc("GET /user", s.withUser(s.userHandler))
		r.HandleFunc("POST /news", s.withUser(s.createNewsHandler))
		r.HandleFunc("GET /rss", s.rssHandler)
	})
}

// apiKeyAuth rejects requests without the configured api key, passes everything if no key is set
func (s *Server) apiKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey, _ := s.config.GetAPIConfig()
		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		if subtle.ConstantTimeCompare([]byte(r.Header.Get("apikey")), []byte(apiKey)) != 1 {
			renderError(w, r, errors.New("invalid api key"), http.StatusUnauthorized, remote.CodeUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// errorResponse is the wire format of a failed request
type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// renderError sends error response as JSON with an optional error code
func renderError(w http.ResponseWriter, r *http.Request, err error, status int, code string) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, status, errorResponse{Code: code, Message: errMsg})
}

// renderDBError maps a database error to status and code
func renderDBError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrDuplicate):
		renderError(w, r, ErrDuplicate, http.StatusConflict, remote.CodeUniqueViolation)
	case errors.Is(err, ErrSchema):
		lgr.Printf("[ERROR] %v", err)
		renderError(w, r, ErrSchema, http.StatusInternalServerError, remote.CodeSchema)
	case errors.Is(err, ErrNotFound):
		renderError(w, r, err, http.StatusNotFound, "")
	default:
		lgr.Printf("[ERROR] database error: %v", err)
		renderError(w, r, errors.New("internal error"), http.StatusInternalServerError, "")
	}
}
