package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/pronos-app/pronos/pkg/domain"
	"github.com/pronos-app/pronos/pkg/remote"
	"github.com/pronos-app/pronos/pkg/rss"
)

const defaultPageSize = 20

// statusHandler returns server status, 503 if the database doesn't respond
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"database": "ok",
	}
	code := http.StatusOK
	if err := s.db.Ping(r.Context()); err != nil {
		lgr.Printf("[WARN] database ping failed: %v", err)
		status["status"] = "error"
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	renderJSON(w, r, code, status)
}

// healthHandler checks the posts table is reachable and reports its size
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.db.CountPosts(r.Context())
	if err != nil {
		renderDBError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]int64{"count": count})
}

// listPostsHandler returns a page of posts, newest first
func (s *Server) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	_, maxPageSize := s.config.GetAPIConfig()

	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		renderError(w, r, errors.New("offset must be a non-negative integer"), http.StatusBadRequest, remote.CodeInvalidInput)
		return
	}
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil || limit < 1 || limit > maxPageSize {
		renderError(w, r, fmt.Errorf("limit must be between 1 and %d", maxPageSize), http.StatusBadRequest, remote.CodeInvalidInput)
		return
	}

	posts, err := s.db.ListPosts(r.Context(), offset, limit)
	if err != nil {
		renderDBError(w, r, err)
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	renderJSON(w, r, http.StatusOK, posts)
}

// getPostHandler returns a single post
func (s *Server) getPostHandler(w http.ResponseWriter, r *http.Request) {
	post, err := s.db.GetPost(r.Context(), r.PathValue("id"))
	if err != nil {
		renderDBError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, post)
}

// rssHandler serves the first page of posts as RSS feed
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := s.db.ListPosts(r.Context(), 0, defaultPageSize)
	if err != nil {
		renderDBError(w, r, err)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	feed, err := rss.NewGenerator(scheme + "://" + r.Host).GenerateRSS(posts)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS: %v", err)
		renderError(w, r, errors.New("failed to generate RSS"), http.StatusInternalServerError, "")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(feed)); err != nil {
		lgr.Printf("[WARN] failed to write RSS response: %v", err)
	}
}

// createPostHandler stores a post of the calling user
func (s *Server) createPostHandler(w http.ResponseWriter, r *http.Request, user *domain.Profile) {
	var req domain.NewPost
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errors.New("invalid request body"), http.StatusBadRequest, remote.CodeInvalidInput)
		return
	}

	req.Content = s.sanitize(req.Content)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := validatePost(req); err != nil {
		renderError(w, r, err, http.StatusBadRequest, remote.CodeInvalidInput)
		return
	}

	post, err := s.db.CreatePost(r.Context(), user.ID, req)
	if err != nil {
		renderDBError(w, r, err)
		return
	}
	lgr.Printf("[INFO] post %s created by %s", post.ID, user.Username)
	renderJSON(w, r, http.StatusCreated, post)
}

// createNewsHandler stores a news entry of the calling user
func (s *Server) createNewsHandler(w http.ResponseWriter, r *http.Request, user *domain.Profile) {
	var req domain.NewNews
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errors.New("invalid request body"), http.StatusBadRequest, remote.CodeInvalidInput)
		return
	}

	req.Title = s.sanitize(req.Title)
	req.Content = s.sanitize(req.Content)
	req.Source = s.sanitize(req.Source)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if req.Title == "" || req.Content == "" {
		renderError(w, r, errors.New("title and content are required"), http.StatusBadRequest, remote.CodeInvalidInput)
		return
	}

	news, err := s.db.CreateNews(r.Context(), user.ID, req)
	if err != nil {
		renderDBError(w, r, err)
		return
	}
	lgr.Printf("[INFO] news %s created by %s", news.ID, user.Username)
	renderJSON(w, r, http.StatusCreated, news)
}

// userHandler returns the profile of the calling user
func (s *Server) userHandler(w http.ResponseWriter, r *http.Request, user *domain.Profile) {
	renderJSON(w, r, http.StatusOK, user)
}

// withUser resolves the bearer token into a profile, rejects the request with 401 if it can't
func (s *Server) withUser(h func(http.ResponseWriter, *http.Request, *domain.Profile)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			renderError(w, r, errors.New("user not authenticated"), http.StatusUnauthorized, remote.CodeUnauthorized)
			return
		}

		user, err := s.db.GetProfileByToken(r.Context(), token)
		if errors.Is(err, ErrNotFound) {
			renderError(w, r, errors.New("user not authenticated"), http.StatusUnauthorized, remote.CodeUnauthorized)
			return
		}
		if err != nil {
			renderDBError(w, r, err)
			return
		}
		h(w, r, user)
	}
}

// sanitize strips all markup, keeping the text as typed
func (s *Server) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(text)))
}

func validatePost(p domain.NewPost) error {
	if p.Content == "" {
		return errors.New("content is required")
	}
	if math.IsNaN(p.Odds) || math.IsInf(p.Odds, 0) || p.Odds < 0 {
		return errors.New("odds must be a non-negative number")
	}
	if p.Confidence < 0 || p.Confidence > 100 {
		return errors.New("confidence must be between 0 and 100")
	}
	return nil
}

// queryInt parses an integer query parameter, returns def if it is absent
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
