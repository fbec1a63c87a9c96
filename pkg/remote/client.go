// Package remote implements the client side of the backend API: querying and inserting
// posts, resolving the signed-in user and publishing news. Every failure is translated
// once into *Error, so callers never inspect backend-specific codes.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/pronos-app/pronos/pkg/domain"
)

// Params contains the client configuration
type Params struct {
	URL        string        // backend base URL, e.g. http://localhost:8080
	APIKey     string        // shared api key sent as "apikey" header
	Token      string        // bearer token of the acting user, empty when signed out
	Timeout    time.Duration // per-request timeout, ignored when HTTPClient is set
	HTTPClient *http.Client
}

// Client talks to the backend over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
}

// New makes a backend client
func New(params Params) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(params.URL, "/"),
		apiKey:     params.APIKey,
		token:      params.Token,
		httpClient: httpClient,
	}
}

// Health checks the backend is configured, reachable and its posts collection is queryable
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, nil, &resp); err != nil {
		return err
	}
	lgr.Printf("[DEBUG] backend healthy, %d posts", resp.Count)
	return nil
}

// ListPosts returns up to limit posts starting at offset, most recent first
func (c *Client) ListPosts(ctx context.Context, offset, limit int) ([]domain.Post, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, "/api/v1/posts", query, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// InsertPost creates a post on behalf of the signed-in user and returns the stored row
func (c *Client) InsertPost(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	var res domain.Post
	if err := c.do(ctx, http.MethodPost, "/api/v1/posts", nil, post, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// InsertNews publishes a news entry on behalf of the signed-in user
func (c *Client) InsertNews(ctx context.Context, news domain.NewNews) (*domain.News, error) {
	var res domain.News
	if err := c.do(ctx, http.MethodPost, "/api/v1/news", nil, news, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CurrentUser returns the signed-in user's profile, or nil without error when signed out
func (c *Client) CurrentUser(ctx context.Context) (*domain.Profile, error) {
	if c.token == "" {
		return nil, nil
	}

	var res domain.Profile
	err := c.do(ctx, http.MethodGet, "/api/v1/user", nil, nil, &res)
	var rerr *Error
	if errors.As(err, &rerr) && rerr.Status == http.StatusUnauthorized {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// do sends a request and decodes a JSON response into result, translating any failure into *Error
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	if c.baseURL == "" {
		return &Error{Kind: KindConnectivity, Message: "backend url is not configured"}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: fmt.Sprintf("encode request: %v", err), Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return &Error{Kind: KindConnectivity, Message: fmt.Sprintf("make request: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	lgr.Printf("[DEBUG] %s %s", method, reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newTransportError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError("read response", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		if jerr := json.Unmarshal(data, &eb); jerr != nil || (eb.Code == "" && eb.Message == "") {
			eb = errorBody{Message: strings.TrimSpace(string(data))}
		}
		return newStatusError(resp.StatusCode, eb)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return &Error{Kind: KindSchema, Status: resp.StatusCode,
			Message: fmt.Sprintf("decode response of %s %s: %v", method, path, err), Err: err}
	}
	return nil
}
