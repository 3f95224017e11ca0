// Package api is a typed client for the DocsLM backend REST API.
//
// Every call returns *NetworkError on transport failure and *APIError when
// the response payload carries an "error" field. The client owns a cookie jar
// so the Django csrftoken cookie set by the backend is echoed back as the
// X-CSRFToken header on mutating requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docslm-cli/internal/model"
)

const csrfCookieName = "csrftoken"

// Client wraps the backend HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

// NewClient builds a client for the given base URL (scheme + host, no
// trailing slash required).
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     logger,
	}, nil
}

// Search looks up commesse matching query. Callers must reject
// empty/whitespace-only queries before calling; the client only handles the
// URL encoding.
func (c *Client) Search(ctx context.Context, query string) ([]model.Job, error) {
	var out struct {
		Results []model.Job `json:"results"`
		Error   string      `json:"error"`
	}
	q := url.Values{"q": {query}}
	if err := c.get(ctx, "/api/search-commesse/", q, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &APIError{Message: out.Error}
	}
	return out.Results, nil
}

// ListCollections returns the existing collections of a commessa.
func (c *Client) ListCollections(ctx context.Context, commessa string) ([]model.Collection, error) {
	var out struct {
		Collections []model.Collection `json:"collections"`
		Error       string             `json:"error"`
	}
	q := url.Values{"commessa": {commessa}}
	if err := c.get(ctx, "/api/list-collections/", q, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &APIError{Message: out.Error}
	}
	return out.Collections, nil
}

// ListFiles lists one directory of a commessa's file tree. An empty subpath
// means the root. Nesting depth is unbounded on the client side.
func (c *Client) ListFiles(ctx context.Context, commessa, subpath string) (model.DirectoryListing, error) {
	var out struct {
		model.DirectoryListing
		Error string `json:"error"`
	}
	q := url.Values{"commessa": {commessa}}
	if subpath != "" {
		q.Set("subpath", subpath)
	}
	if err := c.get(ctx, "/api/list-job-files/", q, &out); err != nil {
		return model.DirectoryListing{}, err
	}
	if out.Error != "" {
		return model.DirectoryListing{}, &APIError{Message: out.Error}
	}
	return out.DirectoryListing, nil
}

// ListCollectionFiles returns the file metadata stored on a collection.
func (c *Client) ListCollectionFiles(ctx context.Context, commessa, collection string) ([]model.CollectionFile, error) {
	var out struct {
		Files []model.CollectionFile `json:"files"`
		Error string                 `json:"error"`
	}
	q := url.Values{"commessa": {commessa}, "collection": {collection}}
	if err := c.get(ctx, "/api/list-collection-files/", q, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &APIError{Message: out.Error}
	}
	return out.Files, nil
}

// CreateCollection creates a named collection under a commessa from the given
// job-root-relative file paths. This is the only mutating operation of the
// core workflow; callers are responsible for preventing concurrent calls.
func (c *Client) CreateCollection(ctx context.Context, commessa, name string, files []string) error {
	if files == nil {
		files = []string{}
	}
	body := map[string]any{
		"commessa":        commessa,
		"collection_name": name,
		"files":           files,
	}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.post(ctx, "/api/create-collection/", body, &out); err != nil {
		return err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "creation rejected by server"
		}
		return &APIError{Message: msg}
	}
	return nil
}

// Login authenticates a username and returns the display identity.
func (c *Client) Login(ctx context.Context, username string) (model.User, error) {
	body := map[string]any{"username": username}
	var out struct {
		Success bool   `json:"success"`
		Name    string `json:"name"`
		Role    string `json:"role"`
		Initial string `json:"initial"`
		Error   string `json:"error"`
	}
	if err := c.post(ctx, "/api/login/", body, &out); err != nil {
		return model.User{}, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "login rejected by server"
		}
		return model.User{}, &APIError{Message: msg}
	}
	return model.User{Name: out.Name, Role: out.Role, Initial: out.Initial}, nil
}

// SendMessage sends a chat message to the active agent using the given model
// and returns the reply.
func (c *Client) SendMessage(ctx context.Context, message, modelName string) (model.ChatReply, error) {
	body := map[string]any{"message": message, "model": modelName}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		model.ChatReply
	}
	if err := c.post(ctx, "/api/send-message/", body, &out); err != nil {
		return model.ChatReply{}, err
	}
	if out.Error != "" {
		return model.ChatReply{}, &APIError{Message: out.Error}
	}
	return out.ChatReply, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// The backend rejects unauthenticated mutations; a missing cookie simply
	// means the header is omitted.
	if token := c.csrfToken(); token != "" {
		req.Header.Set("X-CSRFToken", token)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("request failed")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if err := json.Unmarshal(data, out); err != nil {
		// Django error pages and proxies answer with HTML; treat anything
		// undecodable as a transport-level failure.
		return &NetworkError{Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}
	return nil
}

func (c *Client) csrfToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.httpClient.Jar.Cookies(u) {
		if ck.Name == csrfCookieName {
			return ck.Value
		}
	}
	return ""
}
