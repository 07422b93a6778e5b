// Package lcu is a minimal client for the League client's local REST API.
// It only covers the loot endpoints needed to disenchant champion shards.
package lcu

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lootsweep/internal/lockfile"
	"lootsweep/internal/loot"

	"go.uber.org/zap"
)

const (
	// Username is the fixed basic-auth user of the local API.
	Username = "riot"

	// DefaultHost is where the client listens.
	DefaultHost = "127.0.0.1"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	PlayerLootPath = "/lol-loot/v1/player-loot"
	recipesPath    = "/lol-loot/v1/recipes/"
)

// Config tunes the HTTP session.
type Config struct {
	Host     string
	Username string
	Timeout  time.Duration
}

// DefaultConfig returns the local API defaults.
func DefaultConfig() Config {
	return Config{
		Host:     DefaultHost,
		Username: Username,
		Timeout:  DefaultTimeout,
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsServerError reports whether err is a 500 from the local API, the
// signal the client uses for a craft it could not (fully) perform.
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusInternalServerError
}

// Client is one authenticated session against the local API. It is built
// once per run and reused for every request.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a session from lockfile credentials. Certificate
// verification is disabled: the local API serves a self-signed certificate.
func NewClient(creds lockfile.Credentials, cfg Config, logger *zap.Logger) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Username == "" {
		cfg.Username = Username
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // self-signed local endpoint

	return &Client{
		baseURL:  creds.BaseURL(cfg.Host),
		username: cfg.Username,
		password: creds.Password,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PlayerLoot fetches the full loot inventory.
func (c *Client) PlayerLoot(ctx context.Context) ([]loot.Entry, error) {
	body, err := c.do(ctx, http.MethodGet, PlayerLootPath, nil)
	if err != nil {
		return nil, err
	}

	var entries []loot.Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse player loot: %w", err)
	}
	c.logger.Debug("Fetched player loot", zap.Int("entries", len(entries)))
	return entries, nil
}

// Craft runs a recipe repeat times against a single loot identity.
func (c *Client) Craft(ctx context.Context, recipe loot.Recipe, identity string, repeat int) error {
	payload, err := json.Marshal([]string{identity})
	if err != nil {
		return fmt.Errorf("failed to marshal craft body: %w", err)
	}
	path := CraftPath(recipe, repeat)
	_, err = c.do(ctx, http.MethodPost, path, payload)
	return err
}

// CraftPath returns the request URI for a craft.
func CraftPath(recipe loot.Recipe, repeat int) string {
	q := url.Values{}
	q.Set("repeat", strconv.Itoa(repeat))
	return recipesPath + recipe.Name() + "/craft?" + q.Encode()
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Request",
		zap.String("method", method),
		zap.String("url", req.URL.String()),
		zap.ByteString("body", payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}
