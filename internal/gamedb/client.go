package gamedb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coverfinder/internal/catalogstore"
	"coverfinder/internal/logging"
	"coverfinder/internal/services"
)

const (
	// DefaultBaseURL is the public GameDB mirror.
	DefaultBaseURL = "https://lizardbyte.github.io/GameDB"
	// DefaultImageBaseURL is the IGDB image CDN.
	DefaultImageBaseURL = "https://images.igdb.com/igdb/image/upload"

	previewSize = "t_cover_big"
	saveSize    = "t_cover_big_2x"

	maxBodyBytes = 32 << 20
)

// ResponseStore persists raw catalog responses between runs.
type ResponseStore interface {
	Get(ctx context.Context, key string) (catalogstore.Entry, bool, error)
	Put(ctx context.Context, entry catalogstore.Entry) error
}

// Client fetches bucket manifests and game records.
type Client struct {
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	store        ResponseStore
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithImageBaseURL overrides the IGDB image host.
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.imageBaseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithStore enables the persistent response tier.
func WithStore(store ResponseStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a GameDB client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: DefaultImageBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "gamedb")
	return client
}

// BucketPath returns the relative path of a shard manifest.
func BucketPath(shard string) string {
	return "buckets/" + url.PathEscape(shard) + ".json"
}

// GamePath returns the relative path of a game record.
func GamePath(id string) string {
	return "games/" + url.PathEscape(id) + ".json"
}

// PreviewURL returns the small cover image URL for hash.
func (c *Client) PreviewURL(hash string) string {
	return fmt.Sprintf("%s/%s/%s.jpg", c.imageBaseURL, previewSize, hash)
}

// SaveURL returns the high resolution cover image URL for hash.
func (c *Client) SaveURL(hash string) string {
	return fmt.Sprintf("%s/%s/%s.png", c.imageBaseURL, saveSize, hash)
}

// FetchBucket loads the manifest for shard. A missing bucket returns (nil, nil).
func (c *Client) FetchBucket(ctx context.Context, shard string) (*Manifest, error) {
	var manifest Manifest
	found, err := c.getJSON(ctx, "fetch bucket", BucketPath(shard), &manifest)
	if err != nil || !found {
		return nil, err
	}
	return &manifest, nil
}

// FetchGame loads the record for id. A missing game returns (nil, nil).
func (c *Client) FetchGame(ctx context.Context, id string) (*Game, error) {
	var game Game
	found, err := c.getJSON(ctx, "fetch game", GamePath(id), &game)
	if err != nil || !found {
		return nil, err
	}
	return &game, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, out any) (bool, error) {
	if c.store != nil {
		entry, ok, err := c.store.Get(ctx, path)
		switch {
		case err != nil:
			c.logger.Debug("catalog store lookup failed", logging.String("key", path), logging.Error(err))
		case ok && !entry.Found():
			return false, nil
		case ok:
			if err := json.Unmarshal(entry.Body, out); err == nil {
				return true, nil
			}
			c.logger.Debug("discarding unreadable stored response", logging.String("key", path))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return false, services.Wrap(services.ErrValidation, "gamedb", operation, "build request", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return false, c.transportError(ctx, operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.logger.Debug("catalog returned non-success status",
			logging.String("path", path),
			logging.Int("status", resp.StatusCode),
			logging.Duration("latency", latency))
		if definitiveMiss(resp.StatusCode) {
			c.save(ctx, catalogstore.Entry{Key: path, Status: resp.StatusCode})
		}
		return false, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, c.transportError(ctx, operation, "read body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, services.Wrap(services.ErrParse, "gamedb", operation, path, err)
	}
	c.save(ctx, catalogstore.Entry{Key: path, Status: resp.StatusCode, Body: body})
	return true, nil
}

// definitiveMiss reports whether a status means the document does not exist.
// Throttling and server errors are transient and never reach the store.
func definitiveMiss(status int) bool {
	return status == http.StatusNotFound || status == http.StatusGone
}

func (c *Client) transportError(ctx context.Context, operation, message string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.Canceled) {
		if ctxErr == nil {
			ctxErr = err
		}
		return services.Cancelled("gamedb", operation, ctxErr)
	}
	return services.Wrap(services.ErrNetwork, "gamedb", operation, message, err)
}

func (c *Client) save(ctx context.Context, entry catalogstore.Entry) {
	if c.store == nil || ctx.Err() != nil {
		return
	}
	if err := c.store.Put(ctx, entry); err != nil {
		c.logger.Warn("failed to persist catalog response",
			logging.String(logging.FieldEventType, "catalog_store_write_failed"),
			logging.String("key", entry.Key),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check cache.path permissions"),
			logging.String(logging.FieldImpact, "response will be fetched again next run"))
	}
}
