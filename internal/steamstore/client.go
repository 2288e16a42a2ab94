package steamstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coverfinder/internal/logging"
	"coverfinder/internal/services"
)

const (
	// DefaultBaseURL is the public Steam store host.
	DefaultBaseURL = "https://store.steampowered.com"
	// DefaultCDNBaseURL serves per-app artwork.
	DefaultCDNBaseURL = "https://cdn.cloudflare.steamstatic.com/steam/apps"
	// DefaultLanguage and DefaultCountry localize search and details.
	DefaultLanguage = "schinese"
	DefaultCountry  = "CN"
	// DefaultMaxResults caps search hits when callers pass a non-positive limit.
	DefaultMaxResults = 20

	maxBodyBytes = 8 << 20
)

// Client queries the Steam storefront.
type Client struct {
	baseURL    string
	cdnBaseURL string
	language   string
	country    string
	httpClient *http.Client
	logger     *slog.Logger
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

// WithCDNBaseURL overrides the asset CDN host.
func WithCDNBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.cdnBaseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithLocale sets the store language and country code.
func WithLocale(language, country string) Option {
	return func(c *Client) {
		if language = strings.TrimSpace(language); language != "" {
			c.language = language
		}
		if country = strings.TrimSpace(country); country != "" {
			c.country = country
		}
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

// New creates a storefront client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cdnBaseURL: DefaultCDNBaseURL,
		language:   DefaultLanguage,
		country:    DefaultCountry,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "steamstore")
	return client
}

// AssetURL builds the CDN URL for an artwork variant of appID.
func (c *Client) AssetURL(appID int64, kind AssetKind) string {
	return AssetURL(c.cdnBaseURL, appID, kind)
}

// Search runs a store search and returns up to limit "app" hits in store order.
// A non-2xx answer yields no hits.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]SearchItem, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	endpoint, err := url.Parse(c.baseURL + "/api/storesearch/")
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "steamstore", "search", "parse store url", err)
	}
	params := url.Values{}
	params.Set("term", term)
	params.Set("l", c.language)
	params.Set("cc", c.country)
	endpoint.RawQuery = params.Encode()

	var payload searchResponse
	found, err := c.getJSON(ctx, "search", endpoint.String(), &payload)
	if err != nil || !found {
		return nil, err
	}

	items := make([]SearchItem, 0, min(limit, len(payload.Items)))
	for _, item := range payload.Items {
		if item.Type != "app" {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

// AppDetails fetches the details block for appID. Unknown apps return (nil, nil).
func (c *Client) AppDetails(ctx context.Context, appID int64) (*AppDetails, error) {
	if !ValidAppID(appID) {
		return nil, services.Wrap(services.ErrValidation, "steamstore", "app details", fmt.Sprintf("invalid app id %d", appID), nil)
	}
	endpoint, err := url.Parse(c.baseURL + "/api/appdetails")
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "steamstore", "app details", "parse store url", err)
	}
	id := strconv.FormatInt(appID, 10)
	params := url.Values{}
	params.Set("appids", id)
	params.Set("l", c.language)
	endpoint.RawQuery = params.Encode()

	var payload map[string]appDetailsEnvelope
	found, err := c.getJSON(ctx, "app details", endpoint.String(), &payload)
	if err != nil || !found {
		return nil, err
	}
	envelope, ok := payload[id]
	if !ok || !envelope.Success || envelope.Data == nil {
		return nil, nil
	}
	if envelope.Data.SteamAppID == 0 {
		envelope.Data.SteamAppID = appID
	}
	return envelope.Data, nil
}

// Probe reports whether a HEAD request for assetURL answers 2xx. Transport
// failures count as absent; only cancellation is returned as an error.
func (c *Client) Probe(ctx context.Context, assetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, assetURL, nil)
	if err != nil {
		return false, nil
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, services.Cancelled("steamstore", "probe", ctx.Err())
		}
		c.logger.Debug("asset probe failed", logging.String("url", assetURL), logging.Error(err))
		return false, nil
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// BestCoverURL prefers the portrait library artwork when the CDN has it, then
// headerImage, then the header template.
func (c *Client) BestCoverURL(ctx context.Context, appID int64, headerImage string) (string, error) {
	libraryURL := c.AssetURL(appID, AssetLibrary)
	exists, err := c.Probe(ctx, libraryURL)
	if err != nil {
		return "", err
	}
	if exists {
		return libraryURL, nil
	}
	return c.FallbackCoverURL(appID, headerImage), nil
}

// FallbackCoverURL returns headerImage or, when empty, the header template.
func (c *Client) FallbackCoverURL(appID int64, headerImage string) string {
	if headerImage != "" {
		return headerImage
	}
	return c.AssetURL(appID, AssetHeader)
}

func (c *Client) getJSON(ctx context.Context, operation, endpoint string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, services.Wrap(services.ErrValidation, "steamstore", operation, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return false, c.transportError(ctx, operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.logger.Debug("storefront returned non-success status",
			logging.String("operation", operation),
			logging.Int("status", resp.StatusCode),
			logging.Duration("latency", latency))
		return false, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, c.transportError(ctx, operation, "read body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, services.Wrap(services.ErrParse, "steamstore", operation, "decode response", err)
	}
	return true, nil
}

func (c *Client) transportError(ctx context.Context, operation, message string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.Canceled) {
		if ctxErr == nil {
			ctxErr = err
		}
		return services.Cancelled("steamstore", operation, ctxErr)
	}
	return services.Wrap(services.ErrNetwork, "steamstore", operation, message, err)
}
