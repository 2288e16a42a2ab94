package coverart

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"coverfinder/internal/logging"
	"coverfinder/internal/services"
	"coverfinder/internal/steamstore"
)

// StorefrontClient is the subset of the Steam store client used for resolution.
type StorefrontClient interface {
	Search(ctx context.Context, term string, limit int) ([]steamstore.SearchItem, error)
	AppDetails(ctx context.Context, appID int64) (*steamstore.AppDetails, error)
	BestCoverURL(ctx context.Context, appID int64, headerImage string) (string, error)
	FallbackCoverURL(appID int64, headerImage string) string
}

// StorefrontOptions tunes storefront resolution.
type StorefrontOptions struct {
	// SingleLimit is how many search hits ResolveOne inspects. Defaults to 1.
	SingleLimit int
	// SkipProbe disables the HEAD probe for library artwork.
	SkipProbe bool
	Logger    *slog.Logger
}

// StorefrontResolver resolves titles against the storefront search.
type StorefrontResolver struct {
	client      StorefrontClient
	singleLimit int
	probe       bool
	logger      *slog.Logger
}

// NewStorefrontResolver builds a resolver.
func NewStorefrontResolver(client StorefrontClient, opts StorefrontOptions) *StorefrontResolver {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	singleLimit := opts.SingleLimit
	if singleLimit <= 0 {
		singleLimit = 1
	}
	return &StorefrontResolver{
		client:      client,
		singleLimit: singleLimit,
		probe:       !opts.SkipProbe,
		logger:      logging.NewComponentLogger(logger, "storefront"),
	}
}

// ResolveOne returns the save URL of the first usable storefront hit, or "".
func (r *StorefrontResolver) ResolveOne(ctx context.Context, title string) (string, error) {
	results, err := r.ResolveMany(ctx, title, r.singleLimit)
	if err != nil || len(results) == 0 {
		return "", err
	}
	return results[0].SaveURL, nil
}

// ResolveMany returns one cover per search hit that has preview artwork, in
// search order, at most maxResults.
func (r *StorefrontResolver) ResolveMany(ctx context.Context, title string, maxResults int) ([]CoverResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	logger := logging.WithContext(ctx, r.logger)

	items, err := r.client.Search(ctx, title, maxResults)
	if err != nil {
		return nil, r.absorb(logger, "search", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	tasks := make([]Task[*CoverResult], len(items))
	for i, item := range items {
		tasks[i] = func(ctx context.Context) (*CoverResult, error) {
			return r.coverFor(ctx, item)
		}
	}
	outcomes := SettleAll(ctx, tasks)

	if err := ctx.Err(); err != nil {
		return nil, services.Cancelled("storefront", "resolve many", err)
	}

	var results []CoverResult
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			if services.IsCancelled(outcome.Err) {
				return nil, asCancelled("storefront", "resolve many", outcome.Err)
			}
			logger.Debug("dropping storefront hit",
				logging.Int64("app_id", items[i].ID),
				logging.Error(outcome.Err))
			continue
		}
		if outcome.Value != nil {
			results = append(results, *outcome.Value)
		}
	}
	return results, nil
}

func (r *StorefrontResolver) coverFor(ctx context.Context, item steamstore.SearchItem) (*CoverResult, error) {
	details, err := r.client.AppDetails(ctx, item.ID)
	if err != nil || details == nil {
		return nil, err
	}
	preview := details.PreviewImage()
	if preview == "" {
		return nil, nil
	}

	save := r.client.FallbackCoverURL(item.ID, details.HeaderImage)
	if r.probe {
		if save, err = r.client.BestCoverURL(ctx, item.ID, details.HeaderImage); err != nil {
			return nil, err
		}
	}

	name := details.Name
	if name == "" {
		name = item.Name
	}
	meta := &StoreMetadata{
		AppID:       item.ID,
		Type:        details.Type,
		Description: details.ShortDescription,
		Developers:  nonNilStrings(details.Developers),
		Publishers:  nonNilStrings(details.Publishers),
	}
	if meta.Type == "" {
		meta.Type = "game"
	}
	if details.ReleaseDate != nil {
		meta.ReleaseDate = details.ReleaseDate.Date
	}
	return &CoverResult{
		Name:       name,
		Key:        "steam_" + strconv.FormatInt(item.ID, 10),
		Source:     SourceStorefront,
		PreviewURL: preview,
		SaveURL:    save,
		Store:      meta,
	}, nil
}

func (r *StorefrontResolver) absorb(logger *slog.Logger, operation string, err error) error {
	if services.IsCancelled(err) {
		return asCancelled("storefront", operation, err)
	}
	logging.WarnWithContext(logger, "storefront lookup failed", "storefront_lookup_failed",
		logging.String("operation", operation),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check storefront availability ("+classifyLabel(err)+")"))
	return nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
