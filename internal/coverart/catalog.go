package coverart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"coverfinder/internal/catalogcache"
	"coverfinder/internal/gamedb"
	"coverfinder/internal/logging"
	"coverfinder/internal/matching"
	"coverfinder/internal/services"
	"coverfinder/internal/textutil"
)

// DefaultMaxResults caps ranked results when callers pass a non-positive limit.
const DefaultMaxResults = 20

// CatalogClient is the subset of the GameDB client used for resolution.
type CatalogClient interface {
	FetchBucket(ctx context.Context, shard string) (*gamedb.Manifest, error)
	FetchGame(ctx context.Context, id string) (*gamedb.Game, error)
	PreviewURL(hash string) string
	SaveURL(hash string) string
}

// CatalogResolver resolves titles against the sharded catalog through the cache.
type CatalogResolver struct {
	client CatalogClient
	cache  *catalogcache.Cache
	logger *slog.Logger
}

// NewCatalogResolver builds a resolver. A nil cache gets a private unbounded one.
func NewCatalogResolver(client CatalogClient, cache *catalogcache.Cache, logger *slog.Logger) *CatalogResolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cache == nil {
		cache = catalogcache.New(catalogcache.Options{Logger: logger})
	}
	return &CatalogResolver{
		client: client,
		cache:  cache,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// ResolveOne returns the high resolution cover URL of the best catalog match,
// or "" when there is none.
func (r *CatalogResolver) ResolveOne(ctx context.Context, title string) (string, error) {
	if textutil.Canonicalize(title) == "" {
		return "", nil
	}
	logger := logging.WithContext(ctx, r.logger)

	manifest, err := r.manifest(ctx, title)
	if err != nil {
		return "", r.absorb(logger, "resolve one", err)
	}
	if manifest == nil {
		return "", nil
	}

	best, ok := matching.Best(manifestEntries(manifest), title)
	if !ok {
		logger.Debug("no catalog match", logging.Int("entries", manifest.Len()))
		return "", nil
	}

	game, err := r.game(ctx, best.ID)
	if err != nil {
		return "", r.absorb(logger, "resolve one", err)
	}
	hash, ok := game.CoverHash()
	if !ok {
		return "", nil
	}
	logger.Debug("catalog match",
		logging.String("id", best.ID),
		logging.String("match", best.Title),
		logging.String("tier", best.Tier.String()),
		logging.Float64("score", best.Score))
	return r.client.SaveURL(hash), nil
}

// ResolveMany returns every catalog match ranked by score, at most maxResults.
// Game records are fetched concurrently; a failed fetch drops only its entry.
func (r *CatalogResolver) ResolveMany(ctx context.Context, title string, maxResults int) ([]CoverResult, error) {
	if textutil.Canonicalize(title) == "" {
		return nil, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	logger := logging.WithContext(ctx, r.logger)

	manifest, err := r.manifest(ctx, title)
	if err != nil {
		return nil, r.absorb(logger, "resolve many", err)
	}
	if manifest == nil {
		return nil, nil
	}

	ranked := matching.Rank(manifestEntries(manifest), title, maxResults)
	if len(ranked) == 0 {
		return nil, nil
	}

	tasks := make([]Task[*CoverResult], len(ranked))
	for i, candidate := range ranked {
		tasks[i] = func(ctx context.Context) (*CoverResult, error) {
			return r.coverFor(ctx, candidate)
		}
	}
	outcomes := SettleAll(ctx, tasks)

	if err := ctx.Err(); err != nil {
		return nil, services.Cancelled("catalog", "resolve many", err)
	}

	var results []CoverResult
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			if services.IsCancelled(outcome.Err) {
				return nil, asCancelled("catalog", "resolve many", outcome.Err)
			}
			logger.Debug("dropping catalog candidate",
				logging.String("id", ranked[i].ID),
				logging.Error(outcome.Err))
			continue
		}
		if outcome.Value != nil {
			results = append(results, *outcome.Value)
		}
	}
	return results, nil
}

func (r *CatalogResolver) coverFor(ctx context.Context, candidate matching.Candidate) (*CoverResult, error) {
	game, err := r.game(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	hash, ok := game.CoverHash()
	if !ok {
		return nil, nil
	}
	name := game.Name
	if name == "" {
		name = candidate.Title
	}
	id := candidate.ID
	if game.ID != 0 {
		id = strconv.FormatInt(game.ID, 10)
	}
	return &CoverResult{
		Name:       name,
		Key:        "igdb_" + id,
		Source:     SourceCatalog,
		PreviewURL: r.client.PreviewURL(hash),
		SaveURL:    r.client.SaveURL(hash),
	}, nil
}

func (r *CatalogResolver) manifest(ctx context.Context, title string) (*gamedb.Manifest, error) {
	shard := textutil.ShardKey(title)
	return r.cache.Manifests.GetOrFetch(ctx, shard, func(ctx context.Context) (*gamedb.Manifest, error) {
		return r.client.FetchBucket(ctx, shard)
	})
}

func (r *CatalogResolver) game(ctx context.Context, id string) (*gamedb.Game, error) {
	return r.cache.Games.GetOrFetch(ctx, id, func(ctx context.Context) (*gamedb.Game, error) {
		return r.client.FetchGame(ctx, id)
	})
}

// absorb converts provider failures into an empty answer. Only cancellation
// escapes.
func (r *CatalogResolver) absorb(logger *slog.Logger, operation string, err error) error {
	if services.IsCancelled(err) {
		return asCancelled("catalog", operation, err)
	}
	logging.WarnWithContext(logger, "catalog lookup failed", "catalog_lookup_failed",
		logging.String("operation", operation),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, fmt.Sprintf("check catalog availability (%s)", classifyLabel(err))))
	return nil
}

func manifestEntries(manifest *gamedb.Manifest) []matching.Entry {
	entries := make([]matching.Entry, len(manifest.Entries))
	for i, entry := range manifest.Entries {
		entries[i] = matching.Entry{ID: entry.ID, Title: entry.Name}
	}
	return entries
}

func asCancelled(component, operation string, err error) error {
	if errors.Is(err, services.ErrCancelled) {
		return err
	}
	return services.Cancelled(component, operation, err)
}

func classifyLabel(err error) string {
	if errors.Is(err, catalogcache.ErrFetchPanic) {
		return "fetch panicked"
	}
	switch services.Classify(err) {
	case services.ErrParse:
		return "malformed response"
	case services.ErrNotFound:
		return "not found"
	default:
		return "network failure"
	}
}
