package coverart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"coverfinder/internal/applist"
	"coverfinder/internal/catalogcache"
	"coverfinder/internal/logging"
	"coverfinder/internal/services"
)

// Resolver answers cover lookups for a single provider.
type Resolver interface {
	ResolveOne(ctx context.Context, title string) (string, error)
	ResolveMany(ctx context.Context, title string, maxResults int) ([]CoverResult, error)
}

// ResponseStore is the persistent catalog tier cleared alongside the cache.
type ResponseStore interface {
	Clear(ctx context.Context) (int64, error)
	Close() error
}

var (
	_ Resolver = (*CatalogResolver)(nil)
	_ Resolver = (*StorefrontResolver)(nil)
)

// Options configures an Engine.
type Options struct {
	Cache                *catalogcache.Cache
	Store                ResponseStore
	Logger               *slog.Logger
	BatchConcurrency     int
	CatalogMaxResults    int
	StorefrontMaxResults int
}

// Engine aggregates catalog and storefront lookups.
type Engine struct {
	catalog    Resolver
	storefront Resolver
	cache      *catalogcache.Cache
	store      ResponseStore
	logger     *slog.Logger

	batchConcurrency     int
	catalogMaxResults    int
	storefrontMaxResults int
}

// NewEngine wires the two resolvers. The cache should be the one the catalog
// resolver was built with so ClearCache reaches it.
func NewEngine(catalog, storefront Resolver, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	batch := opts.BatchConcurrency
	if batch <= 0 {
		batch = 4
	}
	return &Engine{
		catalog:              catalog,
		storefront:           storefront,
		cache:                opts.Cache,
		store:                opts.Store,
		logger:               logging.NewComponentLogger(logger, "engine"),
		batchConcurrency:     batch,
		catalogMaxResults:    opts.CatalogMaxResults,
		storefrontMaxResults: opts.StorefrontMaxResults,
	}
}

// ResolveSingleBest returns the catalog cover when there is one, else the
// storefront cover, else "". Provider failures and panics count as empty; the
// only error is services.ErrCancelled.
func (e *Engine) ResolveSingleBest(ctx context.Context, title string) (string, error) {
	ctx = e.annotate(ctx, title)
	logger := logging.WithContext(ctx, e.logger)
	start := time.Now()

	catalog, storefront := SettleBoth(ctx,
		Task[string](func(ctx context.Context) (string, error) { return e.catalog.ResolveOne(ctx, title) }),
		Task[string](func(ctx context.Context) (string, error) { return e.storefront.ResolveOne(ctx, title) }),
	)
	if err := e.cancellation(ctx, catalog.Err, storefront.Err); err != nil {
		return "", err
	}
	e.logPanics(logger, SourceCatalog, catalog.Err)
	e.logPanics(logger, SourceStorefront, storefront.Err)

	var (
		url    string
		source Source
	)
	switch {
	case catalog.Err == nil && catalog.Value != "":
		url, source = catalog.Value, SourceCatalog
	case storefront.Err == nil && storefront.Value != "":
		url, source = storefront.Value, SourceStorefront
	}
	logger.Debug("single best resolved",
		logging.String(logging.FieldSource, string(source)),
		logging.Bool("found", url != ""),
		logging.Duration("elapsed", time.Since(start)))
	return url, nil
}

// ResolveAll returns ranked covers from both providers. A failing provider
// contributes an empty list; the only error is services.ErrCancelled.
func (e *Engine) ResolveAll(ctx context.Context, title string) (Results, error) {
	ctx = e.annotate(ctx, title)
	logger := logging.WithContext(ctx, e.logger)

	catalog, storefront := SettleBoth(ctx,
		Task[[]CoverResult](func(ctx context.Context) ([]CoverResult, error) {
			return e.catalog.ResolveMany(ctx, title, e.catalogMaxResults)
		}),
		Task[[]CoverResult](func(ctx context.Context) ([]CoverResult, error) {
			return e.storefront.ResolveMany(ctx, title, e.storefrontMaxResults)
		}),
	)
	if err := e.cancellation(ctx, catalog.Err, storefront.Err); err != nil {
		return Results{Catalog: []CoverResult{}, Storefront: []CoverResult{}}, err
	}
	e.logPanics(logger, SourceCatalog, catalog.Err)
	e.logPanics(logger, SourceStorefront, storefront.Err)

	results := Results{Catalog: []CoverResult{}, Storefront: []CoverResult{}}
	if catalog.Err == nil && catalog.Value != nil {
		results.Catalog = catalog.Value
	}
	if storefront.Err == nil && storefront.Value != nil {
		results.Storefront = storefront.Value
	}
	logger.Debug("all covers resolved",
		logging.Int("catalog", len(results.Catalog)),
		logging.Int("storefront", len(results.Storefront)))
	return results, nil
}

// ResolveBatch resolves every record's name and writes the cover URL into its
// image-path. Records whose lookup fails, panics, finds nothing or is cut off
// by cancellation are returned unchanged: an existing image-path is kept, not
// cleared. The output always has the input's length and order; the input
// slice is not modified.
func (e *Engine) ResolveBatch(ctx context.Context, records []applist.Record) ([]applist.Record, error) {
	ctx = services.EnsureRequestID(ctx)
	logger := logging.WithContext(ctx, e.logger)

	out := make([]applist.Record, len(records))
	for i, record := range records {
		out[i] = record.Clone()
	}

	var (
		g        errgroup.Group
		resolved = make([]bool, len(records))
	)
	g.SetLimit(e.batchConcurrency)
	for i, record := range records {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			url, err := e.resolveRecord(ctx, record)
			if err != nil {
				logger.Debug("batch item kept original",
					logging.Int("index", i),
					logging.String(logging.FieldTitle, record.Name()),
					logging.Error(err))
				return nil
			}
			if url != "" {
				out[i] = record.WithImagePath(url)
				resolved[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	count := 0
	for _, ok := range resolved {
		if ok {
			count++
		}
	}
	logger.Info("batch resolution finished",
		logging.Int("records", len(records)),
		logging.Int("resolved", count))

	if err := ctx.Err(); err != nil {
		return out, services.Cancelled("engine", "resolve batch", err)
	}
	return out, nil
}

func (e *Engine) resolveRecord(ctx context.Context, record applist.Record) (url string, err error) {
	defer func() {
		if r := recover(); r != nil {
			url, err = "", fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	if !record.HasName() {
		return "", nil
	}
	return e.ResolveSingleBest(ctx, record.Name())
}

// ClearCache empties the in-memory catalog cache and the persistent store
// when one is configured.
func (e *Engine) ClearCache(ctx context.Context) error {
	if e.cache != nil {
		e.cache.Clear()
	}
	if e.store == nil {
		return nil
	}
	removed, err := e.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear catalog store: %w", err)
	}
	e.logger.Info("catalog cache cleared", logging.Int64("stored_responses", removed))
	return nil
}

// CacheStats reports in-memory cache counters.
func (e *Engine) CacheStats() catalogcache.CacheStats {
	if e.cache == nil {
		return catalogcache.CacheStats{}
	}
	return e.cache.Stats()
}

// Close releases the persistent store.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

func (e *Engine) annotate(ctx context.Context, title string) context.Context {
	return services.WithTitle(services.EnsureRequestID(ctx), title)
}

// cancellation returns ErrCancelled when the caller's context is done or a
// branch reported cancellation.
func (e *Engine) cancellation(ctx context.Context, errs ...error) error {
	if err := ctx.Err(); err != nil {
		return services.Cancelled("engine", "resolve", err)
	}
	for _, err := range errs {
		if err != nil && services.IsCancelled(err) {
			return asCancelled("engine", "resolve", err)
		}
	}
	return nil
}

func (e *Engine) logPanics(logger *slog.Logger, source Source, err error) {
	if err == nil || !errors.Is(err, ErrTaskPanic) {
		return
	}
	logger.Error("resolver panicked",
		logging.String(logging.FieldSource, string(source)),
		logging.String(logging.FieldEventType, "resolver_panic"),
		logging.Error(err))
}
