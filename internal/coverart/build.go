package coverart

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"coverfinder/internal/catalogcache"
	"coverfinder/internal/catalogstore"
	"coverfinder/internal/config"
	"coverfinder/internal/gamedb"
	"coverfinder/internal/logging"
	"coverfinder/internal/steamstore"
)

// NewFromConfig assembles clients, cache, optional persistent store and both
// resolvers into an Engine. Callers must Close the engine.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	catalogOpts := []gamedb.Option{
		gamedb.WithHTTPClient(&http.Client{Timeout: cfg.CatalogTimeout()}),
		gamedb.WithImageBaseURL(cfg.Catalog.ImageBaseURL),
		gamedb.WithLogger(logger),
	}
	var store *catalogstore.Store
	if cfg.Cache.Persist {
		opened, err := catalogstore.Open(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open catalog store: %w", err)
		}
		store = opened
		catalogOpts = append(catalogOpts, gamedb.WithStore(store))
	}

	catalogClient := gamedb.New(cfg.Catalog.BaseURL, catalogOpts...)
	storeClient := NewStorefrontClient(cfg, logger)

	cache := catalogcache.New(catalogcache.Options{MaxEntries: cfg.Cache.MaxEntries, Logger: logger})
	catalog := NewCatalogResolver(catalogClient, cache, logger)
	storefront := NewStorefrontResolver(storeClient, StorefrontOptions{
		SingleLimit: cfg.Storefront.SingleLimit,
		SkipProbe:   !cfg.Storefront.ProbeLibrary,
		Logger:      logger,
	})

	opts := Options{
		Cache:                cache,
		Logger:               logger,
		BatchConcurrency:     cfg.Engine.BatchConcurrency,
		CatalogMaxResults:    cfg.Catalog.MaxResults,
		StorefrontMaxResults: cfg.Storefront.MaxResults,
	}
	if store != nil {
		opts.Store = store
	}
	return NewEngine(catalog, storefront, opts), nil
}

// NewStorefrontClient builds the storefront client described by cfg.
func NewStorefrontClient(cfg *config.Config, logger *slog.Logger) *steamstore.Client {
	return steamstore.New(cfg.Storefront.BaseURL,
		steamstore.WithHTTPClient(&http.Client{Timeout: cfg.StorefrontTimeout()}),
		steamstore.WithCDNBaseURL(cfg.Storefront.CDNBaseURL),
		steamstore.WithLocale(cfg.Storefront.Language, cfg.Storefront.Country),
		steamstore.WithLogger(logger),
	)
}
