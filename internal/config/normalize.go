package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeCatalog()
	c.normalizeStorefront()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeServer()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	if value, ok := os.LookupEnv(EnvCatalogBaseURL); ok && strings.TrimSpace(value) != "" {
		c.Catalog.BaseURL = value
	}
	c.Catalog.BaseURL = strings.TrimSpace(c.Catalog.BaseURL)
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	c.Catalog.BaseURL = strings.TrimRight(c.Catalog.BaseURL, "/")
	c.Catalog.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.ImageBaseURL), "/")
	if c.Catalog.ImageBaseURL == "" {
		c.Catalog.ImageBaseURL = defaultCatalogImageBaseURL
	}
	if c.Catalog.TimeoutSeconds == 0 {
		c.Catalog.TimeoutSeconds = defaultCatalogTimeoutSeconds
	}
	if c.Catalog.MaxResults == 0 {
		c.Catalog.MaxResults = defaultMaxResults
	}
}

func (c *Config) normalizeStorefront() {
	if value, ok := os.LookupEnv(EnvStorefrontBaseURL); ok && strings.TrimSpace(value) != "" {
		c.Storefront.BaseURL = value
	}
	c.Storefront.BaseURL = strings.TrimSpace(c.Storefront.BaseURL)
	if c.Storefront.BaseURL == "" {
		c.Storefront.BaseURL = defaultStorefrontBaseURL
	}
	c.Storefront.BaseURL = strings.TrimRight(c.Storefront.BaseURL, "/")
	c.Storefront.CDNBaseURL = strings.TrimRight(strings.TrimSpace(c.Storefront.CDNBaseURL), "/")
	if c.Storefront.CDNBaseURL == "" {
		c.Storefront.CDNBaseURL = defaultStorefrontCDNBaseURL
	}
	c.Storefront.Language = strings.ToLower(strings.TrimSpace(c.Storefront.Language))
	if c.Storefront.Language == "" {
		c.Storefront.Language = defaultStorefrontLanguage
	}
	c.Storefront.Country = strings.ToUpper(strings.TrimSpace(c.Storefront.Country))
	if c.Storefront.Country == "" {
		c.Storefront.Country = defaultStorefrontCountry
	}
	if c.Storefront.TimeoutSeconds == 0 {
		c.Storefront.TimeoutSeconds = defaultStorefrontTimeout
	}
	if c.Storefront.MaxResults == 0 {
		c.Storefront.MaxResults = defaultMaxResults
	}
	if c.Storefront.SingleLimit == 0 {
		c.Storefront.SingleLimit = defaultStorefrontSingleLimit
	}
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	var err error
	if c.Cache.Path, err = expandPath(strings.TrimSpace(c.Cache.Path)); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	if c.Engine.BatchConcurrency == 0 {
		c.Engine.BatchConcurrency = defaultBatchConcurrency
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
