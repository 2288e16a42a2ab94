package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEndpoints(); err != nil {
		return err
	}
	if err := ensurePositiveMap(map[string]int{
		"catalog.timeout_seconds":    c.Catalog.TimeoutSeconds,
		"catalog.max_results":        c.Catalog.MaxResults,
		"storefront.timeout_seconds": c.Storefront.TimeoutSeconds,
		"storefront.max_results":     c.Storefront.MaxResults,
		"storefront.single_limit":    c.Storefront.SingleLimit,
		"engine.batch_concurrency":   c.Engine.BatchConcurrency,
	}); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEndpoints() error {
	for key, value := range map[string]string{
		"catalog.base_url":        c.Catalog.BaseURL,
		"catalog.image_base_url":  c.Catalog.ImageBaseURL,
		"storefront.base_url":     c.Storefront.BaseURL,
		"storefront.cdn_base_url": c.Storefront.CDNBaseURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http or https URL", key)
		}
		if parsed.Host == "" {
			return fmt.Errorf("%s must include a host", key)
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.MaxEntries < 0 {
		return errors.New("cache.max_entries must be >= 0")
	}
	if c.Cache.Persist && strings.TrimSpace(c.Cache.Path) == "" {
		return errors.New("cache.path must be set when cache.persist is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not recognized (use debug, info, warn or error)", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
