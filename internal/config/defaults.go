package config

const (
	defaultConfigPath            = "~/.config/coverfinder/config.toml"
	projectConfigName            = "coverfinder.toml"
	defaultCatalogBaseURL        = "https://lizardbyte.github.io/GameDB"
	defaultCatalogImageBaseURL   = "https://images.igdb.com/igdb/image/upload"
	defaultCatalogTimeoutSeconds = 10
	defaultMaxResults            = 20
	defaultStorefrontBaseURL     = "https://store.steampowered.com"
	defaultStorefrontCDNBaseURL  = "https://cdn.cloudflare.steamstatic.com/steam/apps"
	defaultStorefrontLanguage    = "schinese"
	defaultStorefrontCountry     = "CN"
	defaultStorefrontTimeout     = 10
	defaultStorefrontSingleLimit = 1
	defaultCachePath             = "~/.cache/coverfinder/catalog.db"
	defaultBatchConcurrency      = 4
	defaultServerBind            = "127.0.0.1:7488"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"

	// EnvCatalogBaseURL overrides catalog.base_url when set.
	EnvCatalogBaseURL = "COVERFINDER_CATALOG_BASE_URL"
	// EnvStorefrontBaseURL overrides storefront.base_url when set.
	EnvStorefrontBaseURL = "COVERFINDER_STOREFRONT_BASE_URL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			ImageBaseURL:   defaultCatalogImageBaseURL,
			TimeoutSeconds: defaultCatalogTimeoutSeconds,
			MaxResults:     defaultMaxResults,
		},
		Storefront: Storefront{
			BaseURL:        defaultStorefrontBaseURL,
			CDNBaseURL:     defaultStorefrontCDNBaseURL,
			Language:       defaultStorefrontLanguage,
			Country:        defaultStorefrontCountry,
			TimeoutSeconds: defaultStorefrontTimeout,
			MaxResults:     defaultMaxResults,
			SingleLimit:    defaultStorefrontSingleLimit,
			ProbeLibrary:   true,
		},
		Cache: Cache{
			Path: defaultCachePath,
		},
		Engine: Engine{
			BatchConcurrency: defaultBatchConcurrency,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
