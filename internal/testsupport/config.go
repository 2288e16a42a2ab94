package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"coverfinder/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory. The cache
// path lives under it and logging is quiet unless an option says otherwise.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Cache.Path = filepath.Join(base, "cache", "catalog.db")
	cfgVal.Server.Bind = "127.0.0.1:0"
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithUpstreams points the catalog and storefront at fake servers.
func WithUpstreams(upstreams *Upstreams) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.BaseURL = upstreams.Catalog.URL
		b.cfg.Catalog.ImageBaseURL = ImageBaseURL
		b.cfg.Storefront.BaseURL = upstreams.Storefront.URL
		b.cfg.Storefront.CDNBaseURL = upstreams.CDNBaseURL()
	}
}

// WithPersistentCache enables the on-disk catalog response store.
func WithPersistentCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Persist = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Cache.Path))
}

// WriteConfig encodes cfg as TOML next to its cache directory and returns the
// file path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "coverfinder.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
