package catalogcache

import (
	"log/slog"

	"coverfinder/internal/gamedb"
	"coverfinder/internal/logging"
)

// Options configures a Cache.
type Options struct {
	// MaxEntries bounds each memo; 0 keeps every entry until Clear.
	MaxEntries int
	Logger     *slog.Logger
}

// Cache holds the shard manifest and game record memos shared by catalog lookups.
type Cache struct {
	Manifests *Memo[*gamedb.Manifest]
	Games     *Memo[*gamedb.Game]

	logger *slog.Logger
}

// CacheStats groups the per-memo counters.
type CacheStats struct {
	Manifests Stats `json:"manifests"`
	Games     Stats `json:"games"`
}

// New constructs an empty cache.
func New(opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cache{
		Manifests: NewMemo[*gamedb.Manifest]("manifests", opts.MaxEntries),
		Games:     NewMemo[*gamedb.Game]("games", opts.MaxEntries),
		logger:    logging.NewComponentLogger(logger, "catalogcache"),
	}
}

// Clear empties both memos.
func (c *Cache) Clear() {
	before := c.Stats()
	c.Manifests.Clear()
	c.Games.Clear()
	c.logger.Debug("catalog cache cleared",
		logging.Int("manifests", before.Manifests.Size),
		logging.Int("games", before.Games.Size))
}

// Stats returns counters for both memos.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Manifests: c.Manifests.Stats(),
		Games:     c.Games.Stats(),
	}
}
