// Package catalogcache memoizes catalog lookups for the lifetime of an engine.
//
// Memo stores successful fetch results per key, including explicit "not found"
// nil values, and never stores errors. Concurrent misses for the same key share
// a single fetch through singleflight. Clear empties the maps and bumps a
// generation counter so fetches that started earlier cannot repopulate them.
// An optional MaxEntries bound turns each map into an LRU.
//
// Memo and Clear sit beneath coverart.CatalogResolver: shard manifests and
// game records go through GetOrFetch, and Engine.ClearCache calls Cache.Clear.
package catalogcache
