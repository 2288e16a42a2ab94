// Package coverart resolves a free-text title to cover artwork by querying a
// sharded game catalog and a storefront concurrently.
//
// CatalogResolver and StorefrontResolver each answer single-best and ranked
// multi-result lookups for one provider. They swallow network and parse
// failures (logging a warning and answering empty) and only ever return
// services.ErrCancelled. Engine fans out to both, applies the catalog-first
// priority rule, runs bounded batch resolution over application lists, and
// owns the catalog cache.
//
// The combinators in fanout.go are the only concurrency primitives used:
// SettleBoth and SettleAll wait for every task and never cancel siblings,
// while Superseder cancels an earlier run when a newer one starts under the
// same session key.
package coverart
