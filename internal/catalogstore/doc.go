// Package catalogstore persists raw catalog responses in SQLite so manifests
// and game records survive process restarts.
//
// Entries are keyed by request path and carry the HTTP status of the original
// response: 2xx entries hold the body, anything else records a "not found"
// answer. Only successful HTTP exchanges are ever written; network and parse
// failures never reach the store. The store is optional and sits underneath
// the in-memory catalog cache.
package catalogstore
