// Package httpapi exposes the cover engine over HTTP using gin.
//
// Routes live under /api: best-cover and full lookups, batch app-list
// resolution, cache maintenance and Steam asset inspection. Lookups that
// carry a session parameter supersede the previous lookup of the same
// session, which then answers 499.
package httpapi
