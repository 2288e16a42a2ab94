// Package gamedb talks to a GameDB mirror: a static, sharded catalog of IGDB
// game records.
//
// Titles are bucketed by shard key into buckets/{shard}.json manifests that
// map game ids to names. Full records live at games/{id}.json and carry an
// IGDB cover URL whose hash addresses the image CDN. Manifests are decoded in
// document order so ranking ties break the same way on every run.
//
// Non-2xx answers are reported as (nil, nil): the catalog simply has nothing
// for that key. Transport failures, malformed JSON and cancellation surface as
// services.ErrNetwork, services.ErrParse and services.ErrCancelled.
package gamedb
