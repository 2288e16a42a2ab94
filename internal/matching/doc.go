// Package matching scores catalog titles against a search title and ranks
// the resulting candidates.
//
// Scoring is tiered so common exact and near-exact hits rank deterministically:
// canonical equality, prefix, substring, and token containment each map to a
// fixed score, and a bigram Dice fallback recovers typos and partial titles.
// Ranking is a stable sort, so equal scores keep the order the entries were
// supplied in.
package matching
