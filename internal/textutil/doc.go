// Package textutil provides the title normalization and string similarity
// primitives used by cover matching.
//
// The primary use cases are:
//   - Canonicalizing titles into comparable keys (Canonicalize)
//   - Selecting the catalog shard a title lives in (ShardKey)
//   - Computing bigram Dice similarity between canonical titles
//
// Canonical forms are NFKC width-folded and lower-cased, with separator
// punctuation collapsed to single spaces. All functions are pure and safe for
// concurrent use.
package textutil
