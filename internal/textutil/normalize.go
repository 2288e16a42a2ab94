package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// maxFoldPasses bounds the case-fold/NFKC loop. Real text settles after one or
// two passes.
const maxFoldPasses = 4

// DefaultShard is the shard used when a title has no usable leading characters.
const DefaultShard = "@"

// separatorReplacer turns separator punctuation into spaces so "Counter-Strike:"
// and "counter strike" compare equal.
var separatorReplacer = strings.NewReplacer(
	":", " ",
	"-", " ",
	"_", " ",
	"‘", " ",
	"’", " ",
	"\"", " ",
	"“", " ",
	"”", " ",
)

// Canonicalize returns the comparison key for a title. Case is folded and
// compatibility forms (full-width letters, ligatures) are NFKC-normalized until
// neither step changes the text, then separators become spaces and whitespace
// runs collapse to a single space. Canonicalize is idempotent and returns ""
// for empty input.
func Canonicalize(title string) string {
	if title == "" {
		return ""
	}
	replaced := separatorReplacer.Replace(foldNormalize(title))
	return strings.Join(strings.Fields(replaced), " ")
}

// foldNormalize alternates case folding and NFKC until a fixed point, since
// each step can produce input the other one changes ("İ" folds to a dotted
// sequence that NFKC recomposes; "㎒" normalizes to upper-case "MHz").
func foldNormalize(s string) string {
	fold := cases.Fold()
	for range maxFoldPasses {
		next := norm.NFKC.String(fold.String(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// ShardKey returns the catalog shard for a title: its first two characters,
// lower-cased, restricted to a-z, 0-9 and CJK ideographs. Titles that leave
// nothing behind map to DefaultShard.
func ShardKey(title string) string {
	head := title
	if utf8.RuneCountInString(title) > 2 {
		runes := []rune(title)
		head = string(runes[:2])
	}
	var b strings.Builder
	for _, r := range strings.ToLower(head) {
		if isShardRune(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultShard
	}
	return b.String()
}

func isShardRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= '一' && r <= '龥':
		return true
	default:
		return false
	}
}

// Tokens splits a canonical title into its space-delimited words.
func Tokens(canonical string) []string {
	return strings.Fields(canonical)
}
