package matching

import (
	"strings"
	"unicode/utf8"

	"coverfinder/internal/textutil"
)

// Tier identifies which scoring rule produced a match.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierPrefix
	TierContains
	TierTokens
	TierSimilar
)

const (
	scoreExact    = 1.0
	scorePrefix   = 0.95
	scoreContains = 0.85
	scoreTokens   = 0.8

	// similarityThreshold is the Dice coefficient a fuzzy match must exceed.
	similarityThreshold = 0.5
	// similarityWeight keeps fuzzy matches below every rule-based tier.
	similarityWeight = 0.7
)

// String returns the tier label used in logs.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPrefix:
		return "prefix"
	case TierContains:
		return "contains"
	case TierTokens:
		return "tokens"
	case TierSimilar:
		return "similar"
	default:
		return "none"
	}
}

// Match is the outcome of scoring one candidate title.
type Match struct {
	IsMatch bool
	Score   float64
	Tier    Tier
}

// Score compares a candidate title against a search title. Both are
// canonicalized first.
func Score(candidateTitle, searchTitle string) Match {
	return ScoreCanonical(textutil.Canonicalize(candidateTitle), textutil.Canonicalize(searchTitle))
}

// ScoreCanonical scores two titles that are already in canonical form. The
// first applicable rule wins. An empty search never matches.
func ScoreCanonical(candidate, search string) Match {
	if search == "" || candidate == "" {
		return Match{}
	}
	switch {
	case candidate == search:
		return Match{IsMatch: true, Score: scoreExact, Tier: TierExact}
	case strings.HasPrefix(candidate, search):
		return Match{IsMatch: true, Score: scorePrefix, Tier: TierPrefix}
	case strings.Contains(candidate, search):
		return Match{IsMatch: true, Score: scoreContains, Tier: TierContains}
	case tokensContained(candidate, search):
		return Match{IsMatch: true, Score: scoreTokens, Tier: TierTokens}
	}

	similarity := textutil.DiceCoefficient(candidate, search)
	if similarity > similarityThreshold {
		return Match{IsMatch: true, Score: similarity * similarityWeight, Tier: TierSimilar}
	}
	return Match{}
}

// tokensContained reports whether every search token longer than one rune
// appears inside some candidate token. Searches with no such token never
// qualify.
func tokensContained(candidate, search string) bool {
	candidateTokens := textutil.Tokens(candidate)
	checked := 0
	for _, token := range textutil.Tokens(search) {
		if utf8.RuneCountInString(token) <= 1 {
			continue
		}
		checked++
		found := false
		for _, other := range candidateTokens {
			if strings.Contains(other, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return checked > 0
}
