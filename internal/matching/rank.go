package matching

import (
	"sort"

	"coverfinder/internal/textutil"
)

// Entry is a titled item that can be ranked.
type Entry struct {
	ID    string
	Title string
}

// Candidate is a matched entry with its score. Index is the entry's position
// in the ranked input and is the tie-breaker for equal scores.
type Candidate struct {
	ID    string
	Title string
	Score float64
	Tier  Tier
	Index int
}

// Rank scores every entry against search and returns the matches ordered by
// score descending. Ties keep input order. A positive limit truncates the
// result.
func Rank(entries []Entry, search string, limit int) []Candidate {
	canonicalSearch := textutil.Canonicalize(search)
	if canonicalSearch == "" {
		return nil
	}

	var candidates []Candidate
	for idx, entry := range entries {
		match := ScoreCanonical(textutil.Canonicalize(entry.Title), canonicalSearch)
		if !match.IsMatch {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:    entry.ID,
			Title: entry.Title,
			Score: match.Score,
			Tier:  match.Tier,
			Index: idx,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Best returns the highest-scoring match. When several entries share the top
// score the earliest one wins.
func Best(entries []Entry, search string) (Candidate, bool) {
	canonicalSearch := textutil.Canonicalize(search)
	if canonicalSearch == "" {
		return Candidate{}, false
	}

	var best Candidate
	found := false
	for idx, entry := range entries {
		match := ScoreCanonical(textutil.Canonicalize(entry.Title), canonicalSearch)
		if !match.IsMatch {
			continue
		}
		if !found || match.Score > best.Score {
			best = Candidate{
				ID:    entry.ID,
				Title: entry.Title,
				Score: match.Score,
				Tier:  match.Tier,
				Index: idx,
			}
			found = true
		}
	}
	return best, found
}
