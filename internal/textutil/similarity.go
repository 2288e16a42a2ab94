package textutil

// Bigrams returns the set of adjacent rune pairs in s.
// Returns nil when s has fewer than two runes.
func Bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	set := make(map[string]struct{}, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}

// DiceCoefficient computes 2*|A∩B| / (|A|+|B|) over the bigram sets of a and b.
// Returns 0 if either string is too short to produce a bigram.
func DiceCoefficient(a, b string) float64 {
	left := Bigrams(a)
	right := Bigrams(b)
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	shared := 0
	for gram := range left {
		if _, ok := right[gram]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return 2 * float64(shared) / float64(len(left)+len(right))
}
