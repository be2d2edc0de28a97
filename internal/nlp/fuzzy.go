package nlp

import "github.com/agnivade/levenshtein"

// Ratio is the normalized Levenshtein similarity of two strings on a 0..1
// scale, matching the rapidfuzz ratio the intent examples and vehicle names
// are scored with. Both strings are expected to be normalized already.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
