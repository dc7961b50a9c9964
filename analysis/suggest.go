// Copyright © 2025 The Carbide authors

package analysis

import "strings"

// maximumEditDistance bounds how far a registered name may be from a
// misspelled one and still be suggested.
const maximumEditDistance = 2

// distance computes the Damerau-Levenshtein distance between a and b:
// the minimum number of insertions, deletions, substitutions, and adjacent
// transpositions turning one into the other.
func distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Three rows suffice: transpositions look back two rows.
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = min(curr[j], prev2[j-2]+1) // transposition
			}
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(b)]
}

// withinDistance reports whether declared is close enough to name to be
// worth suggesting. An exact match always qualifies; otherwise the distance
// must stay within maxDist and below both lengths, so very short names do
// not match everything.
func withinDistance(name, declared string, maxDist int) bool {
	if name == declared {
		return true
	}
	d := distance(name, declared)
	return d <= maxDist && d < len(name) && d < len(declared)
}

// quotedAlternatives renders suggestions as a quoted list in prose form:
// `"a"`, `"a" or "b"`, `"a", "b" or "c"`. Duplicates are removed keeping
// first occurrence; an empty list renders as the empty string.
func quotedAlternatives(names []string) string {
	var quoted []string
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		quoted = append(quoted, `"`+name+`"`)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
	}
}
