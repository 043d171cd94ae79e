package errors

import "strings"

// editDistance returns the optimal string alignment distance between a and b:
// insertions, deletions, substitutions and adjacent transpositions each cost 1.
// Comparison is byte-wise on the lower-cased inputs.
func editDistance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	rows := make([][]int, len(a)+1)
	for i := range rows {
		rows[i] = make([]int, len(b)+1)
		rows[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		rows[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := min(rows[i-1][j]+1, rows[i][j-1]+1, rows[i-1][j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d = min(d, rows[i-2][j-2]+1)
			}
			rows[i][j] = d
		}
	}
	return rows[len(a)][len(b)]
}

// Similarity returns a case-insensitive score in [0, 1]; 1 means identical.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(editDistance(a, b))/float64(longest)
}

// ClosestName returns the candidate most similar to target, or "" when no
// candidate reaches threshold. Used for "did you mean" suggestions when a
// component name given on the command line does not exist in the file.
func ClosestName(target string, candidates []string, threshold float64) string {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if score := Similarity(target, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < threshold {
		return ""
	}
	return best
}
