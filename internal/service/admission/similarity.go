package admission

// DescriptionDetector flags listing descriptions that sit too close to
// an existing one in edit distance. Comparison is on raw text, no case
// folding or whitespace collapsing.
type DescriptionDetector struct {
	minDistance int
}

// NewDescriptionDetector returns a detector that flags any candidate
// whose Levenshtein distance to a corpus entry is strictly below
// minDistance.
func NewDescriptionDetector(minDistance int) *DescriptionDetector {
	return &DescriptionDetector{minDistance: minDistance}
}

// TooSimilar reports whether candidate is within minDistance of any
// corpus entry, short-circuiting on the first hit. Cost per entry is
// O(len(candidate) * len(entry)); the corpus is only the currently
// active descriptions, never the full history.
func (d *DescriptionDetector) TooSimilar(candidate string, corpus []string) bool {
	for _, existing := range corpus {
		if Distance(candidate, existing) < d.minDistance {
			return true
		}
	}
	return false
}

// Distance computes the Levenshtein edit distance between a and b over
// runes, using the two-row form of the classic dynamic program.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			substitution := prev[j-1]
			if ra[i-1] != rb[j-1] {
				substitution++
			}

			deletion := prev[j] + 1
			insertion := curr[j-1] + 1

			min := substitution
			if deletion < min {
				min = deletion
			}
			if insertion < min {
				min = insertion
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
