package pipeline

import (
	"strings"
	"unicode"

	"github.com/reddington-archives/quote-service/internal/domain"
)

// DefaultSimilarity is the ratio above which two normalized quote texts
// count as the same quote. Scraped sources quote the same line with
// small punctuation and transcription differences.
const DefaultSimilarity = 0.85

// lengthRatioMin/Max prefilter pairs before the quadratic similarity
// computation: texts whose lengths differ by more than 2x cannot reach
// the threshold.
const (
	lengthRatioMin = 0.5
	lengthRatioMax = 2.0
)

// Dedupe removes exact and near-duplicate records, keeping the record
// with the richer attribution metadata from each duplicate group.
// Returns the survivors in input order (of each group's first
// occurrence, carrying the winner's fields) and the number merged away.
func Dedupe(records []domain.QuoteRecord, threshold float64) ([]domain.QuoteRecord, int) {
	if threshold <= 0 {
		threshold = DefaultSimilarity
	}

	type entry struct {
		record     domain.QuoteRecord
		normalized string
	}

	kept := make([]entry, 0, len(records))
	merged := 0

	for _, r := range records {
		norm := normalizeText(r.Text)

		matched := false

		for i := range kept {
			if !isDuplicate(norm, kept[i].normalized, threshold) {
				continue
			}

			// Same quote from two sources: keep whichever carries
			// more attribution metadata.
			if r.MetadataScore() > kept[i].record.MetadataScore() {
				kept[i].record = r
				kept[i].normalized = norm
			}

			merged++
			matched = true

			break
		}

		if !matched {
			kept = append(kept, entry{record: r, normalized: norm})
		}
	}

	out := make([]domain.QuoteRecord, len(kept))
	for i, e := range kept {
		out[i] = e.record
	}

	return out, merged
}

// isDuplicate reports whether two normalized texts are the same quote.
func isDuplicate(a, b string, threshold float64) bool {
	if a == b {
		return true
	}

	if len(a) == 0 || len(b) == 0 {
		return false
	}

	ratio := float64(len(a)) / float64(len(b))
	if ratio < lengthRatioMin || ratio > lengthRatioMax {
		return false
	}

	return similarity(a, b) >= threshold
}

// normalizeText lowercases, strips punctuation, and collapses
// whitespace so superficial transcription differences don't defeat
// duplicate detection.
func normalizeText(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// similarity returns a ratio in [0,1]: twice the length of the longest
// common subsequence over the combined length. Identical strings score
// 1, disjoint strings 0.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra)+len(rb) == 0 {
		return 1
	}

	// LCS length via the standard two-row DP.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}

		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]

	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
