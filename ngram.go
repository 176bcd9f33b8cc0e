package gibber

import (
	"strings"
	"unicode"
)

// alnumRuns splits normalized text into maximal runs of letters and
// digits. Runs are the units of n-gram extraction; a gram never spans a
// symbol or a word boundary.
func alnumRuns(normalized string) []string {
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ngrams returns every n-gram of the given size across the runs, as a
// multiset. Runs shorter than n contribute nothing.
func ngrams(runs []string, n int) []string {
	var out []string
	for _, run := range runs {
		rs := []rune(run)
		for i := 0; i+n <= len(rs); i++ {
			out = append(out, string(rs[i:i+n]))
		}
	}
	return out
}

// frequencyScore returns the fraction of grams present in the reference
// set. An empty multiset scores 0.
func frequencyScore(grams []string, ref map[string]struct{}) float64 {
	if len(grams) == 0 {
		return 0
	}
	hits := 0
	for _, g := range grams {
		if _, ok := ref[g]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(grams))
}
