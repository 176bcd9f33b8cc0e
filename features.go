package gibber

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gibberlab/gibber/corpus"
)

// FeatureSet holds the per-call statistics the decision engine scores.
// All ratios are in [0, 1]; Entropy is in bits per character.
type FeatureSet struct {
	// WordRatio is recognized whitespace tokens over total tokens.
	WordRatio float64
	// RecognizedWords is the absolute count of recognized tokens.
	RecognizedWords int
	// Entropy is the Shannon entropy of the raw input's character
	// distribution. English prose centers near 3.5 to 4.5 bits/char.
	Entropy float64
	// Transition is the fraction of adjacent character pairs in the
	// lowercased raw input that are common English bigrams. Pairs spanning
	// word boundaries count against the score.
	Transition float64
	// VowelRatio is vowels over vowels plus consonants in the normalized
	// text, 0 when there are no ASCII letters.
	VowelRatio float64
	// TrigramScore and QuadgramScore are the fractions of word-internal
	// n-grams found in the reference sets.
	TrigramScore  float64
	QuadgramScore float64
}

// extractFeatures computes the full feature set for one input.
// text is the raw input, norm its normalized form.
func extractFeatures(text, norm string, c *corpus.Corpus) FeatureSet {
	toks := strings.Fields(norm)
	recognized := 0
	for _, t := range toks {
		if c.IsWord(t) {
			recognized++
		}
	}
	wordRatio := 0.0
	if len(toks) > 0 {
		wordRatio = float64(recognized) / float64(len(toks))
	}

	runs := alnumRuns(norm)
	return FeatureSet{
		WordRatio:       wordRatio,
		RecognizedWords: recognized,
		Entropy:         entropy(text),
		Transition:      transitionScore(text),
		VowelRatio:      vowelRatio(norm),
		TrigramScore:    frequencyScore(ngrams(runs, 3), commonTrigrams),
		QuadgramScore:   frequencyScore(ngrams(runs, 4), commonQuadgrams),
	}
}

// entropy computes Shannon entropy over the character distribution of
// text, in bits per character. ASCII input takes an array-count fast path;
// anything else falls back to a rune map.
func entropy(text string) float64 {
	var counts [128]int
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return entropyRunes(text)
		}
		counts[text[i]]++
		n++
	}
	if n == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}

func entropyRunes(text string) float64 {
	counts := make(map[rune]int)
	n := 0
	for _, r := range text {
		counts[r]++
		n++
	}
	h := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}

// transitionScore returns the fraction of adjacent character pairs in the
// lowercased text that are common English bigrams. Inputs shorter than two
// runes score 0.
func transitionScore(text string) float64 {
	rs := []rune(strings.ToLower(text))
	if len(rs) < 2 {
		return 0
	}
	hits := 0
	for i := 0; i+1 < len(rs); i++ {
		if _, ok := commonBigrams[string(rs[i:i+2])]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(rs)-1)
}

// vowelRatio returns vowels over vowels plus consonants, counting only
// ASCII letters of the normalized text. Returns 0 when there are none.
func vowelRatio(normalized string) float64 {
	vowels, consonants := 0, 0
	for _, r := range normalized {
		switch {
		case r == 'a' || r == 'e' || r == 'i' || r == 'o' || r == 'u':
			vowels++
		case r >= 'a' && r <= 'z':
			consonants++
		}
	}
	total := vowels + consonants
	if total == 0 {
		return 0
	}
	return float64(vowels) / float64(total)
}
