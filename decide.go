package gibber

import (
	"strings"
	"unicode/utf8"

	"github.com/gibberlab/gibber/corpus"
)

// Reason identifies which rule produced a verdict.
type Reason string

const (
	// ReasonEmpty means the input normalized to nothing.
	ReasonEmpty Reason = "empty"
	// ReasonControlChars means the raw input contained a control
	// character other than tab, newline or carriage return.
	ReasonControlChars Reason = "control-chars"
	// ReasonPassword means the trimmed input exactly matched a known
	// password.
	ReasonPassword Reason = "known-password"
	// ReasonShortText means the input was below the short-text limit and
	// was settled by a single dictionary lookup.
	ReasonShortText Reason = "short-text"
	// ReasonDictionary means the recognized-word ratio cleared the text.
	ReasonDictionary Reason = "dictionary-override"
	// ReasonRecognized means the absolute recognized-word count cleared
	// the text at Medium or High.
	ReasonRecognized Reason = "recognized-words"
	// ReasonNoSignal means no word was recognized and character
	// transitions looked nothing like English.
	ReasonNoSignal Reason = "no-english-signal"
	// ReasonComposite means the weighted score decided against the
	// length-adjusted threshold.
	ReasonComposite Reason = "composite-score"
	// ReasonModel means the second-stage model overturned a plausible
	// heuristic verdict.
	ReasonModel Reason = "model"
)

// Result carries a verdict and the evidence behind it.
type Result struct {
	// Gibberish is the verdict.
	Gibberish bool
	// Reason names the rule that decided.
	Reason Reason
	// Features holds the computed statistics. Zero when a rule fired
	// before feature extraction.
	Features FeatureSet
	// Composite is the weighted score, 0 when a rule short-circuited.
	Composite float64
	// Threshold is the length-adjusted threshold the composite was held
	// to, 0 when a rule short-circuited.
	Threshold float64
	// Enhanced is true when the second-stage model issued or confirmed
	// the verdict.
	Enhanced bool
}

// classify runs the heuristic decision sequence. It is a pure function of
// its arguments and never fails.
func classify(text string, s Sensitivity, cfg Config, c *corpus.Corpus) Result {
	norm := normalize(text)
	if norm == "" {
		return Result{Gibberish: true, Reason: ReasonEmpty}
	}
	if hasControl(text) {
		return Result{Gibberish: true, Reason: ReasonControlChars}
	}
	if c.IsPassword(strings.TrimSpace(text)) {
		return Result{Reason: ReasonPassword}
	}

	length := utf8.RuneCountInString(norm)
	if length < cfg.ShortTextLimit {
		return Result{Gibberish: !c.IsWord(norm), Reason: ReasonShortText}
	}

	feats := extractFeatures(text, norm, c)

	if feats.WordRatio >= cfg.WordRatioOverride {
		return Result{Reason: ReasonDictionary, Features: feats}
	}
	if feats.RecognizedWords >= cfg.RecognizedOverride && s != Low {
		return Result{Reason: ReasonRecognized, Features: feats}
	}
	if feats.RecognizedWords == 0 && feats.Transition < cfg.TransitionFloor && s != High {
		return Result{Gibberish: true, Reason: ReasonNoSignal, Features: feats}
	}

	bonus := 0.0
	if feats.VowelRatio >= cfg.VowelBandLow && feats.VowelRatio <= cfg.VowelBandHigh {
		bonus = 1.0
	}
	composite := cfg.WordWeight*feats.WordRatio +
		cfg.TransitionWeight*feats.Transition +
		cfg.TrigramWeight*feats.TrigramScore +
		cfg.QuadgramWeight*feats.QuadgramScore +
		cfg.VowelWeight*bonus

	threshold := cfg.threshold(s) * cfg.lengthFactor(length)

	return Result{
		Gibberish: composite < threshold,
		Reason:    ReasonComposite,
		Features:  feats,
		Composite: composite,
		Threshold: threshold,
	}
}
