package gibber

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gibberlab/gibber/corpus"
)

// Enhancer is the optional second-stage classifier consulted when the
// heuristics find text plausible. It exists to catch grammatical word
// salad built from real words. Implementations must be safe for
// concurrent use.
type Enhancer interface {
	// Available reports whether the enhancer can currently serve
	// predictions. It must be cheap to call.
	Available() bool

	// Predict returns true when text is gibberish.
	Predict(ctx context.Context, text string) (bool, error)
}

// Detector classifies text as natural English or gibberish. Construct one
// with NewDetector; a Detector is immutable afterwards and safe for
// concurrent use.
type Detector struct {
	cfg      Config
	corpus   *corpus.Corpus
	enhancer Enhancer
}

// Option configures a Detector.
type Option func(*Detector)

// WithConfig replaces the default engine constants.
func WithConfig(cfg Config) Option {
	return func(d *Detector) { d.cfg = cfg }
}

// WithCorpus substitutes the embedded word and password corpus.
func WithCorpus(c *corpus.Corpus) Option {
	return func(d *Detector) { d.corpus = c }
}

// WithEnhancer attaches a second-stage classifier, such as a local
// transformer (model.New) or a remote judge (judge.NewEnhancer).
func WithEnhancer(e Enhancer) Option {
	return func(d *Detector) { d.enhancer = e }
}

// NewDetector builds a Detector with the embedded corpus and default
// engine constants, then applies the options.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		cfg:    DefaultConfig(),
		corpus: corpus.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HasEnhancedDetection reports whether a second-stage classifier is
// attached and ready.
func (d *Detector) HasEnhancedDetection() bool {
	return d.enhancer != nil && d.enhancer.Available()
}

// IsGibberish classifies text at the given sensitivity.
func (d *Detector) IsGibberish(text string, s Sensitivity) bool {
	return d.Classify(text, s).Gibberish
}

// Classify returns the full verdict with features and scores.
func (d *Detector) Classify(text string, s Sensitivity) Result {
	return d.ClassifyContext(context.Background(), text, s)
}

// ClassifyContext is Classify with a context bounding the second-stage
// model call. The heuristic path ignores the context; it never blocks.
func (d *Detector) ClassifyContext(ctx context.Context, text string, s Sensitivity) Result {
	res := classify(text, s, d.cfg, d.corpus)
	if !d.wantSecondOpinion(res) {
		return res
	}

	gib, err := d.enhancer.Predict(ctx, text)
	if err != nil {
		// Degrade silently to the heuristic verdict.
		slog.Warn("enhanced detection unavailable, keeping heuristic verdict", "error", err)
		return res
	}

	res.Enhanced = true
	if gib {
		res.Gibberish = true
		res.Reason = ReasonModel
	}
	return res
}

// wantSecondOpinion reports whether the model should review a heuristic
// verdict. Only statistical not-gibberish verdicts are reviewed: a
// gibberish verdict stands, and exact-match facts (known passwords,
// short-text dictionary hits) are not guesses the model can improve.
func (d *Detector) wantSecondOpinion(res Result) bool {
	if res.Gibberish || d.enhancer == nil || !d.enhancer.Available() {
		return false
	}
	switch res.Reason {
	case ReasonDictionary, ReasonRecognized, ReasonComposite:
		return true
	}
	return false
}

var defaultDetector = sync.OnceValue(func() *Detector {
	return NewDetector()
})

// IsGibberish classifies text with the embedded corpus and default engine
// constants. It is the heuristic-only entry point; build a Detector to
// attach enhanced detection.
func IsGibberish(text string, s Sensitivity) bool {
	return defaultDetector().IsGibberish(text, s)
}

// Classify is the package-level counterpart of Detector.Classify.
func Classify(text string, s Sensitivity) Result {
	return defaultDetector().Classify(text, s)
}
