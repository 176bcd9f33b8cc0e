package gibber

import (
	"fmt"
	"strings"
)

// Sensitivity selects how aggressively text is flagged as gibberish.
// Low is the strictest about calling something gibberish; High is the
// most permissive. Any text passed at Low also passes at Medium and High.
type Sensitivity int

const (
	// Low flags only extreme gibberish. Preferred when false positives are
	// costly, such as filtering candidate plaintexts in a decoder loop.
	Low Sensitivity = iota
	// Medium is the balanced default for general text checking.
	Medium
	// High flags anything that is not clearly English.
	High
)

func (s Sensitivity) String() string {
	switch s {
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return "medium"
	}
}

// ParseSensitivity maps "low", "medium" (or "med") and "high" to a
// Sensitivity, case-insensitively.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium", "med":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return Medium, fmt.Errorf("unknown sensitivity %q (want low, medium or high)", s)
	}
}

// Config holds the tuned constants of the decision engine. Start from
// DefaultConfig and override fields as needed; the zero value is unusable.
type Config struct {
	// Composite weights. The defaults sum to 1.0.
	WordWeight       float64
	TransitionWeight float64
	TrigramWeight    float64
	QuadgramWeight   float64
	VowelWeight      float64

	// Base thresholds per sensitivity. The composite score must reach the
	// length-adjusted threshold or the text is gibberish.
	LowThreshold    float64
	MediumThreshold float64
	HighThreshold   float64

	// Length-adjustment factors applied to the base threshold. Short
	// strings offer little statistical evidence, so their bars are
	// lowered; very long strings are held to a slightly higher one.
	TinyFactor  float64 // at most 20 runes
	ShortFactor float64 // 21 to 50
	MidFactor   float64 // 51 to 100
	LongFactor  float64 // 101 to 200
	HugeFactor  float64 // over 200

	// ShortTextLimit is the normalized rune length below which
	// classification collapses to a single dictionary lookup.
	ShortTextLimit int

	// WordRatioOverride is the recognized-token ratio at or above which
	// text is never gibberish.
	WordRatioOverride float64
	// RecognizedOverride is the recognized word count that clears text at
	// Medium and High.
	RecognizedOverride int
	// TransitionFloor is the transition score below which text with zero
	// recognized words fails at Low and Medium.
	TransitionFloor float64

	// Vowel bonus band. Text whose vowel ratio falls inside the band earns
	// the full VowelWeight; outside it earns nothing.
	VowelBandLow  float64
	VowelBandHigh float64
}

// DefaultConfig returns the tuned engine constants.
func DefaultConfig() Config {
	return Config{
		WordWeight:       0.40,
		TransitionWeight: 0.25,
		TrigramWeight:    0.15,
		QuadgramWeight:   0.10,
		VowelWeight:      0.10,

		LowThreshold:    0.35,
		MediumThreshold: 0.25,
		HighThreshold:   0.15,

		TinyFactor:  0.7,
		ShortFactor: 0.8,
		MidFactor:   0.9,
		LongFactor:  1.0,
		HugeFactor:  1.1,

		ShortTextLimit: 10,

		WordRatioOverride:  0.8,
		RecognizedOverride: 3,
		TransitionFloor:    0.3,

		VowelBandLow:  0.3,
		VowelBandHigh: 0.7,
	}
}

// threshold returns the base threshold for a sensitivity.
func (c Config) threshold(s Sensitivity) float64 {
	switch s {
	case Low:
		return c.LowThreshold
	case High:
		return c.HighThreshold
	default:
		return c.MediumThreshold
	}
}

// lengthFactor returns the threshold multiplier for a normalized length.
func (c Config) lengthFactor(runes int) float64 {
	switch {
	case runes <= 20:
		return c.TinyFactor
	case runes <= 50:
		return c.ShortFactor
	case runes <= 100:
		return c.MidFactor
	case runes <= 200:
		return c.LongFactor
	default:
		return c.HugeFactor
	}
}
