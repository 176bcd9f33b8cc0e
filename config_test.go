package gibber

import (
	"math"
	"testing"
)

func TestParseSensitivity(t *testing.T) {
	tests := []struct {
		in      string
		want    Sensitivity
		wantErr bool
	}{
		{"low", Low, false},
		{"LOW", Low, false},
		{"medium", Medium, false},
		{"med", Medium, false},
		{"high", High, false},
		{" High ", High, false},
		{"extreme", Medium, true},
		{"", Medium, true},
	}

	for _, tt := range tests {
		got, err := ParseSensitivity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSensitivity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSensitivity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSensitivityString(t *testing.T) {
	if Low.String() != "low" || Medium.String() != "medium" || High.String() != "high" {
		t.Errorf("unexpected String() values: %q %q %q", Low, Medium, High)
	}
}

func TestDefaultConfigWeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	sum := cfg.WordWeight + cfg.TransitionWeight + cfg.TrigramWeight +
		cfg.QuadgramWeight + cfg.VowelWeight
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("weights sum to %f, want 1.0", sum)
	}
}

func TestThresholdOrdering(t *testing.T) {
	cfg := DefaultConfig()
	if !(cfg.threshold(Low) > cfg.threshold(Medium) && cfg.threshold(Medium) > cfg.threshold(High)) {
		t.Errorf("thresholds must strictly decrease Low > Medium > High, got %f %f %f",
			cfg.threshold(Low), cfg.threshold(Medium), cfg.threshold(High))
	}
}

func TestLengthFactorBands(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		runes int
		want  float64
	}{
		{1, 0.7},
		{20, 0.7},
		{21, 0.8},
		{50, 0.8},
		{51, 0.9},
		{100, 0.9},
		{101, 1.0},
		{200, 1.0},
		{201, 1.1},
		{5000, 1.1},
	}

	for _, tt := range tests {
		if got := cfg.lengthFactor(tt.runes); got != tt.want {
			t.Errorf("lengthFactor(%d) = %f, want %f", tt.runes, got, tt.want)
		}
	}
}
