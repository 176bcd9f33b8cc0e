// Package model runs a transformer gibberish classifier on top of ONNX
// Runtime. The network weights and tokenizer are fetched once with
// [Downloader], cached under [DefaultDir] and loaded lazily on first
// prediction. A loaded [Detector] satisfies the enhancer contract of
// the root package.
package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// DefaultCleanThreshold is the minimum probability of the clean class
// for a text to count as natural language.
const DefaultCleanThreshold = 0.5

// ortInit prepares the process-wide ONNX Runtime environment exactly
// once. GIBBER_ONNX_LIB points at the runtime shared library when it is
// not on the default search path.
var ortInit = sync.OnceValue(func() error {
	if lib := os.Getenv("GIBBER_ONNX_LIB"); lib != "" {
		ort.SetSharedLibraryPath(lib)
	}
	return ort.InitializeEnvironment()
})

// Detector classifies text with the downloaded transformer model. The
// zero value is not usable; construct with New. A Detector is safe for
// concurrent use.
type Detector struct {
	dir       string
	dirErr    error
	threshold float64
	load      func() (*session, error)
}

// Option configures a Detector.
type Option func(*Detector)

// WithDir overrides the model directory.
func WithDir(dir string) Option {
	return func(d *Detector) { d.dir = dir }
}

// WithCleanThreshold overrides the clean-class probability cutoff.
func WithCleanThreshold(t float64) Option {
	return func(d *Detector) { d.threshold = t }
}

// New creates a Detector reading artifacts from [DefaultDir] unless
// WithDir is given. Nothing is loaded until the first Predict call;
// a load failure is returned from every subsequent call.
func New(opts ...Option) *Detector {
	d := &Detector{threshold: DefaultCleanThreshold}
	for _, opt := range opts {
		opt(d)
	}
	if d.dir == "" {
		d.dir, d.dirErr = DefaultDir()
	}
	d.load = sync.OnceValues(d.openSession)
	return d
}

// Dir returns the directory the Detector reads artifacts from.
func (d *Detector) Dir() string { return d.dir }

// Available reports whether a complete model is installed.
func (d *Detector) Available() bool {
	return d.dirErr == nil && Exists(d.dir)
}

// Predict runs the classifier and reports whether text is gibberish.
func (d *Detector) Predict(ctx context.Context, text string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s, err := d.load()
	if err != nil {
		return false, err
	}
	probs, err := s.predict(text)
	if err != nil {
		return false, err
	}
	if s.clean >= len(probs) {
		return false, fmt.Errorf("model emitted %d classes, clean label has index %d", len(probs), s.clean)
	}
	return float64(probs[s.clean]) < d.threshold, nil
}

// session owns the loaded tokenizer and the ONNX inference session.
// Runs are serialized; the runtime session is not reentrant.
type session struct {
	mu      sync.Mutex
	tk      *tokenizer.Tokenizer
	net     *ort.DynamicAdvancedSession
	clean   int
	maxLen  int
	typeIds bool
}

func (d *Detector) openSession() (*session, error) {
	if d.dirErr != nil {
		return nil, fmt.Errorf("resolve model directory: %w", d.dirErr)
	}

	cfg, err := loadNetConfig(d.dir)
	if err != nil {
		return nil, err
	}
	clean, err := cfg.cleanIndex()
	if err != nil {
		return nil, err
	}

	tk, err := pretrained.FromFile(filepath.Join(d.dir, tokenizerFile))
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	if err := ortInit(); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}

	inputs := []string{"input_ids", "attention_mask"}
	if cfg.ModelType == "bert" {
		inputs = append(inputs, "token_type_ids")
	}
	net, err := ort.NewDynamicAdvancedSession(
		filepath.Join(d.dir, weightsFile), inputs, []string{"logits"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open model session: %w", err)
	}

	return &session{
		tk:      tk,
		net:     net,
		clean:   clean,
		maxLen:  cfg.maxLen(),
		typeIds: len(inputs) == 3,
	}, nil
}

// predict returns the softmax class probabilities for text.
func (s *session) predict(text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	en, err := s.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	ids := en.Ids
	if len(ids) > s.maxLen {
		ids = ids[:s.maxLen]
	}
	if len(ids) == 0 {
		return nil, errors.New("tokenizer produced no tokens")
	}

	input := make([]int64, len(ids))
	mask := make([]int64, len(ids))
	for i, id := range ids {
		input[i] = int64(id)
		mask[i] = 1
	}

	shape := ort.NewShape(1, int64(len(ids)))
	idTensor, err := ort.NewTensor(shape, input)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer func() { _ = idTensor.Destroy() }()

	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("create mask tensor: %w", err)
	}
	defer func() { _ = maskTensor.Destroy() }()

	in := []ort.Value{idTensor, maskTensor}
	if s.typeIds {
		typeTensor, err := ort.NewTensor(shape, make([]int64, len(ids)))
		if err != nil {
			return nil, fmt.Errorf("create type tensor: %w", err)
		}
		defer func() { _ = typeTensor.Destroy() }()
		in = append(in, typeTensor)
	}

	out := []ort.Value{nil}
	if err := s.net.Run(in, out); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	logits, ok := out[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected model output type %T", out[0])
	}
	defer func() { _ = logits.Destroy() }()

	return softmax(logits.GetData()), nil
}

func softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}
	exps := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		exps[i] = math.Exp(float64(v - max))
		sum += exps[i]
	}
	out := make([]float32, len(logits))
	for i, e := range exps {
		out[i] = float32(e / sum)
	}
	return out
}
