package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftmax(t *testing.T) {
	t.Run("sums to one", func(t *testing.T) {
		probs := softmax([]float32{1.2, -0.5, 3.4, 0.0})
		var sum float64
		for _, p := range probs {
			sum += float64(p)
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	})

	t.Run("largest logit wins", func(t *testing.T) {
		probs := softmax([]float32{0.1, 5.0, -2.0})
		assert.Greater(t, probs[1], probs[0])
		assert.Greater(t, probs[1], probs[2])
	})

	t.Run("uniform logits", func(t *testing.T) {
		probs := softmax([]float32{2.0, 2.0})
		assert.InDelta(t, 0.5, float64(probs[0]), 1e-6)
		assert.InDelta(t, 0.5, float64(probs[1]), 1e-6)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, softmax(nil))
	})
}

func TestLoadNetConfig(t *testing.T) {
	writeConfig := func(t *testing.T, body string) string {
		t.Helper()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644))
		return dir
	}

	t.Run("valid", func(t *testing.T) {
		dir := writeConfig(t, `{"model_type":"distilbert","id2label":{"0":"clean","1":"noise"},"max_position_embeddings":512}`)
		cfg, err := loadNetConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "distilbert", cfg.ModelType)
		assert.Equal(t, 512, cfg.maxLen())
	})

	t.Run("max length defaults", func(t *testing.T) {
		dir := writeConfig(t, `{"model_type":"distilbert","id2label":{"0":"clean"}}`)
		cfg, err := loadNetConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, 512, cfg.maxLen())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadNetConfig(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read model config")
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := writeConfig(t, "{not json")
		_, err := loadNetConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse model config")
	})

	t.Run("no labels", func(t *testing.T) {
		dir := writeConfig(t, `{"model_type":"distilbert"}`)
		_, err := loadNetConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id2label")
	})
}

func TestCleanIndex(t *testing.T) {
	tests := []struct {
		name    string
		labels  map[string]string
		want    int
		wantErr bool
	}{
		{"first", map[string]string{"0": "clean", "1": "noise"}, 0, false},
		{"not first", map[string]string{"0": "noise", "2": "clean"}, 2, false},
		{"case insensitive", map[string]string{"1": "Clean"}, 1, false},
		{"absent", map[string]string{"0": "spam", "1": "ham"}, 0, true},
		{"bad id", map[string]string{"zero": "clean"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &netConfig{ID2Label: tt.labels}
			got, err := cfg.cleanIndex()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(dir))

	for _, name := range artifactFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	assert.True(t, Exists(dir))

	require.NoError(t, os.Remove(filepath.Join(dir, "model.onnx")))
	assert.False(t, Exists(dir))
}

func TestDefaultDirOverride(t *testing.T) {
	t.Setenv("GIBBER_MODEL_DIR", "/opt/gibber-model")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/opt/gibber-model", dir)
}

func TestCheckToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")
	dir := t.TempDir()

	assert.Equal(t, TokenRequired, CheckToken(dir))

	t.Setenv("HUGGING_FACE_HUB_TOKEN", "hub-token")
	assert.Equal(t, TokenAvailable, CheckToken(dir))

	for _, name := range artifactFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	assert.Equal(t, TokenNotRequired, CheckToken(dir))
}

func TestTokenStateString(t *testing.T) {
	assert.Equal(t, "not required", TokenNotRequired.String())
	assert.Equal(t, "available", TokenAvailable.String())
	assert.Equal(t, "required", TokenRequired.String())
}

func TestDetectorLoadFailure(t *testing.T) {
	d := New(WithDir(t.TempDir()))
	assert.False(t, d.Available())

	_, err := d.Predict(context.Background(), "hello world")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model config")

	// The failure latches; retries see the same error.
	_, again := d.Predict(context.Background(), "hello world")
	require.Error(t, again)
	assert.Equal(t, err.Error(), again.Error())
}

func TestPredictCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(WithDir(t.TempDir()))
	_, err := d.Predict(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
