package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact files that make up an installed model.
const (
	configFile    = "config.json"
	tokenizerFile = "tokenizer.json"
	weightsFile   = "model.onnx"
)

var artifactFiles = []string{configFile, tokenizerFile, weightsFile}

// DefaultDir returns the directory the model is installed to when no
// explicit directory is configured. GIBBER_MODEL_DIR overrides the
// per-user cache location.
func DefaultDir() (string, error) {
	if dir := os.Getenv("GIBBER_MODEL_DIR"); dir != "" {
		return dir, nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache directory: %w", err)
	}
	return filepath.Join(cache, "gibber", "model"), nil
}

// Exists reports whether dir holds a complete set of model artifacts.
func Exists(dir string) bool {
	for _, name := range artifactFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}
