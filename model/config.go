package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// netConfig is the slice of the transformers config.json this package
// cares about: the architecture family, the label table and the input
// length limit.
type netConfig struct {
	ModelType    string            `json:"model_type"`
	ID2Label     map[string]string `json:"id2label"`
	MaxPositions int               `json:"max_position_embeddings"`
}

func loadNetConfig(dir string) (*netConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		return nil, fmt.Errorf("read model config: %w", err)
	}

	var cfg netConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse model config: %w", err)
	}
	if len(cfg.ID2Label) == 0 {
		return nil, fmt.Errorf("model config has no id2label table")
	}
	return &cfg, nil
}

// cleanIndex locates the logit index of the "clean" class. The
// remaining classes are all treated as flavors of gibberish.
func (c *netConfig) cleanIndex() (int, error) {
	for id, label := range c.ID2Label {
		if !strings.EqualFold(label, "clean") {
			continue
		}
		idx, err := strconv.Atoi(id)
		if err != nil {
			return 0, fmt.Errorf("non-numeric label id %q in model config", id)
		}
		return idx, nil
	}
	return 0, fmt.Errorf("no clean label in model config")
}

func (c *netConfig) maxLen() int {
	if c.MaxPositions > 0 {
		return c.MaxPositions
	}
	return 512
}
