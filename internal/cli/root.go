// Package cli implements the gibber command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gibberlab/gibber"
	"github.com/gibberlab/gibber/internal/evalstore"
	"github.com/gibberlab/gibber/judge"
	"github.com/gibberlab/gibber/model"
)

var rootCmd = &cobra.Command{
	Use:   "gibber",
	Short: "Gibberish detector for English text",
	Long: "Gibber tells natural English apart from keyboard mashing, random\n" +
		"strings and grammatical word salad, using letter statistics with an\n" +
		"optional transformer or LLM second opinion.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl("medium", "auto")
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GIBBER_DB env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then GIBBER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, evalstore.EnsureDir(p)
	}
	return evalstore.DefaultDBPath()
}

// buildDetector assembles the Detector shared by check, repl and eval.
func buildDetector(sensStr, mode string) (*gibber.Detector, gibber.Sensitivity, error) {
	s, err := gibber.ParseSensitivity(sensStr)
	if err != nil {
		return nil, 0, err
	}

	enh, err := resolveEnhancer(mode)
	if err != nil {
		return nil, 0, err
	}

	var opts []gibber.Option
	if enh != nil {
		opts = append(opts, gibber.WithEnhancer(enh))
	}
	return gibber.NewDetector(opts...), s, nil
}

// resolveEnhancer maps the --enhancer flag value to a second-stage
// classifier. auto attaches the local model when its artifacts are
// installed and otherwise runs heuristics only.
func resolveEnhancer(mode string) (gibber.Enhancer, error) {
	switch mode {
	case "off":
		return nil, nil
	case "auto":
		if det := model.New(); det.Available() {
			return det, nil
		}
		return nil, nil
	case "model":
		det := model.New()
		if !det.Available() {
			return nil, errors.New("model artifacts not installed, run: gibber model download")
		}
		return det, nil
	case "judge":
		cfg := judge.ConfigFromEnv()
		if cfg.Validate() != nil {
			var ok bool
			cfg, ok = judge.DiscoverConfig()
			if !ok {
				return nil, errors.New("no judge API key found, set OPENAI_API_KEY or ANTHROPIC_API_KEY")
			}
		}
		p, err := judge.New(cfg)
		if err != nil {
			return nil, err
		}
		return judge.NewEnhancer(p, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown enhancer %q (want auto, model, judge or off)", mode)
	}
}
