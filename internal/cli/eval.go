package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gibberlab/gibber/internal/dataset"
	"github.com/gibberlab/gibber/internal/evalstore"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Measure accuracy against labeled datasets",
}

var evalRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Classify a labeled dataset and record the outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		sensStr, _ := cmd.Flags().GetString("sensitivity")
		mode, _ := cmd.Flags().GetString("enhancer")
		det, s, err := buildDetector(sensStr, mode)
		if err != nil {
			return err
		}

		ds := dataset.Builtin()
		if path, _ := cmd.Flags().GetString("dataset"); path != "" {
			ds, err = dataset.Load(path)
			if err != nil {
				return err
			}
		}

		start := time.Now()
		run := evalstore.Run{
			Dataset:     ds.Name,
			Sensitivity: s.String(),
			Enhanced:    det.HasEnhancedDetection(),
			Total:       len(ds.Samples),
		}
		var misses []evalstore.Miss
		for _, sample := range ds.Samples {
			res := det.ClassifyContext(cmd.Context(), sample.Text, s)
			if res.Gibberish == sample.Gibberish {
				run.Correct++
				continue
			}
			if res.Gibberish {
				run.FalsePos++
			} else {
				run.FalseNeg++
			}
			misses = append(misses, evalstore.Miss{
				Text:   sample.Text,
				Want:   sample.Gibberish,
				Got:    res.Gibberish,
				Reason: string(res.Reason),
			})
		}
		run.DurationMs = time.Since(start).Milliseconds()

		fmt.Printf("Dataset:     %s (%d samples)\n", ds.Name, run.Total)
		fmt.Printf("Sensitivity: %s\n", run.Sensitivity)
		fmt.Printf("Enhanced:    %v\n", run.Enhanced)
		fmt.Printf("Accuracy:    %.1f%% (%d/%d)\n", run.Accuracy()*100, run.Correct, run.Total)
		fmt.Printf("Misses:      %d false positive(s), %d false negative(s)\n", run.FalsePos, run.FalseNeg)

		if len(misses) > 0 {
			fmt.Println()
			printMisses(misses)
		}

		if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := evalstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		if err := st.SaveRun(cmd.Context(), &run, misses); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nSaved run %s\n", run.ID)
		return nil
	},
}

var evalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded evaluation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := evalstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No evaluation runs recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-12s  %-6s  %8s  %4s  %4s  %s\n",
			"ID", "Started", "Dataset", "Sens", "Acc", "FP", "FN", "Enh")
		fmt.Println(strings.Repeat("─", 104))

		for _, r := range runs {
			enh := ""
			if r.Enhanced {
				enh = "✓"
			}
			fmt.Printf("%-36s  %-19s  %-12s  %-6s  %7.1f%%  %4d  %4d  %s\n",
				r.ID,
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Dataset, 12),
				r.Sensitivity,
				r.Accuracy()*100,
				r.FalsePos,
				r.FalseNeg,
				enh,
			)
		}
		return nil
	},
}

var evalMissesCmd = &cobra.Command{
	Use:   "misses <run-id>",
	Short: "Show the misclassified samples of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := evalstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		misses, err := st.Misses(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("query misses: %w", err)
		}
		if len(misses) == 0 {
			fmt.Println("No misses recorded for this run.")
			return nil
		}

		printMisses(misses)
		return nil
	},
}

func printMisses(misses []evalstore.Miss) {
	fmt.Printf("%-44s  %-9s  %-9s  %s\n", "Text", "Want", "Got", "Reason")
	fmt.Println(strings.Repeat("─", 88))
	for _, m := range misses {
		fmt.Printf("%-44s  %-9s  %-9s  %s\n",
			truncate(m.Text, 44), label(m.Want), label(m.Got), m.Reason)
	}
}

func label(gibberish bool) string {
	if gibberish {
		return "gibberish"
	}
	return "english"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	evalRunCmd.Flags().StringP("dataset", "d", "", "Path to a labeled dataset file (defaults to the built-in smoke set)")
	evalRunCmd.Flags().StringP("sensitivity", "s", "medium", "Detection sensitivity: low, medium or high")
	evalRunCmd.Flags().String("enhancer", "off", "Second-stage classifier: auto, model, judge or off")
	evalRunCmd.Flags().Bool("no-save", false, "Print the summary without recording the run")
	evalListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")

	evalCmd.AddCommand(evalRunCmd)
	evalCmd.AddCommand(evalListCmd)
	evalCmd.AddCommand(evalMissesCmd)
}
