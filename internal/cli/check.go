package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gibberlab/gibber"
	"github.com/gibberlab/gibber/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [text...]",
	Short: "Classify text as English or gibberish",
	Long: "Check classifies its arguments joined by spaces, or standard input\n" +
		"when no arguments are given, and exits with status 1 when the text\n" +
		"is gibberish.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sensStr, _ := cmd.Flags().GetString("sensitivity")
		mode, _ := cmd.Flags().GetString("enhancer")
		det, s, err := buildDetector(sensStr, mode)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}

		res := det.ClassifyContext(cmd.Context(), text, s)

		showFeatures, _ := cmd.Flags().GetBool("features")
		printVerdict(res, showFeatures)

		if res.Gibberish {
			os.Exit(1)
		}
		return nil
	},
}

func printVerdict(res gibber.Result, features bool) {
	if res.Gibberish {
		fmt.Println(ui.Gibberish.Render("gibberish"), ui.Detail.Render(string(res.Reason)))
	} else {
		fmt.Println(ui.Clean.Render("english"), ui.Detail.Render(string(res.Reason)))
	}

	if res.Reason == gibber.ReasonComposite {
		fmt.Printf("score:      %.3f (threshold %.3f)\n", res.Composite, res.Threshold)
	}
	if res.Enhanced {
		fmt.Println("model:      checked")
	}

	if !features {
		return
	}
	switch res.Reason {
	case gibber.ReasonEmpty, gibber.ReasonControlChars, gibber.ReasonPassword, gibber.ReasonShortText:
		fmt.Println("features:   not computed, a rule settled the text first")
		return
	}

	f := res.Features
	fmt.Printf("words:      %d recognized, ratio %.2f\n", f.RecognizedWords, f.WordRatio)
	fmt.Printf("entropy:    %.2f bits/char\n", f.Entropy)
	fmt.Printf("transition: %.2f\n", f.Transition)
	fmt.Printf("vowels:     %.2f\n", f.VowelRatio)
	fmt.Printf("trigrams:   %.2f\n", f.TrigramScore)
	fmt.Printf("quadgrams:  %.2f\n", f.QuadgramScore)
}

func init() {
	checkCmd.Flags().StringP("sensitivity", "s", "high", "Detection sensitivity: low, medium or high")
	checkCmd.Flags().Bool("features", false, "Print the computed feature set")
	checkCmd.Flags().String("enhancer", "auto", "Second-stage classifier: auto, model, judge or off")
}
