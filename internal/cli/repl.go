package cli

import (
	"github.com/spf13/cobra"

	"github.com/gibberlab/gibber/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Check text interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		sensStr, _ := cmd.Flags().GetString("sensitivity")
		mode, _ := cmd.Flags().GetString("enhancer")
		return runRepl(sensStr, mode)
	},
}

func runRepl(sensStr, mode string) error {
	det, s, err := buildDetector(sensStr, mode)
	if err != nil {
		return err
	}
	return ui.Run(det, s)
}

func init() {
	replCmd.Flags().StringP("sensitivity", "s", "medium", "Starting sensitivity: low, medium or high")
	replCmd.Flags().String("enhancer", "auto", "Second-stage classifier: auto, model, judge or off")
}
