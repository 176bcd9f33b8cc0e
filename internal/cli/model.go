package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gibberlab/gibber/model"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage the local transformer model",
}

var modelDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the model artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveModelDir(cmd)
		if err != nil {
			return err
		}

		var opts []model.DownloadOption
		if force, _ := cmd.Flags().GetBool("force"); force {
			opts = append(opts, model.WithForce())
		}
		if tok, _ := cmd.Flags().GetString("token"); tok != "" {
			opts = append(opts, model.WithToken(tok))
		}
		dl := model.NewDownloader(opts...)

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Minute)
		defer cancel()

		fmt.Printf("Downloading %s\n", model.ModelID)
		fmt.Printf("Into %s\n\n", dir)

		done := 0
		err = dl.Download(ctx, dir, func(p model.Progress) {
			if p.Total > 0 {
				pct := float64(p.Received) / float64(p.Total) * 100
				fmt.Printf("\r%-16s %6.1f%%  %s", p.File, pct, formatBytes(p.Received))
			} else {
				fmt.Printf("\r%-16s %s", p.File, formatBytes(p.Received))
			}
			if p.Done > done {
				done = p.Done
				fmt.Printf("  [%d/%d]\n", p.Done, p.Files)
			}
		})
		if err != nil {
			fmt.Println()
			if errors.Is(err, model.ErrAuthRequired) {
				return fmt.Errorf("%w\n\nSet HF_TOKEN or pass --token and retry", err)
			}
			return err
		}

		if err := model.Verify(dir); err != nil {
			return err
		}
		fmt.Println("\nModel ready. Enhanced detection now runs by default.")
		return nil
	},
}

var modelStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the installed model state",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveModelDir(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Model:     %s\n", model.ModelID)
		fmt.Printf("Directory: %s\n", dir)

		if !model.Exists(dir) {
			fmt.Println("Installed: no")
			fmt.Printf("Token:     %s\n", model.CheckToken(dir))
			fmt.Println("\nRun: gibber model download")
			return nil
		}

		fmt.Println("Installed: yes")
		if installed, err := model.InstalledVersion(dir); err == nil {
			fmt.Printf("Version:   %s", installed)
			if model.UpdateAvailable(dir) {
				fmt.Printf("  (update available: %s, rerun gibber model download --force)", model.ManifestVersion)
			}
			fmt.Println()
		}

		if err := model.Verify(dir); err != nil {
			fmt.Printf("Checksums: failed, %v\n", err)
			return nil
		}
		fmt.Println("Checksums: ok")
		return nil
	},
}

var modelPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved artifact directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveModelDir(cmd)
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil
	},
}

// resolveModelDir returns the artifact directory using --dir (highest
// priority), then GIBBER_MODEL_DIR, then the user cache directory.
func resolveModelDir(cmd *cobra.Command) (string, error) {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir, nil
	}
	return model.DefaultDir()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func init() {
	modelCmd.PersistentFlags().String("dir", "", "Artifact directory (overrides GIBBER_MODEL_DIR env var)")
	modelDownloadCmd.Flags().Bool("force", false, "Refetch artifacts even when already present")
	modelDownloadCmd.Flags().String("token", "", "Hugging Face access token (overrides HF_TOKEN env var)")

	modelCmd.AddCommand(modelDownloadCmd)
	modelCmd.AddCommand(modelStatusCmd)
	modelCmd.AddCommand(modelPathCmd)
}
