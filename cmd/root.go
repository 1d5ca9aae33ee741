package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JittoJoseph/AutoFill-Forms/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Answer multiple-choice form questions with Gemini",
	Long:  "Resolves multiple-choice questions extracted from a form page to option numbers via Gemini, rotating API keys and models when the service throttles.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
