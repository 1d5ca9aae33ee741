package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the Gemini API keys that will be rotated through",
	Long:  "Prints the API keys parsed from GEMINI_API_KEYS, .env and config.yaml, masked, in rotation order.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keys := cfg.Gemini.Keys()
		out := cmd.OutOrStdout()
		if len(keys) == 0 {
			fmt.Fprintln(out, "No API keys configured. Set GEMINI_API_KEYS to a comma-separated list.")
			return nil
		}
		for i, k := range keys {
			fmt.Fprintf(out, "%d. %s\n", i+1, maskKey(k))
		}
		fmt.Fprintf(out, "\nModels: %s\n", strings.Join(cfg.Gemini.Models, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

// maskKey keeps the first and last four characters of keys long enough to
// stay unrecognisable.
func maskKey(k string) string {
	if len(k) <= 8 {
		return strings.Repeat("*", len(k))
	}
	return k[:4] + strings.Repeat("*", len(k)-8) + k[len(k)-4:]
}
