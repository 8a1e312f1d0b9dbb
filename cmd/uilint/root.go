package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "uilint",
	Short: "Cross-framework UI style consistency analyzer",
	Long: `Analyze JSX/TSX, Vue, and Svelte components for token drift,
duplicated style blocks, and inconsistent interactive-state styling.
All comparison happens over one normalized style representation, so a
hardcoded literal in a React component and a token reference in a Svelte
component still compare equal.`,
	// Default behavior: run analyze when no subcommand is given.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runAnalyze(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".uilint.yaml", "Config file path")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
