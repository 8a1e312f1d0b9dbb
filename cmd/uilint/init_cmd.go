package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .uilint.yaml config and starter token file",
	Long: `Create a .uilint.yaml configuration file and, if none exists, a
starter tokens.yaml registry in the current directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".uilint.yaml"); err == nil && !force {
			return fmt.Errorf(".uilint.yaml already exists (use --force to overwrite)")
		}
		if err := os.WriteFile(".uilint.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		fmt.Println("Created .uilint.yaml")

		if _, err := os.Stat("tokens.yaml"); err == nil && !force {
			return nil
		}
		if err := os.WriteFile("tokens.yaml", []byte(starterTokens), 0644); err != nil {
			return fmt.Errorf("writing token file: %w", err)
		}
		fmt.Println("Created tokens.yaml")
		return nil
	},
}

const defaultConfig = `# uilint configuration

verbose: false

analyze:
  paths:
    - "src/**/*.tsx"
    - "src/**/*.jsx"
    - "src/**/*.vue"
    - "src/**/*.svelte"
  tokens: tokens.yaml
  threshold: 0.85          # near-duplicate similarity threshold
  parallelism: 0           # 0 = GOMAXPROCS
  parse-timeout: 5s
  strict: false
  output-format: issues    # issues | summary | full | json
  exempt: []               # extra drift-exempt literal values
`

const starterTokens = `# Design-token registry: token name -> canonical value.
tokens:
  --spacing-1: 4px
  --spacing-2: 8px
  --spacing-3: 12px
  --spacing-4: 16px
  --spacing-6: 24px
  --spacing-8: 32px
  --color-text-primary: "#1f2937"
  --color-text-secondary: "#6b7280"
  --color-surface: "#ffffff"
  --color-accent: "#2563eb"
  --focus-ring-width: 2px
  --focus-ring-color: "#ffffff"
  --focus-ring-offset: 2px
  --font-size-sm: 14px
  --font-size-md: 16px
  --font-size-lg: 20px
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
}
