// Package main provides the uilint CLI: a cross-framework UI style
// consistency analyzer for JSX/TSX, Vue, and Svelte components.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
