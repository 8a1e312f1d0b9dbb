package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rlefko/uilint"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [patterns...]",
	Short: "Analyze component sources for style consistency issues",
	Long: `Run the full pipeline over the files matching the given glob
patterns: dialect extraction, token resolution, and the drift, duplicate,
and consistency detectors. Dialects are inferred from file extensions
(.jsx/.tsx, .vue, .svelte).`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("tokens", "tokens.yaml", "Design-token registry file (YAML)")
	f.Float64("threshold", uilint.DefaultNearDuplicateThreshold, "Near-duplicate similarity threshold")
	f.StringSlice("exempt", nil, "Additional literal values exempt from drift detection")
	f.Int("parallelism", 0, "Extraction worker limit (0 = GOMAXPROCS)")
	f.Duration("parse-timeout", 5*time.Second, "Per-file parse timeout")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = getStringsWithFallback("paths", "analyze.paths")
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no input patterns (pass globs as arguments or set analyze.paths)")
	}

	inputs, err := discoverInputs(patterns)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no component files matched %v", patterns)
	}

	verbose := getBoolWithFallback("verbose", "verbose", false)
	logger := buildLogger(verbose)
	defer func() { _ = logger.Sync() }()

	cfg := uilint.Config{
		Inputs:                 inputs,
		TokensFile:             getStringWithFallback("tokens", "analyze.tokens", "tokens.yaml"),
		NearDuplicateThreshold: getFloat64WithFallback("threshold", "analyze.threshold", uilint.DefaultNearDuplicateThreshold),
		ExemptValues:           getStringsWithFallback("exempt", "analyze.exempt"),
		Parallelism:            getIntWithFallback("parallelism", "analyze.parallelism", 0),
		ParseTimeout:           getDurationWithFallback("parse-timeout", "analyze.parse-timeout", 5*time.Second),
		Logger:                 logger,
	}

	result, err := uilint.Analyze(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		format := uilint.DetermineOutputFormat(getStringWithFallback("output-format", "analyze.output-format", ""))
		uilint.WriteOutput(os.Stdout, result, format, uilint.WriteOptions{
			UseColors:     shouldUseColors(),
			PrintDetector: true,
		})
	}

	// Soft gate: errors always fail; --strict fails on any issue.
	strict := getBoolWithFallback("strict", "analyze.strict", false)
	if result.ErrorCount() > 0 || (strict && len(result.Issues) > 0) {
		os.Exit(1)
	}
	return nil
}

// discoverInputs expands glob patterns, filters gitignored files, and
// infers a dialect for each match. Files whose extension maps to no
// dialect are skipped rather than failed.
func discoverInputs(patterns []string) ([]uilint.Input, error) {
	gi := loadGitIgnore()
	seen := make(map[string]bool)
	var inputs []uilint.Input

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if gi != nil && !filepath.IsAbs(match) && gi.MatchesPath(match) {
				continue
			}
			dialect, err := uilint.DialectForPath(match)
			if err != nil {
				continue
			}
			seen[match] = true
			inputs = append(inputs, uilint.Input{Path: match, Dialect: dialect})
		}
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Path < inputs[j].Path })
	return inputs, nil
}

// loadGitIgnore gracefully degrades when no .gitignore exists.
func loadGitIgnore() *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(".gitignore")
	if err != nil {
		return nil
	}
	return gi
}

func buildLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func shouldUseColors() bool {
	if getBoolWithFallback("color", "color", false) {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if info, _ := os.Stdout.Stat(); info != nil && (info.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}
