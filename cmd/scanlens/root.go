package scanlens

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanlens/scanlens/internal/config"
	"github.com/scanlens/scanlens/internal/engine"
	"github.com/scanlens/scanlens/internal/rules"
)

var (
	flagLogLevel      string
	flagNoCache       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the scanlens CLI.
var rootCmd = &cobra.Command{
	Use:           "scanlens",
	Short:         "Static analysis for multi-language codebases",
	Long:          "scanlens walks a source tree, runs language-aware rules over Python, JavaScript, TypeScript and Java files, and reports issues as JSON, text, markdown or HTML.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the scanlens CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps fatal error kinds to distinct exit statuses so CI can
// tell a bad invocation from a failed threshold.
func exitCode(err error) int {
	var (
		cfgErr  *config.ConfigError
		rootErr *engine.RootPathError
		dupErr  *rules.DuplicateRuleError
	)
	switch {
	case errors.As(err, &rootErr):
		return 3
	case errors.As(err, &cfgErr), errors.As(err, &dupErr):
		return 4
	case errors.Is(err, errFailOn):
		return 1
	}
	return 2
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log verbosity: trace|debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
