package scanlens

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scanlens/scanlens/internal/config"
	"github.com/scanlens/scanlens/internal/engine"
	"github.com/scanlens/scanlens/internal/gitmeta"
	"github.com/scanlens/scanlens/internal/insight"
	"github.com/scanlens/scanlens/internal/logging"
	"github.com/scanlens/scanlens/internal/report"
	"github.com/scanlens/scanlens/internal/rules"
	"github.com/scanlens/scanlens/internal/types"
	"github.com/scanlens/scanlens/internal/update"
)

var (
	flagPath       string
	flagFormat     string
	flagOutput     string
	flagConfigFile string
	flagWorkers    int
	flagSerial     bool
	flagMaxBytes   int64
	flagExclude    string
	flagAI         bool
	flagFailOn     string
	flagSelfUpdate bool
)

// errFailOn signals that the scan itself succeeded but the severity
// threshold was hit.
var errFailOn = errors.New("findings at or above fail-on threshold")

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a source tree and report issues",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: json|text|markdown|html")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&flagConfigFile, "config", "", "explicit config file (overrides discovery)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker count (0 = configured or default)")
	cmd.Flags().BoolVar(&flagSerial, "serial", false, "analyze files one at a time")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().BoolVar(&flagAI, "ai", false, "attach AI insights to the report")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit nonzero when issues at or above this severity exist")
	cmd.Flags().BoolVar(&flagSelfUpdate, "self-update", false, "update scanlens to the latest release")
}

// scanSetup is the merged, validated input for one scan invocation.
// serve and browse reuse it so all three commands resolve configuration
// identically.
type scanSetup struct {
	engine engine.Config
	format report.Format
}

func prepareScan(path string) (*scanSetup, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// Load configs: CLI > local > global. An explicit --config file
	// replaces discovery entirely.
	var gcfg, lcfg config.FileConfig
	if flagConfigFile != "" {
		if lcfg, err = config.LoadFile(flagConfigFile); err != nil {
			return nil, err
		}
	} else {
		if c, err := config.LoadGlobal(); err == nil {
			gcfg = c
		}
		if c, err := config.LoadLocal(abs); err == nil {
			lcfg = c
		}
	}

	langs := gcfg.EnabledLanguages()
	for lang, on := range lcfg.LanguageOverrides() {
		langs[lang] = on
	}
	exts := gcfg.ExtensionOverrides()
	for ext, lang := range lcfg.ExtensionOverrides() {
		exts[ext] = lang
	}

	specs := append(gcfg.CustomRuleSpecs(), lcfg.CustomRuleSpecs()...)
	set, err := rules.Load(specs, langs)
	if err != nil {
		return nil, err
	}

	excludes := append([]string{}, gcfg.IgnorePatterns...)
	excludes = append(excludes, lcfg.IgnorePatterns...)
	for _, g := range strings.Split(flagExclude, ",") {
		if g = strings.TrimSpace(g); g != "" {
			excludes = append(excludes, g)
		}
	}

	maxBytes := pickInt64(flagMaxBytes, lcfg.MaxFileSize, gcfg.MaxFileSize)
	if maxBytes == 0 {
		maxBytes = config.DefaultMaxFileSize
	}
	workers := pickInt(flagWorkers, lcfg.MaxWorkers, gcfg.MaxWorkers)
	if workers == 0 {
		workers = config.DefaultMaxWorkers
	}
	parallel := !flagSerial
	if parallel {
		if lcfg.ParallelProcessing != nil {
			parallel = *lcfg.ParallelProcessing
		} else if gcfg.ParallelProcessing != nil {
			parallel = *gcfg.ParallelProcessing
		}
	}

	formatName := pickString(flagFormat, lcfg.Format, gcfg.Format)
	if formatName == "" {
		formatName = "text"
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	logger := logging.New("scanlens", pickString(flagLogLevel, lcfg.LogLevel, gcfg.LogLevel))

	var provider insight.Provider
	if flagAI || lcfg.AIEnabled() || gcfg.AIEnabled() {
		provider = buildProvider(lcfg, gcfg)
	}
	aiTimeout := lcfg.AITimeout()
	if lcfg.AI == nil {
		aiTimeout = gcfg.AITimeout()
	}

	return &scanSetup{
		engine: engine.Config{
			Root:            abs,
			ExcludePatterns: excludes,
			DefaultExcludes: true,
			MaxFileSize:     maxBytes,
			Workers:         workers,
			Parallel:        parallel,
			NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
			Languages:       langs,
			ExtraExts:       exts,
			Rules:           set,
			Insight:         provider,
			AITimeout:       aiTimeout,
			Logger:          logger,
		},
		format: format,
	}, nil
}

// buildProvider picks the remote provider when an endpoint is configured
// and falls back to the built-in heuristic otherwise.
func buildProvider(lcfg, gcfg config.FileConfig) insight.Provider {
	ai := lcfg.AI
	if ai == nil {
		ai = gcfg.AI
	}
	if ai != nil && ai.Endpoint != nil && *ai.Endpoint != "" {
		apiKey := ""
		if ai.APIKeyEnv != nil {
			apiKey = os.Getenv(*ai.APIKeyEnv)
		}
		model := "gpt-4o-mini"
		if ai.Model != nil && *ai.Model != "" {
			model = *ai.Model
		}
		return insight.NewRemote(*ai.Endpoint, apiKey, model)
	}
	h := &insight.Heuristic{}
	if ai != nil && ai.ConfidenceThreshold != nil {
		h.MinPriority = *ai.ConfidenceThreshold
	}
	return h
}

func runScan(cmd *cobra.Command, args []string) error {
	if flagSelfUpdate {
		v, err := doSelfUpdate()
		if err != nil {
			return fmt.Errorf("self-update failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "scanlens is now v%s; re-run to scan\n", v)
		return nil
	}

	setup, err := prepareScan(targetPath(args))
	if err != nil {
		return err
	}

	interactive := setup.format == report.FormatText && flagOutput == "" &&
		term.IsTerminal(int(os.Stderr.Fd()))

	if interactive {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'scanlens update' to upgrade\n", latest)
			}
		}
		fmt.Fprintf(os.Stderr, "Scanning %s with %d rules...\n", setup.engine.Root, len(setup.engine.Rules.IDs()))
		var done atomic.Int64
		setup.engine.Progress = func(string) {
			n := done.Add(1)
			if n%25 == 0 {
				fmt.Fprintf(os.Stderr, "\r%d files analyzed", n)
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := engine.Scan(ctx, setup.engine)
	if err != nil {
		return err
	}
	if interactive {
		fmt.Fprint(os.Stderr, "\r")
	}
	res.Repo = gitmeta.Describe(setup.engine.Root)

	out := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := report.Render(out, setup.format, res); err != nil {
		return err
	}

	if flagFailOn != "" {
		min := types.Severity(flagFailOn)
		if min.Rank() < 0 {
			return fmt.Errorf("invalid --fail-on severity %q", flagFailOn)
		}
		if res.HasSeverityAtOrAbove(min) {
			return errFailOn
		}
	}
	return nil
}
