package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/scanlens/scanlens/internal/cache"
	"github.com/scanlens/scanlens/internal/insight"
	"github.com/scanlens/scanlens/internal/language"
	"github.com/scanlens/scanlens/internal/rules"
	"github.com/scanlens/scanlens/internal/types"
)

// FileReadErrorID marks issues synthesized for files that could not be
// read. They are reported inside the result instead of failing the scan.
const FileReadErrorID = "file_read_error"

// RootPathError means the scan root is missing or not a directory. It is
// fatal: no scan is attempted.
type RootPathError struct {
	Path string
	Err  error
}

func (e *RootPathError) Error() string {
	return fmt.Sprintf("scan root %q: %v", e.Path, e.Err)
}

func (e *RootPathError) Unwrap() error { return e.Err }

// Config carries everything a scan needs. The zero value is not usable;
// Root and Rules must be set.
type Config struct {
	Root            string
	ExcludePatterns []string
	DefaultExcludes bool
	MaxFileSize     int64
	Workers         int
	Parallel        bool
	NoCache         bool
	Languages       map[types.Language]bool
	ExtraExts       map[string]types.Language
	Rules           *rules.Set
	Insight         insight.Provider
	AITimeout       time.Duration
	Logger          hclog.Logger
	Progress        func(path string)
}

func (c Config) langEnabled(lang types.Language) bool {
	if c.Languages == nil {
		return true
	}
	return c.Languages[lang]
}

func (c Config) workerCount() int {
	if !c.Parallel {
		return 1
	}
	if c.Workers > 0 {
		return c.Workers
	}
	return 4
}

// outcome is what one worker produced for one candidate. A nil result
// means the file was dropped after reading it (binary, or a language
// sniff that came back empty).
type outcome struct {
	res  *types.FileResult
	hash string
}

// Scan walks cfg.Root, analyzes every candidate file with cfg.Rules and
// returns the aggregated result. Worker goroutines read and analyze files
// concurrently; their outputs are merged by walk index so two scans of an
// unchanged tree produce identical results regardless of scheduling.
//
// Cancellation through ctx stops the intake of new files; whatever was
// already analyzed is returned with Cancelled set.
func Scan(ctx context.Context, cfg Config) (*types.ScanResult, error) {
	log := cfg.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, &RootPathError{Path: cfg.Root, Err: err}
	}
	if !info.IsDir() {
		return nil, &RootPathError{Path: cfg.Root, Err: fmt.Errorf("not a directory")}
	}

	candidates, stats, err := walk(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("walk complete", "candidates", len(candidates), "skipped_too_large", stats.skippedTooLarge)

	fp := cfg.Rules.Fingerprint()
	var db cache.DB
	if !cfg.NoCache {
		if db, err = cache.Load(cfg.Root); err != nil && !os.IsNotExist(err) {
			log.Warn("cache unreadable, scanning cold", "error", err)
		}
		if db.Rules != fp {
			if len(db.Entries) > 0 {
				log.Debug("rule set changed, ignoring cache")
			}
			db = cache.DB{Entries: map[string]cache.Entry{}}
		}
	}

	outcomes := make([]outcome, len(candidates))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.workerCount(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = analyzeOne(cfg, db, candidates[i], log)
				if cfg.Progress != nil {
					cfg.Progress(candidates[i].rel)
				}
			}
		}()
	}

	cancelled := false
feed:
	for i := range candidates {
		select {
		case <-ctx.Done():
			cancelled = true
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	res := &types.ScanResult{
		Root:      cfg.Root,
		Summary:   types.NewSummary(),
		Files:     make(map[string]*types.FileResult),
		Cancelled: cancelled || ctx.Err() != nil,
	}
	res.Summary.SkippedTooLarge = stats.skippedTooLarge

	fresh := cache.DB{Rules: fp, Entries: make(map[string]cache.Entry)}
	for i, o := range outcomes {
		if o.res == nil {
			continue
		}
		rel := candidates[i].rel
		res.Files[rel] = o.res
		res.Summary.TotalFiles++
		for _, iss := range o.res.Issues {
			res.Summary.TotalIssues++
			res.Summary.IssuesBySeverity[iss.Severity]++
			res.Summary.IssuesByType[iss.Category]++
		}
		if o.hash != "" {
			fresh.Entries[rel] = cache.Entry{Hash: o.hash, Result: *o.res}
		}
	}

	if !cfg.NoCache && !res.Cancelled {
		if err := cache.Save(cfg.Root, fresh); err != nil {
			log.Warn("cache not saved", "error", err)
		}
	}

	if cfg.Insight != nil && !res.Cancelled {
		attachInsight(ctx, cfg, res, log)
	}
	return res, nil
}

// analyzeOne reads and analyzes a single candidate. Read failures become
// an info issue on the file rather than an error.
func analyzeOne(cfg Config, db cache.DB, c candidate, log hclog.Logger) outcome {
	data, err := os.ReadFile(c.abs)
	if err != nil {
		log.Debug("unreadable file", "path", c.rel, "error", err)
		return outcome{res: &types.FileResult{
			Language: c.lang,
			Issues: []types.Issue{{
				RuleID:   FileReadErrorID,
				Severity: types.SevInfo,
				Category: types.CatQuality,
				Message:  fmt.Sprintf("could not read file: %v", err),
				Line:     1,
			}},
		}}
	}
	if looksBinary(data) {
		return outcome{}
	}

	lang := c.lang
	if lang == types.LangUnknown {
		lang = language.DetectWithContent(c.rel, data)
		if lang == types.LangUnknown || !cfg.langEnabled(lang) {
			return outcome{}
		}
	}

	hash := cache.Hash(data)
	if cached, ok := db.Lookup(c.rel, hash); ok {
		return outcome{res: &cached, hash: hash}
	}

	issues := cfg.Rules.Run(lang, data)
	return outcome{res: &types.FileResult{Language: lang, Issues: issues}, hash: hash}
}

// attachInsight asks the configured provider for a narrative layer over
// the result. Any failure, including timeout, leaves the result without
// insights; the scan itself already succeeded.
func attachInsight(ctx context.Context, cfg Config, res *types.ScanResult, log hclog.Logger) {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ictx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ins, err := cfg.Insight.Summarize(ictx, res)
	if err != nil {
		log.Warn("insight provider failed, continuing without insights",
			"provider", cfg.Insight.Name(), "error", err)
		return
	}
	res.AIInsights = ins
}
