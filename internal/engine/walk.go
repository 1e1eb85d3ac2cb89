package engine

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/scanlens/scanlens/internal/language"
	"github.com/scanlens/scanlens/internal/types"
)

// candidate is a file selected by the walker, not yet read. Workers load
// content themselves so walking stays cheap on large trees.
type candidate struct {
	rel  string
	abs  string
	lang types.Language // by extension; LangUnknown still possible for extensionless files
}

// walkStats counts files the walker skipped for reasons worth reporting.
type walkStats struct {
	skippedTooLarge int
}

// walk traverses the tree under cfg.Root depth-first and returns candidates
// in walk order. Excluded directories are pruned before descending and
// symbolic links are never followed. Files over cfg.MaxFileSize are counted
// as skipped rather than analyzed.
func walk(ctx context.Context, cfg Config) ([]candidate, walkStats, error) {
	var (
		out   []candidate
		stats walkStats
	)
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable directory entries are skipped, not fatal
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if p == cfg.Root {
				return nil
			}
			name := d.Name()
			if cfg.DefaultExcludes && isDefaultDirExcluded(name) {
				return filepath.SkipDir
			}
			rel, _ := filepath.Rel(cfg.Root, p)
			if matchesAnyPattern(rel, cfg.ExcludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if matchesAnyPattern(rel, cfg.ExcludePatterns) {
			return nil
		}
		lang := language.Detect(rel)
		if lang == types.LangUnknown {
			if ext := filepath.Ext(rel); ext != "" {
				override, ok := cfg.ExtraExts[ext]
				if !ok {
					return nil
				}
				lang = override
			}
		}
		if lang != types.LangUnknown && !cfg.langEnabled(lang) {
			return nil
		}
		if info, err := d.Info(); err == nil && cfg.MaxFileSize > 0 && info.Size() > cfg.MaxFileSize {
			stats.skippedTooLarge++
			return nil
		}
		out = append(out, candidate{rel: rel, abs: p, lang: lang})
		return nil
	})
	return out, stats, err
}
