// Package cache persists per-file scan results keyed by content hash so
// unchanged files skip rule evaluation on the next run.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/scanlens/scanlens/internal/types"
)

// Entry pairs a file's content hash with the result produced for it.
type Entry struct {
	Hash   string           `json:"hash"`
	Result types.FileResult `json:"result"`
}

// DB maps paths (relative to the scan root) to cached entries. Rules holds
// the fingerprint of the rule set the entries were produced with; entries
// from a different rule set must not be served.
type DB struct {
	Rules   string           `json:"rules,omitempty"`
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing the cache under .git to avoid accidental commits;
	// fall back to the scan root when .git does not exist.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "scanlenscache.json")
	}
	return filepath.Join(root, ".scanlenscache.json")
}

// Load reads the cache for a scan root. A missing or corrupt cache is not
// an error worth surfacing; callers get an empty DB.
func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

// Save writes the cache for a scan root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(root), b, 0o644)
}

// Lookup returns the cached result for a path when the content hash still
// matches.
func (db DB) Lookup(path, hash string) (types.FileResult, bool) {
	e, ok := db.Entries[path]
	if !ok || e.Hash != hash {
		return types.FileResult{}, false
	}
	return e.Result, true
}

// Hash returns the content hash used as the cache key.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
