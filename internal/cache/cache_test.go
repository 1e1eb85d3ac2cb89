package cache

import (
	"testing"

	"github.com/scanlens/scanlens/internal/types"
)

func TestHashStableAndDistinct(t *testing.T) {
	a := Hash([]byte("password = \"x\"\n"))
	b := Hash([]byte("password = \"x\"\n"))
	c := Hash([]byte("password = \"y\"\n"))
	if a != b {
		t.Fatalf("hash not stable: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("distinct content hashed equal: %s", a)
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", a)
	}
}

func TestSaveLoadLookup(t *testing.T) {
	root := t.TempDir()
	fr := types.FileResult{
		Language: types.LangPython,
		Issues: []types.Issue{{
			RuleID: "py-dangerous-eval", Severity: types.SevCritical,
			Category: types.CatSecurity, Message: "eval", Line: 3,
		}},
	}
	db := DB{Rules: "f1e2d3c4b5a69788", Entries: map[string]Entry{
		"app.py": {Hash: Hash([]byte("eval(x)\n")), Result: fr},
	}}
	if err := Save(root, db); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Rules != "f1e2d3c4b5a69788" {
		t.Fatalf("rule fingerprint lost in round trip: %q", loaded.Rules)
	}
	got, ok := loaded.Lookup("app.py", Hash([]byte("eval(x)\n")))
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Issues) != 1 || got.Issues[0].RuleID != "py-dangerous-eval" {
		t.Fatalf("unexpected cached result: %+v", got)
	}

	if _, ok := loaded.Lookup("app.py", Hash([]byte("changed\n"))); ok {
		t.Fatal("stale hash must miss")
	}
	if _, ok := loaded.Lookup("other.py", "deadbeef"); ok {
		t.Fatal("unknown path must miss")
	}
}

func TestLoadMissingCacheIsEmpty(t *testing.T) {
	db, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing cache file")
	}
	if db.Entries == nil || len(db.Entries) != 0 {
		t.Fatalf("expected usable empty DB, got %+v", db)
	}
}
