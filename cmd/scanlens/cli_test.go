package scanlens

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scanlens/scanlens/internal/config"
	"github.com/scanlens/scanlens/internal/engine"
	"github.com/scanlens/scanlens/internal/report"
)

// TestMain points XDG_CONFIG_HOME at a scratch directory so a developer's
// real global config never leaks into the tests.
func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "scanlens-cli-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", tmp)
	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestScan_JSONShape(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("eval(data)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "report.json")

	err := runCLI(t, "scan", "-p", dir, "--format", "json", "--output", out, "--no-cache")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	res, err := report.ReadJSON(f)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if res.Summary.TotalFiles != 1 || res.Summary.TotalIssues == 0 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
	if _, ok := res.Files["app.py"]; !ok {
		t.Fatalf("expected app.py in files, got %v", res.Paths())
	}
}

func TestScan_FailOnThreshold(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("eval(data)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "report.json")

	err := runCLI(t, "scan", "-p", dir, "--format", "json", "--output", out, "--no-cache", "--fail-on", "high")
	if !errors.Is(err, errFailOn) {
		t.Fatalf("expected fail-on error, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Fatalf("fail-on should exit 1, got %d", exitCode(err))
	}

	// threshold above every finding passes
	if err := runCLI(t, "scan", "-p", dir, "--format", "json", "--output", out, "--no-cache", "--fail-on", ""); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	err := runCLI(t, "scan", "-p", filepath.Join(t.TempDir(), "nope"), "--format", "json", "--output", filepath.Join(t.TempDir(), "r.json"))
	var rpe *engine.RootPathError
	if !errors.As(err, &rpe) {
		t.Fatalf("expected RootPathError, got %v", err)
	}
	if exitCode(err) != 3 {
		t.Fatalf("bad root should exit 3, got %d", exitCode(err))
	}
}

func TestScan_LocalConfigPicksFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := "format: json\nignore_patterns:\n  - \"skipme/**\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".scanlens.yml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "skipme"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skipme", "bad.py"), []byte("eval(x)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ok.py"), []byte("x = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "report.json")

	// no --format flag: local config supplies json
	if err := runCLI(t, "scan", "-p", dir, "--format", "", "--output", out, "--no-cache"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	res, err := report.ReadJSON(f)
	if err != nil {
		t.Fatalf("expected JSON output via config: %v", err)
	}
	if _, ok := res.Files["skipme/bad.py"]; ok {
		t.Fatal("ignore_patterns from config not applied")
	}
}

func TestScan_GlobalConfigDisablesLanguage(t *testing.T) {
	xdg := t.TempDir()
	if err := os.MkdirAll(filepath.Join(xdg, "scanlens"), 0755); err != nil {
		t.Fatal(err)
	}
	global := "languages:\n  python:\n    enabled: false\n"
	if err := os.WriteFile(filepath.Join(xdg, "scanlens", "config.yml"), []byte(global), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.py"), []byte("eval(x)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.js"), []byte("eval(x)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "report.json")

	// no local config: the global disable must survive the merge
	if err := runCLI(t, "scan", "-p", dir, "--format", "json", "--output", out, "--no-cache"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	res, err := report.ReadJSON(f)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, ok := res.Files["a.py"]; ok {
		t.Fatal("globally disabled language was scanned anyway")
	}
	if _, ok := res.Files["b.js"]; !ok {
		t.Fatalf("expected b.js in files, got %v", res.Paths())
	}
}

func TestScan_PositionalPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("eval(data)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "report.json")

	if err := runCLI(t, "scan", dir, "--format", "json", "--output", out, "--no-cache"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	res, err := report.ReadJSON(f)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, ok := res.Files["app.py"]; !ok {
		t.Fatalf("positional path ignored, got %v", res.Paths())
	}

	if err := runCLI(t, "scan", dir, dir); err == nil {
		t.Fatal("expected an error for a second positional argument")
	}
}

func TestScan_BadConfigExitCode(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "cfg.yml")
	if err := os.WriteFile(bad, []byte("max_workers: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := runCLI(t, "scan", "-p", dir, "--config", bad, "--format", "json", "--output", filepath.Join(t.TempDir(), "r.json"))
	var cerr *config.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if exitCode(err) != 4 {
		t.Fatalf("config error should exit 4, got %d", exitCode(err))
	}
}

func TestRulesCommand(t *testing.T) {
	if err := runCLI(t, "rules"); err != nil {
		t.Fatalf("rules: %v", err)
	}
}

func TestScan_SelfUpdateFlag(t *testing.T) {
	orig := doSelfUpdate
	doSelfUpdate = func() (string, error) { return "9.9.9", nil }
	defer func() {
		doSelfUpdate = orig
		flagSelfUpdate = false
	}()

	// honored even without a TTY, and without running a scan
	if err := runCLI(t, "scan", "--self-update"); err != nil {
		t.Fatalf("self-update: %v", err)
	}
}

func TestPickHelpers(t *testing.T) {
	s := "local"
	g := "global"
	if pickString("cli", &s, &g) != "cli" {
		t.Fatal("cli should win")
	}
	if pickString("", &s, &g) != "local" {
		t.Fatal("local should win over global")
	}
	if pickString("", nil, &g) != "global" {
		t.Fatal("global should apply when others unset")
	}

	i := 7
	if pickInt(0, &i, nil) != 7 {
		t.Fatal("pickInt local")
	}
	b := false
	if pickBool(false, &b, nil) != false {
		t.Fatal("pickBool local false")
	}
	if !pickBool(true, &b, nil) {
		t.Fatal("pickBool cli true")
	}
}
