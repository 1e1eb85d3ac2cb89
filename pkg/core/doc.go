// Package core provides a small, stable facade over scanlens's internal
// engine for external integrations. It deliberately re-exports a narrow
// API surface so other tools can depend on a stable import path without
// reaching into internal implementation packages.
//
// Example:
//
//	set, _ := core.DefaultRules()
//	res, err := core.Scan(ctx, core.Config{Root: ".", Rules: set, Parallel: true})
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
