// Package scanlens provides the command-line interface for the scanlens
// tool. It configures subcommands (scan, rules, serve, browse, etc.),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/scanlens/scanlens/cmd/scanlens"
//	func main() { scanlens.Execute() }
package scanlens
