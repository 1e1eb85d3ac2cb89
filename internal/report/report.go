// Package report renders a scan result in the supported output formats.
// Every renderer iterates files through ScanResult.Paths so output is
// stable across runs.
package report

import (
	"fmt"
	"io"

	"github.com/scanlens/scanlens/internal/types"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists all supported output formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatText, FormatMarkdown, FormatHTML}
}

// ParseFormat validates a user-supplied format name. Aliases accepted:
// "md" for markdown, "txt" for text.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q (want json, text, markdown or html)", s)
}

// Render writes res to w in the given format.
func Render(w io.Writer, f Format, res *types.ScanResult) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatText:
		return WriteText(w, res)
	case FormatMarkdown:
		return WriteMarkdown(w, res)
	case FormatHTML:
		return WriteHTML(w, res)
	}
	return fmt.Errorf("unknown report format %q", f)
}
