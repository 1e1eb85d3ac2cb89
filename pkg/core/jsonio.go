package core

import (
	"io"

	"github.com/scanlens/scanlens/internal/report"
)

// MarshalResult pretty-prints a result as JSON for humans or pipelines.
func MarshalResult(w io.Writer, res *ScanResult) error {
	return report.WriteJSON(w, res)
}

// UnmarshalResult decodes a result document, useful for ingestion tests.
func UnmarshalResult(r io.Reader) (*ScanResult, error) {
	return report.ReadJSON(r)
}
