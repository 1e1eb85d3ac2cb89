package report

import (
	"encoding/json"
	"io"

	"github.com/scanlens/scanlens/internal/types"
)

// WriteJSON emits the result verbatim. JSON is the lossless format; the
// others are projections of it.
func WriteJSON(w io.Writer, res *types.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// ReadJSON parses a result previously written by WriteJSON. The serve
// and browse commands use it to reload saved reports.
func ReadJSON(r io.Reader) (*types.ScanResult, error) {
	var res types.ScanResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, err
	}
	if res.Files == nil {
		res.Files = map[string]*types.FileResult{}
	}
	return &res, nil
}
