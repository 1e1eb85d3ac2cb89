package scanlens

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scanlens/scanlens/internal/language"
	"github.com/scanlens/scanlens/internal/rules"
)

// gendocs regenerates the built-in rules section in README.md between
// the markers <!-- BEGIN:RULES --> and <!-- END:RULES -->.
func init() {
	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Regenerate README rules listing",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := "README.md"
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := []byte("<!-- BEGIN:RULES -->")
			end := []byte("<!-- END:RULES -->")
			i := bytes.Index(b, start)
			j := bytes.Index(b, end)
			if i < 0 || j < 0 || j <= i {
				return fmt.Errorf("markers not found in README.md")
			}

			set, err := rules.Load(nil, nil)
			if err != nil {
				return err
			}

			var out strings.Builder
			out.WriteString("\n")
			for _, lang := range language.Supported() {
				rs := set.ForLanguage(lang)
				if len(rs) == 0 {
					continue
				}
				fmt.Fprintf(&out, "### %s\n\n", lang)
				out.WriteString("| Rule | Severity | Category | Description |\n|---|---|---|---|\n")
				for _, r := range rs {
					fmt.Fprintf(&out, "| `%s` | %s | %s | %s |\n", r.ID(), r.Severity(), r.Category(), r.Description())
				}
				out.WriteString("\n")
			}

			var nb bytes.Buffer
			nb.Write(b[:i])
			nb.Write(start)
			nb.WriteString(out.String())
			nb.Write(end)
			nb.Write(b[j+len(end):])
			return os.WriteFile(path, nb.Bytes(), 0644)
		},
	}
	rootCmd.AddCommand(cmd)
}
