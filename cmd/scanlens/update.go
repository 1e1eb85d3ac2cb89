package scanlens

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanlens/scanlens/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update scanlens to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			if latest, newer, _ := update.Check(version, false); !newer {
				if latest != "" {
					fmt.Fprintf(os.Stderr, "already up to date (v%s)\n", latest)
				} else {
					fmt.Fprintln(os.Stderr, "already up to date")
				}
				return nil
			}
			v, err := doSelfUpdate()
			if err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Fprintf(os.Stderr, "updated to v%s\n", v)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
