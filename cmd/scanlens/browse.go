package scanlens

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scanlens/scanlens/internal/engine"
	"github.com/scanlens/scanlens/internal/gitmeta"
	"github.com/scanlens/scanlens/internal/report"
	"github.com/scanlens/scanlens/internal/tui"
)

func init() {
	var fromFile string
	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse scan results interactively",
		Long:  "Scans and opens the result in a terminal browser. With --from, loads a previously saved JSON report instead of scanning.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("browse needs an interactive terminal; use 'scanlens scan' for piped output")
			}

			if fromFile != "" {
				f, err := os.Open(fromFile)
				if err != nil {
					return err
				}
				defer f.Close()
				res, err := report.ReadJSON(f)
				if err != nil {
					return fmt.Errorf("reading %s: %w", fromFile, err)
				}
				return tui.Run(res)
			}

			setup, err := prepareScan(targetPath(args))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := engine.Scan(ctx, setup.engine)
			if err != nil {
				return err
			}
			res.Repo = gitmeta.Describe(setup.engine.Root)
			return tui.Run(res)
		},
	}
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&fromFile, "from", "", "load a saved JSON report instead of scanning")
	rootCmd.AddCommand(cmd)
}
