package scanlens

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scanlens/scanlens/internal/engine"
	"github.com/scanlens/scanlens/internal/gitmeta"
	"github.com/scanlens/scanlens/internal/server"
)

func init() {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Scan and serve the report over HTTP",
		Long:  "Runs a scan and then serves the HTML report at /, the raw document at /report.json, and a health probe at /health until interrupted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			fmt.Fprintf(os.Stderr, "report at http://%s (ctrl-c to stop)\n", displayAddr(addr))
			return server.New(res, addr, setup.engine.Logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8417", "listen address")
	rootCmd.AddCommand(cmd)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
