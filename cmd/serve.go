package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/wordloom/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve the word-cloud JSON API over HTTP",
	Long: `Starts the HTTP API right away and loads the dataset in the background.
Until the load finishes /healthz and the data endpoints answer 503; a failed
load stays visible as an error rather than an empty chart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := sourceArg(args)
		if err != nil {
			return err
		}
		s, err := newSession()
		if err != nil {
			return err
		}
		addr := cfg.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			if err := s.Load(ctx, rawSource(src)); err != nil {
				logger.Error("dataset unavailable", slog.String("source", src), slog.String("error", err.Error()))
			}
		}()
		return server.New(s, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server_addr)")
}
