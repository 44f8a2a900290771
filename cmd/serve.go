package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/rfpdraft/core/session"
	"github.com/gaurav-prasanna/rfpdraft/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload, review, and export API",
	Long: `Serve starts an HTTP API for the interactive flow: create a session with
company details, upload an RFP, review and edit each section, then export.

Examples:
  rfpdraft serve
  rfpdraft serve --addr :9090 --config ./rfpdraft.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Addr:           cfg.Server.Addr,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, session.NewStore(cfg.Style, log), newSubmitClient(cfg), log)

	return srv.Run(ctx)
}
