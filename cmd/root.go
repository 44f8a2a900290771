// Package cmd implements the CLI commands for rfpdraft using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/rfpdraft/config"
	"github.com/gaurav-prasanna/rfpdraft/logger"
	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "rfpdraft",
	Short: "rfpdraft — turn an RFP into a reviewed, exportable response",
	Long: `rfpdraft uploads an RFP document to the response-generation backend,
normalizes the returned sections, and exports them as PDF, HTML, Markdown, or JSON.

Usage:
  rfpdraft generate <rfp-file> --company "Acme" --description "..." --pdf
  rfpdraft render <envelope.json> --company "Acme" --html
  rfpdraft serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to the YAML config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, log, nil
}
