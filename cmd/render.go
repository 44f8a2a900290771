package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/rfpdraft/core/output"
	"github.com/spf13/cobra"
)

var renderFlags documentFlags

var renderCmd = &cobra.Command{
	Use:   "render <envelope.json>",
	Short: "Render a saved backend response without re-submitting",
	Long: `Render reads a response envelope ({"response": [...]} or {"sections": [...]})
from disk and writes it in the selected format. No network access is needed.

Examples:
  rfpdraft render Acme_Corp_RFP_Response.envelope.json --company "Acme Corp" --description "..." --html`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFlags.register(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := renderFlags.validate(); err != nil {
		return err
	}
	renderer, err := renderFlags.renderer()
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading envelope: %w", err)
	}

	writer, err := output.New(renderFlags.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	return writeDocument(body, renderFlags.meta(), cfg.Style, log, renderer, writer)
}
