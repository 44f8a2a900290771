// Package cmd — generate command.
// This is the main command that orchestrates the pipeline:
// submit → parse → normalize → render → write.
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/rfpdraft/config"
	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/envelope"
	"github.com/gaurav-prasanna/rfpdraft/core/normalize"
	"github.com/gaurav-prasanna/rfpdraft/core/output"
	"github.com/gaurav-prasanna/rfpdraft/core/submit"
	"github.com/gaurav-prasanna/rfpdraft/logger"
	"github.com/spf13/cobra"
)

var (
	generateFlags documentFlags
	flagSaveRaw   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <rfp-file>",
	Short: "Submit an RFP and write the generated response",
	Long: `Generate uploads an RFP document to the response-generation backend,
normalizes the returned sections, and writes them in the selected format.

Examples:
  rfpdraft generate rfp.pdf --company "Acme Corp" --description "Cloud consultancy" --pdf
  rfpdraft generate rfp.docx --company "Acme Corp" --description "..." --markdown --output_dir ./out
  rfpdraft generate rfp.pdf --company "Acme Corp" --description "..." --json --save_raw`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateFlags.register(generateCmd)
	generateCmd.Flags().BoolVar(&flagSaveRaw, "save_raw", false, "Also write the backend envelope next to the output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := generateFlags.validate(); err != nil {
		return err
	}
	renderer, err := generateFlags.renderer()
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading RFP: %w", err)
	}

	writer, err := output.New(generateFlags.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	client := newSubmitClient(cfg)
	fmt.Fprintf(os.Stdout, "Submitting %s to %s...\n", filepath.Base(path), client.URL())

	body, err := client.Submit(cmd.Context(), core.Upload{
		FileName:    filepath.Base(path),
		File:        bytes.NewReader(file),
		Description: generateFlags.description,
	})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	if flagSaveRaw {
		rawPath, err := writer.Write(generateFlags.company, body, ".envelope.json")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", rawPath)
	}

	return writeDocument(body, generateFlags.meta(), cfg.Style, log, renderer, writer)
}

// writeDocument runs parse → normalize → render → write over an envelope.
func writeDocument(
	body []byte,
	meta core.DocumentMeta,
	style core.DocumentStyle,
	log *logger.Logger,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	raws, err := envelope.Parse(body)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	doc := normalize.BuildDocument(raws, meta, style)
	log.Info("document built", "sections", len(doc.Sections), "project", doc.Meta.ProjectName)

	data, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(doc.Meta.CompanyName, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

func newSubmitClient(cfg *config.Config) *submit.Client {
	opts := []submit.Option{submit.WithTimeout(cfg.API.Timeout)}
	if cfg.API.UserAgent != "" {
		opts = append(opts, submit.WithUserAgent(cfg.API.UserAgent))
	}
	return submit.New(cfg.API.BaseURL, cfg.API.Endpoint, opts...)
}
