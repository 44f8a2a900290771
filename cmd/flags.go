package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/render"
	"github.com/spf13/cobra"
)

// documentFlags are shared by the commands that produce a document.
type documentFlags struct {
	company     string
	description string
	project     string
	pdf         bool
	html        bool
	markdown    bool
	json        bool
	outputDir   string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.company, "company", "", "Company name (required)")
	cmd.Flags().StringVar(&f.description, "description", "", "Company description (required)")
	cmd.Flags().StringVar(&f.project, "project", "", "Project name (default: detected from the response)")

	// Output format flags (mutually exclusive).
	cmd.Flags().BoolVar(&f.pdf, "pdf", false, "Output PDF")
	cmd.Flags().BoolVar(&f.html, "html", false, "Output standalone HTML")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "Output Markdown")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output structured JSON")

	cmd.Flags().StringVar(&f.outputDir, "output_dir", "", "Output directory (default: current directory)")
}

// validate checks that exactly one output format is chosen and that the
// company details are present.
func (f *documentFlags) validate() error {
	if f.company == "" || f.description == "" {
		return fmt.Errorf("--company and --description are required")
	}

	formatCount := 0
	for _, set := range []bool{f.pdf, f.html, f.markdown, f.json} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --html, --markdown, or --json")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// renderer creates the Renderer selected by the format flags.
func (f *documentFlags) renderer() (core.Renderer, error) {
	switch {
	case f.pdf:
		return render.NewPDFRenderer(), nil
	case f.html:
		return render.NewHTMLRenderer(), nil
	case f.markdown:
		return render.NewMarkdownRenderer(), nil
	case f.json:
		return render.NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}

func (f *documentFlags) meta() core.DocumentMeta {
	return core.DocumentMeta{
		CompanyName:        f.company,
		CompanyDescription: f.description,
		ProjectName:        f.project,
	}
}
