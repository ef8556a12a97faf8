package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// ReportRenderOptions holds configuration for rendering a WACI report.
type ReportRenderOptions struct {
	SkipWarnings    bool // Do not list the individual warnings.
	SkipAssumptions bool // Do not render the assumptions footer.
}

// RenderReport renders the Report struct to a markdown string.
func RenderReport(r *Report, opts ReportRenderOptions) string {
	// Phase 1: Declare template dependencies.
	partials := map[string]string{
		"report_title":     "report_title.md",
		"report_breakdown": "report_breakdown.md",
		"report_coverage":  "report_coverage.md",
	}

	// An empty file name results in an empty template.
	partials["report_warnings"] = ""
	if !opts.SkipWarnings {
		partials["report_warnings"] = "report_warnings.md"
	}
	partials["report_assumptions"] = ""
	if !opts.SkipAssumptions {
		partials["report_assumptions"] = "report_assumptions.md"
	}

	// Phase 2: Execute rendering with the generic utility.
	return renderTemplate("report", "report.md", partials, r)
}

// RenderCheck renders the data coverage and every warning of a report.
func RenderCheck(r *Report) string {
	return renderTemplate("check", "check.md", map[string]string{
		"report_coverage": "report_coverage.md",
		"report_warnings": "report_warnings.md",
	}, r)
}

// RenderHoldings renders the per-holding table of one branch.
func RenderHoldings(h *Holdings) string {
	return renderTemplate("holdings", "holdings.md", nil, h)
}

// RenderWeights renders the revenue weight comparison of the benchmark.
func RenderWeights(w *Weights) string {
	return renderTemplate("weights", "weights.md", nil, w)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
