// Package renderer formats calculated reports and comparisons as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/nogvini/btcfolio"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"duration": btcfolio.FormatDuration,
	"row":      func(cells []string) string { return "| " + strings.Join(cells, " | ") + " |" },
	"sep": func(n int) string {
		// first column left aligned, numbers right aligned.
		cells := []string{":---"}
		for i := 1; i < n; i++ {
			cells = append(cells, "---:")
		}
		return "| " + strings.Join(cells, " | ") + " |"
	},
}

// ReportRenderOptions holds configuration for rendering a report.
type ReportRenderOptions struct {
	SkipMonthly   bool // Do not render the monthly breakdown.
	SkipSubtotals bool // Do not add yearly subtotals to the monthly breakdown.
}

// RenderReport renders a calculated report to markdown.
func RenderReport(d *btcfolio.CalculatedReportData, opts ReportRenderOptions) string {
	partials := map[string]string{
		"report_title":   "report_title.md",
		"report_summary": "report_summary.md",
		"report_monthly": "report_monthly.md",
	}
	if opts.SkipMonthly {
		partials["report_monthly"] = ""
	}
	return renderTemplate("report", "report.md", partials, NewReport(d, !opts.SkipSubtotals))
}

// RenderMonthly renders only the monthly breakdown of a calculated report.
func RenderMonthly(d *btcfolio.CalculatedReportData, subtotals bool) string {
	return renderTemplate("monthly", "monthly.md", map[string]string{
		"report_monthly": "report_monthly.md",
	}, NewReport(d, subtotals))
}

// RenderComparison renders a comparison of reports to markdown.
func RenderComparison(c *btcfolio.ComparisonDataResult) string {
	partials := map[string]string{
		"comparison_stats":  "comparison_stats.md",
		"comparison_series": "comparison_series.md",
	}
	return renderTemplate("comparison", "comparison.md", partials, NewComparison(c))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
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
