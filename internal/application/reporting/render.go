package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// RenderMarkdown lays out a report as a GitHub-flavoured Markdown document:
// a header block, one table row per product and the overall assessment.
func RenderMarkdown(r analysis.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Infringement Analysis %s\n\n", inline(r.AnalysisID))
	fmt.Fprintf(&b, "- **Patent:** %s\n", inline(r.PatentID))
	fmt.Fprintf(&b, "- **Company:** %s\n", inline(r.CompanyName))
	fmt.Fprintf(&b, "- **Date:** %s\n", inline(r.AnalysisDate))
	if top := r.HighestLikelihood(); top != "" {
		fmt.Fprintf(&b, "- **Highest likelihood:** %s\n", inline(top))
	}
	b.WriteString("\n## Top Infringing Products\n\n")

	if len(r.TopInfringingProducts) == 0 {
		b.WriteString("No potentially infringing products were identified.\n")
	} else {
		b.WriteString("| Product | Score | Likelihood | Relevant Claims | Specific Features | Explanation |\n")
		b.WriteString("|---|---:|---|---|---|---|\n")
		for _, p := range r.TopInfringingProducts {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				cell(p.ProductName),
				strconv.FormatFloat(p.MatchScore, 'f', -1, 64),
				cell(p.InfringementLikelihood),
				cell(strings.Join(p.RelevantClaims, ", ")),
				cell(strings.Join(p.SpecificFeatures, "; ")),
				cell(p.Explanation),
			)
		}
	}

	b.WriteString("\n## Overall Risk Assessment\n\n")
	b.WriteString(strings.TrimSpace(r.OverallRiskAssessment))
	b.WriteString("\n")
	return b.String()
}

// RenderHTML renders the Markdown layout to a standalone HTML page.
func RenderHTML(r analysis.Result) ([]byte, error) {
	var content bytes.Buffer
	if err := markdown.Convert([]byte(RenderMarkdown(r)), &content); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "failed to render report").WithDetail("id=" + r.AnalysisID)
	}

	var page bytes.Buffer
	page.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><title>")
	page.WriteString(html.EscapeString("Infringement Analysis " + r.AnalysisID))
	page.WriteString("</title><style>")
	page.WriteString("body{font-family:system-ui,sans-serif;margin:2rem;max-width:72rem;color:#1f2937} ")
	page.WriteString("table{width:100%;border-collapse:collapse;font-size:.9rem} ")
	page.WriteString("th,td{border:1px solid #d1d5db;padding:.4rem .5rem;text-align:left;vertical-align:top} ")
	page.WriteString("thead th{background:#f3f4f6}")
	page.WriteString("</style></head><body>")
	page.Write(content.Bytes())
	page.WriteString("</body></html>")
	return page.Bytes(), nil
}

func cell(s string) string {
	return strings.TrimSpace(cellEscaper.Replace(s))
}

func inline(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

//Personal.AI order the ending
