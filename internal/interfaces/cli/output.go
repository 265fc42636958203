package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
)

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", msg)
}

// printReport writes r in the selected output format.
func printReport(cmd *cobra.Command, format string, r analysis.Result) error {
	if format == OutputJSON {
		return printJSON(cmd, r)
	}
	return writeReportTable(cmd.OutOrStdout(), r)
}

func writeReportTable(w io.Writer, r analysis.Result) error {
	var buf strings.Builder
	fmt.Fprintf(&buf, "\n=== Infringement Analysis %s ===\n\n", r.AnalysisID)
	fmt.Fprintf(&buf, "Patent:  %s\n", r.PatentID)
	fmt.Fprintf(&buf, "Company: %s\n", r.CompanyName)
	fmt.Fprintf(&buf, "Date:    %s\n\n", r.AnalysisDate)

	if len(r.TopInfringingProducts) == 0 {
		buf.WriteString("No potentially infringing products were identified.\n")
	} else {
		table := tablewriter.NewWriter(&buf)
		table.Header([]string{"Rank", "Product", "Score", "Likelihood", "Claims", "Features"})
		for i, p := range r.TopInfringingProducts {
			table.Append([]string{
				fmt.Sprintf("%d", i+1),
				truncateString(p.ProductName, 40),
				fmt.Sprintf("%.0f", p.MatchScore),
				colorizeLikelihood(p.InfringementLikelihood),
				strings.Join(p.RelevantClaims, ", "),
				truncateString(strings.Join(p.SpecificFeatures, "; "), 60),
			})
		}
		table.Render()

		for i, p := range r.TopInfringingProducts {
			fmt.Fprintf(&buf, "\n%d. %s\n   %s\n", i+1, p.ProductName, p.Explanation)
		}
	}

	fmt.Fprintf(&buf, "\nOverall risk: %s\n", r.OverallRiskAssessment)

	_, err := io.WriteString(w, buf.String())
	return err
}

func writeReportList(w io.Writer, reports []analysis.Result) error {
	var buf strings.Builder
	buf.WriteString("\n=== Saved Reports ===\n\n")

	table := tablewriter.NewWriter(&buf)
	table.Header([]string{"ID", "Patent", "Company", "Date", "Products", "Highest"})
	for _, r := range reports {
		table.Append([]string{
			r.AnalysisID,
			r.PatentID,
			truncateString(r.CompanyName, 30),
			r.AnalysisDate,
			fmt.Sprintf("%d", len(r.TopInfringingProducts)),
			colorizeLikelihood(r.HighestLikelihood()),
		})
	}
	table.Render()

	fmt.Fprintf(&buf, "\nTotal reports: %d\n", len(reports))
	_, err := io.WriteString(w, buf.String())
	return err
}

func colorizeLikelihood(level string) string {
	switch strings.ToUpper(level) {
	case "HIGH":
		return color.RedString(analysis.LikelihoodHigh)
	case "MEDIUM":
		return color.YellowString(analysis.LikelihoodMedium)
	case "LOW":
		return color.GreenString(analysis.LikelihoodLow)
	case "":
		return "-"
	default:
		return level
	}
}

func truncateString(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}

//Personal.AI order the ending
