package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
)

func sampleReport() analysis.Result {
	return analysis.Result{
		AnalysisID:   "analysis-1",
		PatentID:     "US-RE49889-E1",
		CompanyName:  "Walmart Inc.",
		AnalysisDate: "2026-10-14",
		TopInfringingProducts: []analysis.ProductInfringement{
			{
				ProductName:            "Walmart Shopping App",
				MatchScore:             85,
				InfringementLikelihood: analysis.LikelihoodHigh,
				RelevantClaims:         []string{"1", "2", "3"},
				Explanation:            "Direct advertisement | shopping list integration",
				SpecificFeatures:       []string{"Shopping list", "Ads"},
			},
			{
				ProductName:            "Walmart+",
				MatchScore:             62.5,
				InfringementLikelihood: analysis.LikelihoodMedium,
				RelevantClaims:         []string{"1"},
				Explanation:            "Partial overlap\nwith claim 1",
				SpecificFeatures:       []string{"Membership"},
			},
		},
		OverallRiskAssessment: "High risk of infringement.",
	}
}

func TestRenderMarkdown_Table(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	assert.Contains(t, md, "# Infringement Analysis analysis-1")
	assert.Contains(t, md, "- **Patent:** US-RE49889-E1")
	assert.Contains(t, md, "- **Highest likelihood:** High")
	assert.Contains(t, md, "| Product | Score | Likelihood | Relevant Claims | Specific Features | Explanation |")
	assert.Contains(t, md, `| Walmart Shopping App | 85 | High | 1, 2, 3 | Shopping list; Ads | Direct advertisement \| shopping list integration |`)
	assert.Contains(t, md, "| Walmart+ | 62.5 | Medium | 1 | Membership | Partial overlap with claim 1 |")
	assert.Contains(t, md, "## Overall Risk Assessment\n\nHigh risk of infringement.\n")
}

func TestRenderMarkdown_NoProducts(t *testing.T) {
	r := sampleReport()
	r.TopInfringingProducts = []analysis.ProductInfringement{}
	md := RenderMarkdown(r)

	assert.Contains(t, md, "No potentially infringing products were identified.")
	assert.NotContains(t, md, "| Product |")
	assert.NotContains(t, md, "Highest likelihood")
}

func TestRenderHTML_ConvertsTable(t *testing.T) {
	page, err := RenderHTML(sampleReport())
	require.NoError(t, err)

	out := string(page)
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>Infringement Analysis analysis-1</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Walmart Shopping App</td>")
	assert.Contains(t, out, "Direct advertisement | shopping list integration")
	assert.Contains(t, out, "<strong>Company:</strong> Walmart Inc.")
}

func TestRenderHTML_EscapesUntrustedText(t *testing.T) {
	r := sampleReport()
	r.AnalysisID = "<id>"
	r.OverallRiskAssessment = "Risk: <script>alert(1)</script> & more"

	page, err := RenderHTML(r)
	require.NoError(t, err)

	out := string(page)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<title>Infringement Analysis &lt;id&gt;</title>")
	assert.Contains(t, out, "&amp; more")
}

//Personal.AI order the ending
