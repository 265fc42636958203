// Package analysis defines the infringement report and the structural checks
// applied to reports that arrive as untrusted JSON, either from the language
// model or from API callers.
package analysis

// MaxTopProducts bounds TopInfringingProducts on reports produced by the
// pipeline.
const MaxTopProducts = 2

// Likelihood labels the model is asked to use.  They are not enforced when
// decoding.
const (
	LikelihoodHigh   = "High"
	LikelihoodMedium = "Medium"
	LikelihoodLow    = "Low"
)

// ProductInfringement is the assessment of one product against the patent.
type ProductInfringement struct {
	ProductName            string   `json:"product_name" jsonschema_description:"Name of the product exactly as listed"`
	MatchScore             float64  `json:"match_score" jsonschema_description:"Overall match score from 0 to 100"`
	InfringementLikelihood string   `json:"infringement_likelihood" jsonschema:"enum=High,enum=Medium,enum=Low"`
	RelevantClaims         []string `json:"relevant_claims" jsonschema_description:"Labels of the potentially infringed claims"`
	Explanation            string   `json:"explanation"`
	SpecificFeatures       []string `json:"specific_features"`
}

// Result is an infringement report.  AnalysisID, PatentID, CompanyName and
// AnalysisDate are stamped by the pipeline or supplied by the caller on save.
type Result struct {
	AnalysisID            string                `json:"analysis_id"`
	PatentID              string                `json:"patent_id"`
	CompanyName           string                `json:"company_name"`
	AnalysisDate          string                `json:"analysis_date"`
	TopInfringingProducts []ProductInfringement `json:"top_infringing_products"`
	OverallRiskAssessment string                `json:"overall_risk_assessment"`
}

// LimitTopProducts keeps at most n leading entries of TopInfringingProducts.
func (r *Result) LimitTopProducts(n int) {
	if n >= 0 && len(r.TopInfringingProducts) > n {
		r.TopInfringingProducts = r.TopInfringingProducts[:n]
	}
}

// HighestLikelihood returns the strongest likelihood label among the top
// products, or "" when there are none.  Unrecognised labels rank lowest.
func (r Result) HighestLikelihood() string {
	best, bestRank := "", -1
	for _, p := range r.TopInfringingProducts {
		rank := likelihoodRank(p.InfringementLikelihood)
		if rank > bestRank {
			best, bestRank = p.InfringementLikelihood, rank
		}
	}
	return best
}

func likelihoodRank(label string) int {
	switch label {
	case LikelihoodHigh:
		return 3
	case LikelihoodMedium:
		return 2
	case LikelihoodLow:
		return 1
	default:
		return 0
	}
}

//Personal.AI order the ending
