package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullReport = `{
  "analysis_id": "analysis-1",
  "patent_id": "US-RE49889-E1",
  "company_name": "Walmart Inc.",
  "analysis_date": "2026-10-14",
  "top_infringing_products": [
    {
      "product_name": "Walmart Shopping App",
      "match_score": 85,
      "infringement_likelihood": "High",
      "relevant_claims": ["1", "2"],
      "explanation": "Implements the claimed list workflow.",
      "specific_features": ["Shopping list", "Ad integration"]
    }
  ],
  "overall_risk_assessment": "High risk",
  "extra": {"ignored": true}
}`

func TestDecode_FullReport(t *testing.T) {
	r, err := Decode([]byte(fullReport), RequireAll)
	require.NoError(t, err)

	want := Result{
		AnalysisID:   "analysis-1",
		PatentID:     "US-RE49889-E1",
		CompanyName:  "Walmart Inc.",
		AnalysisDate: "2026-10-14",
		TopInfringingProducts: []ProductInfringement{{
			ProductName:            "Walmart Shopping App",
			MatchScore:             85,
			InfringementLikelihood: "High",
			RelevantClaims:         []string{"1", "2"},
			Explanation:            "Implements the claimed list workflow.",
			SpecificFeatures:       []string{"Shopping list", "Ad integration"},
		}},
		OverallRiskAssessment: "High risk",
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	r, err := Decode([]byte(fullReport), RequireAll)
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	again, err := Decode(data, RequireAll)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(r, again))
}

func TestDecode_ContentModeAllowsMissingIdentity(t *testing.T) {
	r, err := Decode([]byte(`{"top_infringing_products": [], "overall_risk_assessment": "Low"}`), RequireContent)
	require.NoError(t, err)
	assert.NotNil(t, r.TopInfringingProducts)
	assert.Empty(t, r.TopInfringingProducts)
	assert.Equal(t, "Low", r.OverallRiskAssessment)

	_, err = Decode([]byte(`{"top_infringing_products": [], "overall_risk_assessment": "Low"}`), RequireAll)
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "$.analysis_id", se.Path)
}

func TestDecode_ScoresAreNotClamped(t *testing.T) {
	doc := `{"top_infringing_products": [{"product_name": "X", "match_score": 140.5, "infringement_likelihood": "Certain",
	  "relevant_claims": [], "explanation": "", "specific_features": []}], "overall_risk_assessment": ""}`

	r, err := Decode([]byte(doc), RequireContent)
	require.NoError(t, err)
	assert.Equal(t, 140.5, r.TopInfringingProducts[0].MatchScore)
	assert.Equal(t, "Certain", r.TopInfringingProducts[0].InfringementLikelihood)
}

func TestDecode_ShapeErrors(t *testing.T) {
	product := func(override string) string {
		base := `"product_name": "X", "match_score": 1, "infringement_likelihood": "Low", "relevant_claims": ["1"], "explanation": "e", "specific_features": []`
		if override != "" {
			base = override
		}
		return `{"top_infringing_products": [{` + base + `}], "overall_risk_assessment": "r"}`
	}

	cases := []struct {
		name string
		doc  string
		path string
	}{
		{"top-level array", `[1, 2]`, "$"},
		{"top-level string", `"hello"`, "$"},
		{"missing products", `{"overall_risk_assessment": "r"}`, "$.top_infringing_products"},
		{"products not array", `{"top_infringing_products": {}, "overall_risk_assessment": "r"}`, "$.top_infringing_products"},
		{"risk is null", `{"top_infringing_products": [], "overall_risk_assessment": null}`, "$.overall_risk_assessment"},
		{"identity wrong type", `{"analysis_id": 7, "top_infringing_products": [], "overall_risk_assessment": "r"}`, "$.analysis_id"},
		{"product not object", `{"top_infringing_products": ["X"], "overall_risk_assessment": "r"}`, "$.top_infringing_products[0]"},
		{"score as string", product(`"product_name": "X", "match_score": "85", "infringement_likelihood": "Low", "relevant_claims": [], "explanation": "e", "specific_features": []`), "$.top_infringing_products[0].match_score"},
		{"missing explanation", product(`"product_name": "X", "match_score": 1, "infringement_likelihood": "Low", "relevant_claims": [], "specific_features": []`), "$.top_infringing_products[0].explanation"},
		{"claim not string", product(`"product_name": "X", "match_score": 1, "infringement_likelihood": "Low", "relevant_claims": [1], "explanation": "e", "specific_features": []`), "$.top_infringing_products[0].relevant_claims[0]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc), RequireContent)
			var se *ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.path, se.Path)
		})
	}
}

func TestDecode_ShapeErrorProblem(t *testing.T) {
	_, err := Decode([]byte(`{"top_infringing_products": [], "overall_risk_assessment": 3.5}`), RequireContent)
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "$.overall_risk_assessment: expected string, got number", se.Error())

	_, err = Decode([]byte(`{"overall_risk_assessment": "r"}`), RequireAll)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "$.analysis_id: required field is missing", se.Error())
}

func TestDecode_SyntaxErrors(t *testing.T) {
	for _, doc := range []string{"", "not json", `{"top_infringing_products": [`} {
		_, err := Decode([]byte(doc), RequireContent)
		require.Error(t, err, doc)
		var se *ShapeError
		assert.False(t, errors.As(err, &se), doc)
	}
}

//Personal.AI order the ending
