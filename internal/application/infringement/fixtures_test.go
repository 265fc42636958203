package infringement

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/InfringeCheck/internal/domain/company"
	"github.com/turtacn/InfringeCheck/internal/domain/patent"
)

// mockCompleter is a testify mock of Completer.
type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, req Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type staticCatalog struct {
	patents   []patent.Patent
	companies []company.Company
}

func (c staticCatalog) Patents() []patent.Patent     { return c.patents }
func (c staticCatalog) Companies() []company.Company { return c.companies }

type recordedOutcome struct {
	outcome string
	elapsed time.Duration
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []recordedOutcome
}

func (r *fakeRecorder) ObserveAnalysis(outcome string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, recordedOutcome{outcome, elapsed})
}

func (r *fakeRecorder) labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		out = append(out, o.outcome)
	}
	return out
}

var walmartPatent = patent.Patent{
	ID:                1,
	PublicationNumber: "US-RE49889-E1",
	Title:             "Systems and methods for generating a shopping list",
	Abstract:          "A system that generates shopping lists from advertisements.",
	Claims: []patent.Claim{
		{Num: "1", Text: "A method comprising receiving an advertisement."},
		{Num: "2", Text: "The method of claim 1, further comprising a list."},
	},
}

var walmart = company.Company{
	Name: "Walmart Inc.",
	Products: []company.Product{
		{Name: "Walmart Shopping App", Description: "Mobile application for shopping.", Features: []string{"lists"}},
		{Name: "Walmart+ Assist", Description: "Voice ordering.", Features: []string{"voice"}},
		{Name: "Walmart Pharmacy", Description: "Prescription refills.", Features: nil},
	},
}

func testCatalog() staticCatalog {
	return staticCatalog{
		patents: []patent.Patent{
			{PublicationNumber: "US-11205304-B2", Title: "Other"},
			walmartPatent,
		},
		companies: []company.Company{
			{Name: "Target Corporation"},
			walmart,
		},
	}
}

const modelReply = `{
  "top_infringing_products": [
    {"product_name": "Walmart Shopping App", "match_score": 85, "infringement_likelihood": "High",
     "relevant_claims": ["1", "2"], "explanation": "Generates lists from ads.", "specific_features": ["lists"]},
    {"product_name": "Walmart+ Assist", "match_score": 40, "infringement_likelihood": "Low",
     "relevant_claims": ["1"], "explanation": "Partial overlap.", "specific_features": ["voice"]},
    {"product_name": "Walmart Pharmacy", "match_score": 5, "infringement_likelihood": "Low",
     "relevant_claims": [], "explanation": "Unrelated.", "specific_features": []}
  ],
  "overall_risk_assessment": "High risk for the shopping app."
}`

//Personal.AI order the ending
