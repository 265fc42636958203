package reporting

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

func report(id, risk string) analysis.Result {
	return analysis.Result{
		AnalysisID:            id,
		PatentID:              "US-RE49889-E1",
		CompanyName:           "Walmart Inc.",
		AnalysisDate:          "2026-10-14",
		TopInfringingProducts: []analysis.ProductInfringement{},
		OverallRiskAssessment: risk,
	}
}

func TestStore_RecordThenGet(t *testing.T) {
	s := NewStore()
	s.Record(report("analysis-1", "High"))

	got, err := s.Get("analysis-1")
	require.NoError(t, err)
	assert.Equal(t, "High", got.OverallRiskAssessment)
	assert.Equal(t, 1, s.Len())
}

func TestStore_GetMissing(t *testing.T) {
	_, err := NewStore().Get("nope")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeReportNotFound, errors.GetCode(err))
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Report not found")
}

func TestStore_OverwriteKeepsPosition(t *testing.T) {
	s := NewStore()
	s.Record(report("a", "first"))
	s.Record(report("b", "second"))
	s.Record(report("a", "replaced"))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].AnalysisID)
	assert.Equal(t, "replaced", list[0].OverallRiskAssessment)
	assert.Equal(t, "b", list[1].AnalysisID)
	assert.Equal(t, 2, s.Len())
}

func TestStore_RecordIsIdempotent(t *testing.T) {
	s := NewStore()
	r := report("analysis-7", "Low")
	s.Record(r)
	s.Record(r)

	assert.Equal(t, []analysis.Result{r}, s.List())
}

func TestStore_ListEmptyIsNotNil(t *testing.T) {
	list := NewStore().List()
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStore_ListIsACopy(t *testing.T) {
	s := NewStore()
	s.Record(report("a", "x"))
	list := s.List()
	list[0].OverallRiskAssessment = "mutated"

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "x", got.OverallRiskAssessment)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Record(report(fmt.Sprintf("analysis-%d", i%5), "r"))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.List()
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, s.Len())
}

//Personal.AI order the ending
