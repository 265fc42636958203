package infringement

import (
	"strings"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Parse decodes the accumulated completion text.  Empty text yields an
// AI_006 error; text that is not JSON or does not have the report layout
// yields AI_007.  Scores and likelihood labels are passed through unchanged
// and at most analysis.MaxTopProducts entries are kept.
func Parse(text string) (analysis.Result, error) {
	if strings.TrimSpace(text) == "" {
		return analysis.Result{}, errors.New(errors.ErrCodeAIEmptyResponse, "Analysis response is null")
	}

	result, err := analysis.Decode([]byte(text), analysis.RequireContent)
	if err != nil {
		return analysis.Result{}, errors.Wrap(err, errors.ErrCodeAIMalformedResponse, "Failed to parse analysis response")
	}

	result.LimitTopProducts(analysis.MaxTopProducts)
	return result, nil
}

//Personal.AI order the ending
