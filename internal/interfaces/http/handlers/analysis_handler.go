package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Analyzer runs the infringement pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, patentID, companyName string) (analysis.Result, error)
}

// AnalysisHandler serves POST /api/v1/analyze-infringement.
type AnalysisHandler struct {
	analyzer Analyzer
	logger   logging.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer Analyzer, logger logging.Logger) *AnalysisHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalysisHandler{analyzer: analyzer, logger: logger}
}

// AnalyzeRequest is the request body for an infringement analysis.
type AnalyzeRequest struct {
	PatentID    string `json:"patentId"`
	CompanyName string `json:"companyName"`
}

// Validate reports every missing field at once.
func (r AnalyzeRequest) Validate() error {
	var problems []string
	if r.PatentID == "" {
		problems = append(problems, "Patent ID is required")
	}
	if r.CompanyName == "" {
		problems = append(problems, "Company name is required")
	}
	if len(problems) > 0 {
		return errors.NewValidationError(problems...)
	}
	return nil
}

// Analyze handles POST /api/v1/analyze-infringement.  The report is returned
// but not saved.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAppError(c, h.logger, errors.NewValidationError("Invalid request body").WithCause(err))
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(c, h.logger, err)
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.PatentID, req.CompanyName)
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

//Personal.AI order the ending
