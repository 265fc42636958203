package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeCheck/internal/application/reporting"
	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// ReportStore holds saved reports.
type ReportStore interface {
	Record(r analysis.Result)
	Get(id string) (analysis.Result, error)
	List() []analysis.Result
	Len() int
}

// ReportHandler serves the saved-report endpoints.
type ReportHandler struct {
	store   ReportStore
	onSave  func(stored int)
	logger  logging.Logger
	maxBody int64
}

// ReportOption configures a ReportHandler.
type ReportOption func(*ReportHandler)

// OnSave is called with the store size after every successful save.
func OnSave(fn func(stored int)) ReportOption {
	return func(h *ReportHandler) { h.onSave = fn }
}

// DefaultMaxReportBytes bounds the save-report request body.
const DefaultMaxReportBytes = 1 << 20

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore, logger logging.Logger, opts ...ReportOption) *ReportHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	h := &ReportHandler{
		store:   store,
		onSave:  func(int) {},
		logger:  logger,
		maxBody: DefaultMaxReportBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SaveReportRequest wraps the report being saved.  The report stays raw so
// it can be checked structurally before decoding.
type SaveReportRequest struct {
	Report json.RawMessage `json:"report"`
}

// SaveReportResponse acknowledges a save.
type SaveReportResponse struct {
	Message string          `json:"message"`
	Report  analysis.Result `json:"report"`
}

// Get handles GET /api/v1/reports/:id.
func (h *ReportHandler) Get(c *gin.Context) {
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// List handles GET /api/v1/reports.
func (h *ReportHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

// Save handles POST /api/v1/save-report.
func (h *ReportHandler) Save(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	var req SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAppError(c, h.logger, errors.NewValidationError("Invalid request body").WithCause(err))
		return
	}
	raw := bytes.TrimSpace(req.Report)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		writeAppError(c, h.logger, errors.NewValidationError("Report is required"))
		return
	}

	report, err := analysis.Decode(raw, analysis.RequireAll)
	if err != nil {
		writeAppError(c, h.logger, errors.New(errors.ErrCodeReportInvalid, "Validation Failed: invalid report").
			WithDetail(err.Error()).WithCause(err))
		return
	}

	h.store.Record(report)
	h.onSave(h.store.Len())
	logging.FromContext(c.Request.Context(), h.logger).Info("report saved", logging.String("analysis_id", report.AnalysisID))

	c.JSON(http.StatusOK, SaveReportResponse{Message: "Report saved successfully", Report: report})
}

// View handles GET /api/v1/reports/:id/view with an HTML rendering.
func (h *ReportHandler) View(c *gin.Context) {
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	page, err := reporting.RenderHTML(r)
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

//Personal.AI order the ending
