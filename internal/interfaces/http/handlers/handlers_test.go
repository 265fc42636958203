package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/InfringeCheck/internal/application/reporting"
	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/internal/interfaces/http/middleware"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, patentID, companyName string) (analysis.Result, error) {
	args := m.Called(ctx, patentID, companyName)
	return args.Get(0).(analysis.Result), args.Error(1)
}

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string                  { return f.name }
func (f fakeChecker) Check(_ context.Context) error { return f.err }

type fixedCounts struct{ patents, companies int }

func (f fixedCounts) Counts() (int, int) { return f.patents, f.companies }

func validReport(id string) analysis.Result {
	return analysis.Result{
		AnalysisID:   id,
		PatentID:     "US-RE49889-E1",
		CompanyName:  "Walmart Inc.",
		AnalysisDate: "2026-10-14",
		TopInfringingProducts: []analysis.ProductInfringement{{
			ProductName:            "Walmart Shopping App",
			MatchScore:             85,
			InfringementLikelihood: analysis.LikelihoodHigh,
			RelevantClaims:         []string{"1"},
			Explanation:            "Matches claim 1",
			SpecificFeatures:       []string{"Shopping list"},
		}},
		OverallRiskAssessment: "High risk",
	}
}

type harness struct {
	engine   *gin.Engine
	analyzer *mockAnalyzer
	store    *reporting.Store
	logs     *observer.ObservedLogs
	saved    []int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewLoggerFromCore(core)

	h := &harness{analyzer: &mockAnalyzer{}, store: reporting.NewStore(), logs: logs}
	analysisH := NewAnalysisHandler(h.analyzer, logger)
	reportH := NewReportHandler(h.store, logger, OnSave(func(n int) { h.saved = append(h.saved, n) }))
	healthH := NewHealthHandler("test", fixedCounts{patents: 3, companies: 2})

	r := gin.New()
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	api := r.Group("/api/v1")
	api.POST("/analyze-infringement", analysisH.Analyze)
	api.GET("/reports", reportH.List)
	api.GET("/reports/:id", reportH.Get)
	api.GET("/reports/:id/view", reportH.View)
	api.POST("/save-report", reportH.Save)
	h.engine = r
	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAnalyze_Success(t *testing.T) {
	h := newHarness(t)
	want := validReport("analysis-1")
	h.analyzer.On("Analyze", mock.Anything, "US-RE49889-E1", "Walmart Inc.").Return(want, nil)

	w := h.do(http.MethodPost, "/api/v1/analyze-infringement", `{"patentId":"US-RE49889-E1","companyName":"Walmart Inc."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got analysis.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, want, got)
	assert.Zero(t, h.store.Len(), "analyze must not save")
	h.analyzer.AssertExpectations(t)
}

func TestAnalyze_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"both missing", `{}`, "Validation Failed: Patent ID is required, Company name is required"},
		{"patent missing", `{"companyName":"Walmart Inc."}`, "Validation Failed: Patent ID is required"},
		{"company empty", `{"patentId":"US-RE49889-E1","companyName":""}`, "Validation Failed: Company name is required"},
		{"wrong type", `{"patentId":42,"companyName":"x"}`, "Validation Failed: Invalid request body"},
		{"not json", `patentId=1`, "Validation Failed: Invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			w := h.do(http.MethodPost, "/api/v1/analyze-infringement", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "COMMON_010", resp.Code)
			assert.Equal(t, tc.want, resp.Message)
			h.analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"patent not found", errors.New(errors.CodePatentNotFound, "Patent not found"), http.StatusNotFound, "PAT_001", "Patent not found"},
		{"company not found", errors.New(errors.CodeCompanyNotFound, "Company not found"), http.StatusNotFound, "CMP_001", "Company not found"},
		{"empty response", errors.New(errors.ErrCodeAIEmptyResponse, "Analysis response is null"), http.StatusInternalServerError, "COMMON_001", "Internal server error"},
		{"malformed", errors.New(errors.ErrCodeAIMalformedResponse, "Failed to parse analysis response"), http.StatusInternalServerError, "COMMON_001", "Internal server error"},
		{"plain error", fmt.Errorf("socket closed"), http.StatusInternalServerError, "COMMON_001", "Internal server error"},
		{"model unavailable", errors.New(errors.ErrCodeAIModelNotAvailable, "API key is not configured"), http.StatusServiceUnavailable, "COMMON_008", "Service temporarily unavailable"},
		{"source unavailable", errors.New(errors.ErrCodeDataSourceUnavailable, "bucket unreachable"), http.StatusServiceUnavailable, "COMMON_008", "Service temporarily unavailable"},
		{"report invalid", errors.New(errors.ErrCodeReportInvalid, "Report is invalid"), http.StatusBadRequest, "RPT_002", "Report is invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.analyzer.On("Analyze", mock.Anything, "p", "c").Return(analysis.Result{}, tc.err)

			w := h.do(http.MethodPost, "/api/v1/analyze-infringement", `{"patentId":"p","companyName":"c"}`)
			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tc.wantCode, resp.Code)
			assert.Equal(t, tc.wantMsg, resp.Message)

			if tc.wantStatus >= http.StatusInternalServerError {
				entries := h.logs.FilterMessage("request failed").All()
				require.Len(t, entries, 1)
				assert.Contains(t, entries[0].ContextMap()["error"], tc.err.Error())
			}
		})
	}
}

func TestAnalyze_ServerErrorLogsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewLoggerFromCore(core)
	analyzer := &mockAnalyzer{}
	analyzer.On("Analyze", mock.Anything, "p", "c").
		Return(analysis.Result{}, errors.New(errors.ErrCodeAIModelNotAvailable, "API key is not configured"))

	r := gin.New()
	r.Use(middleware.RequestID(logger))
	r.POST("/analyze", NewAnalysisHandler(analyzer, logging.NewNopLogger()).Analyze)

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"patentId":"p","companyName":"c"}`))
	req.Header.Set(middleware.HeaderRequestID, "rid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "API key")

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rid-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "AI_001", entries[0].ContextMap()["code"])
	assert.EqualValues(t, http.StatusServiceUnavailable, entries[0].ContextMap()["status"])
}

func TestSaveReport_ThenGetAndList(t *testing.T) {
	h := newHarness(t)
	report := validReport("analysis-1")
	payload, err := json.Marshal(map[string]any{"report": report})
	require.NoError(t, err)

	w := h.do(http.MethodPost, "/api/v1/save-report", string(payload))
	require.Equal(t, http.StatusOK, w.Code)
	var saved SaveReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "Report saved successfully", saved.Message)
	assert.Equal(t, report, saved.Report)
	assert.Equal(t, []int{1}, h.saved)

	w = h.do(http.MethodGet, "/api/v1/reports/analysis-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got analysis.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, report, got)

	// saving again overwrites rather than duplicating
	h.do(http.MethodPost, "/api/v1/save-report", string(payload))
	w = h.do(http.MethodGet, "/api/v1/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []analysis.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestSaveReport_KeepsAllProducts(t *testing.T) {
	h := newHarness(t)
	report := validReport("analysis-3")
	p := report.TopInfringingProducts[0]
	report.TopInfringingProducts = []analysis.ProductInfringement{p, p, p}
	payload, _ := json.Marshal(map[string]any{"report": report})

	w := h.do(http.MethodPost, "/api/v1/save-report", string(payload))
	require.Equal(t, http.StatusOK, w.Code)
	got, err := h.store.Get("analysis-3")
	require.NoError(t, err)
	assert.Len(t, got.TopInfringingProducts, 3)
}

func TestSaveReport_RejectsBadShapes(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing report", `{}`, "COMMON_010"},
		{"null report", `{"report":null}`, "COMMON_010"},
		{"report not object", `{"report":"x"}`, "RPT_002"},
		{"missing analysis_id", `{"report":{"patent_id":"p","company_name":"c","analysis_date":"d","top_infringing_products":[],"overall_risk_assessment":"r"}}`, "RPT_002"},
		{"score as string", `{"report":{"analysis_id":"a","patent_id":"p","company_name":"c","analysis_date":"d","top_infringing_products":[{"product_name":"x","match_score":"high","infringement_likelihood":"High","relevant_claims":[],"explanation":"e","specific_features":[]}],"overall_risk_assessment":"r"}}`, "RPT_002"},
		{"body not json", `nope`, "COMMON_010"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			w := h.do(http.MethodPost, "/api/v1/save-report", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantCode, decodeError(t, w).Code)
			assert.Zero(t, h.store.Len())
		})
	}
}

func TestSaveReport_BodyTooLarge(t *testing.T) {
	h := newHarness(t)
	body := `{"report":{"overall_risk_assessment":"` + strings.Repeat("x", DefaultMaxReportBytes) + `"}}`
	w := h.do(http.MethodPost, "/api/v1/save-report", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReport_NotFound(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/v1/reports/analysis-404", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "RPT_001", resp.Code)
	assert.Equal(t, "Report not found", resp.Message)
}

func TestListReports_EmptyArray(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/v1/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestViewReport(t *testing.T) {
	h := newHarness(t)
	h.store.Record(validReport("analysis-1"))

	w := h.do(http.MethodGet, "/api/v1/reports/analysis-1/view", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("<td>Walmart Shopping App</td>")))

	w = h.do(http.MethodGet, "/api/v1/reports/missing/view", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth_LivenessAndReadiness(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	var live LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &live))
	assert.Equal(t, "alive", live.Status)
	assert.Equal(t, "test", live.Version)

	w = h.do(http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ready ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	assert.Equal(t, ReadinessResponse{Status: "ready", Patents: 3, Companies: 2}, ready)
}

func TestReadiness_NotLoaded(t *testing.T) {
	r := gin.New()
	r.GET("/readyz", NewHealthHandler("v", nil).Readiness)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReadiness_FailingChecker(t *testing.T) {
	r := gin.New()
	hh := NewHealthHandler("v", fixedCounts{1, 1},
		fakeChecker{name: "minio", err: fmt.Errorf("bucket missing")},
		fakeChecker{name: "other"})
	r.GET("/readyz", hh.Readiness)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var ready ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	assert.Equal(t, "not_ready", ready.Status)
	assert.Equal(t, "unhealthy", ready.Components["minio"].Status)
	assert.Equal(t, "bucket missing", ready.Components["minio"].Error)
	assert.Equal(t, "healthy", ready.Components["other"].Status)
}

//Personal.AI order the ending
