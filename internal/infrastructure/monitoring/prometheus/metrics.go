package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/turtacn/InfringeCheck/internal/application/infringement"
)

// AppMetrics holds the service metrics.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec

	AnalysisTotal      CounterVec
	AnalysisDuration   HistogramVec
	LLMRequestDuration HistogramVec

	ReportsStored GaugeVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	DefaultLLMDurationBuckets  = []float64{.5, 1, 2, 5, 10, 20, 30, 60, 120}
)

var _ infringement.MetricsRecorder = (*AppMetrics)(nil)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path"),
		AnalysisTotal:       collector.RegisterCounter("analysis_total", "Infringement analyses by outcome", "status"),
		AnalysisDuration:    collector.RegisterHistogram("analysis_duration_seconds", "Infringement analysis duration", DefaultLLMDurationBuckets, "status"),
		LLMRequestDuration:  collector.RegisterHistogram("llm_request_duration_seconds", "Completion stream duration", DefaultLLMDurationBuckets, "provider"),
		ReportsStored:       collector.RegisterGauge("reports_stored", "Reports held in the report store"),
	}
}

// RecordHTTPRequest counts one served request.  path is the route template,
// not the raw URL.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveAnalysis implements infringement.MetricsRecorder.
func (m *AppMetrics) ObserveAnalysis(outcome string, elapsed time.Duration) {
	m.AnalysisTotal.WithLabelValues(outcome).Inc()
	m.AnalysisDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// SetReportsStored publishes the current report store size.
func (m *AppMetrics) SetReportsStored(n int) {
	m.ReportsStored.WithLabelValues().Set(float64(n))
}

// InstrumentCompleter times every completion made through next.
func (m *AppMetrics) InstrumentCompleter(provider string, next infringement.Completer) infringement.Completer {
	hist := m.LLMRequestDuration.WithLabelValues(provider)
	return infringement.CompleterFunc(func(ctx context.Context, req infringement.Request) (string, error) {
		timer := NewTimer(hist)
		defer timer.ObserveDuration()
		return next.Complete(ctx, req)
	})
}

//Personal.AI order the ending
