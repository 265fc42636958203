package infringement

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// Analysis outcome labels passed to a MetricsRecorder.
const (
	OutcomeSuccess         = "success"
	OutcomeNotFound        = "not_found"
	OutcomeEmptyResponse   = "empty_response"
	OutcomeMalformed       = "malformed_response"
	OutcomeCompletionError = "completion_error"
)

// MetricsRecorder receives one observation per Analyze call.
type MetricsRecorder interface {
	ObserveAnalysis(outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAnalysis(string, time.Duration) {}

// Analyzer runs the full pipeline for one (patent, company) pair.  It is safe
// for concurrent use; each call opens its own completion stream.
type Analyzer struct {
	resolver  *Resolver
	completer Completer
	clock     func() time.Time
	timeout   time.Duration
	logger    logging.Logger
	metrics   MetricsRecorder
	counter   atomic.Uint64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the clock used for analysis_date.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.clock = now }
}

// WithTimeout bounds each completion call.  Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// NewAnalyzer wires the pipeline.
func NewAnalyzer(resolver *Resolver, completer Completer, opts ...Option) *Analyzer {
	a := &Analyzer{
		resolver:  resolver,
		completer: completer,
		clock:     time.Now,
		logger:    logging.NewNopLogger(),
		metrics:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze resolves the pair, asks the model for an assessment and returns the
// stamped report.  The report is not recorded in any store.
func (a *Analyzer) Analyze(ctx context.Context, patentID, companyName string) (analysis.Result, error) {
	start := time.Now()
	result, err := a.analyze(ctx, patentID, companyName)
	a.metrics.ObserveAnalysis(outcomeOf(err), time.Since(start))
	return result, err
}

func (a *Analyzer) analyze(ctx context.Context, patentID, companyName string) (analysis.Result, error) {
	p, c, err := a.resolver.Resolve(patentID, companyName)
	if err != nil {
		return analysis.Result{}, err
	}

	logger := logging.FromContext(ctx, a.logger)
	prompt := BuildPrompt(p, c.Products)

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := a.completer.Complete(callCtx, Request{
		SystemPrompt: prompt.System,
		UserPrompt:   prompt.User,
		Schema:       analysis.JSONSchema(),
	})
	if err != nil {
		logger.Error("completion failed",
			logging.String("patent_id", p.PublicationNumber),
			logging.String("company_name", c.Name),
			logging.Err(err))
		return analysis.Result{}, err
	}

	result, err := Parse(text)
	if err != nil {
		logger.Warn("unusable completion",
			logging.String("patent_id", p.PublicationNumber),
			logging.Int("response_bytes", len(text)),
			logging.Err(err))
		return analysis.Result{}, err
	}

	result.AnalysisDate = a.clock().Format(time.DateOnly)
	result.CompanyName = c.Name
	result.PatentID = p.PublicationNumber
	result.AnalysisID = fmt.Sprintf("analysis-%d", a.counter.Add(1))

	logger.Info("analysis completed",
		logging.String("analysis_id", result.AnalysisID),
		logging.String("patent_id", result.PatentID),
		logging.String("company_name", result.CompanyName),
		logging.Int("top_products", len(result.TopInfringingProducts)),
		logging.Duration("completion_time", time.Since(started)))
	return result, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.IsNotFound(err):
		return OutcomeNotFound
	case errors.IsCode(err, errors.ErrCodeAIEmptyResponse):
		return OutcomeEmptyResponse
	case errors.IsCode(err, errors.ErrCodeAIMalformedResponse):
		return OutcomeMalformed
	default:
		return OutcomeCompletionError
	}
}

//Personal.AI order the ending
