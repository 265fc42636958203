// Package app wires configuration, reference data, the completion backend,
// the report store and the HTTP layer into a runnable service.  Both
// cmd/apiserver and the CLI build their dependencies through it.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeCheck/internal/application/infringement"
	"github.com/turtacn/InfringeCheck/internal/application/reporting"
	"github.com/turtacn/InfringeCheck/internal/config"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/llm/anthropic"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/llm/openai"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/refdata"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/InfringeCheck/internal/interfaces/http"
	"github.com/turtacn/InfringeCheck/internal/interfaces/http/handlers"
	"github.com/turtacn/InfringeCheck/internal/interfaces/http/middleware"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// App holds the process-wide dependencies.
type App struct {
	Config   *config.Config
	Logger   logging.Logger
	Catalog  *refdata.Catalog
	Analyzer *infringement.Analyzer
	Reports  *reporting.Store

	// Metrics is nil when metrics.enabled is false.
	Metrics *prometheus.AppMetrics

	collector prometheus.MetricsCollector
	checkers  []handlers.HealthChecker
	version   string
}

type options struct {
	source    refdata.Source
	completer infringement.Completer
	version   string
}

// Option customises New.
type Option func(*options)

// WithSource replaces the reference data source built from cfg.RefData.
func WithSource(src refdata.Source) Option {
	return func(o *options) { o.source = src }
}

// WithCompleter replaces the completion backend built from cfg.LLM.
func WithCompleter(c infringement.Completer) Option {
	return func(o *options) { o.completer = c }
}

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// New loads the reference data and builds every service.  A failure to load
// the reference data is returned and must stop the process.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeValidation, "configuration is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	o := options{version: "dev"}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Reports: reporting.NewStore(),
		version: o.version,
	}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger.Named("metrics"))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create metrics collector")
		}
		a.collector = collector
		a.Metrics = prometheus.NewAppMetrics(collector)
	}

	src := o.source
	if src == nil {
		built, checkers, err := NewSource(cfg.RefData, logger.Named("refdata"))
		if err != nil {
			return nil, err
		}
		src = built
		a.checkers = checkers
	}

	catalog, err := refdata.NewLoader(src, cfg.RefData.PatentsFile, cfg.RefData.CompaniesFile, logger.Named("refdata")).
		LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	a.Catalog = catalog

	completer := o.completer
	if completer == nil {
		completer = NewCompleter(cfg.LLM, logger.Named("llm"))
	}
	if a.Metrics != nil {
		completer = a.Metrics.InstrumentCompleter(cfg.LLM.Provider, completer)
	}

	analyzerOpts := []infringement.Option{
		infringement.WithTimeout(cfg.LLM.Timeout),
		infringement.WithLogger(logger.Named("analyzer")),
	}
	if a.Metrics != nil {
		analyzerOpts = append(analyzerOpts, infringement.WithMetrics(a.Metrics))
	}
	a.Analyzer = infringement.NewAnalyzer(infringement.NewResolver(catalog), completer, analyzerOpts...)

	return a, nil
}

// NewSource builds the reference data source named by cfg.Source together
// with the readiness checks it contributes.
func NewSource(cfg config.RefDataConfig, logger logging.Logger) (refdata.Source, []handlers.HealthChecker, error) {
	switch cfg.Source {
	case config.SourceMinIO:
		src, err := minio.NewObjectSource(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			Prefix:    cfg.MinIO.Prefix,
			UseSSL:    cfg.MinIO.UseSSL,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return src, []handlers.HealthChecker{&minioHealthAdapter{src: src}}, nil
	case config.SourceFile, "":
		return refdata.NewFileSource(cfg.Dir), nil, nil
	default:
		return nil, nil, errors.New(errors.ErrCodeValidation, "unknown reference data source").
			WithDetail("source=" + cfg.Source)
	}
}

// NewCompleter builds the backend named by cfg.Provider.  A backend that
// cannot be constructed, for example because no API key is configured, is
// replaced by one that fails every request with the construction error so
// that the server still starts.
func NewCompleter(cfg config.LLMConfig, logger logging.Logger) infringement.Completer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	var (
		c   infringement.Completer
		err error
	)
	switch cfg.Provider {
	case config.ProviderAnthropic:
		c, err = anthropic.New(anthropic.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, logger)
	default:
		c, err = openai.New(openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, logger)
	}
	if err != nil {
		logger.Warn("completion backend unavailable",
			logging.String("provider", cfg.Provider),
			logging.Err(err))
		return unavailableCompleter(err)
	}
	return c
}

func unavailableCompleter(cause error) infringement.Completer {
	return infringement.CompleterFunc(func(context.Context, infringement.Request) (string, error) {
		return "", cause
	})
}

// Handler builds the gin engine serving the API.
func (a *App) Handler() *gin.Engine {
	gin.SetMode(a.Config.Server.Mode)

	reportOpts := []handlers.ReportOption{}
	if a.Metrics != nil {
		reportOpts = append(reportOpts, handlers.OnSave(a.Metrics.SetReportsStored))
	}

	httpLogger := a.Logger.Named("http")
	cfg := httpserver.RouterConfig{
		AnalysisHandler:    handlers.NewAnalysisHandler(a.Analyzer, httpLogger),
		ReportHandler:      handlers.NewReportHandler(a.Reports, httpLogger, reportOpts...),
		HealthHandler:      handlers.NewHealthHandler(a.version, a.Catalog, a.checkers...),
		CORSAllowedOrigins: a.Config.Server.CORSAllowedOrigins,
		Logging:            middleware.DefaultLoggingConfig(),
		Logger:             httpLogger,
	}
	if a.Metrics != nil {
		cfg.RequestRecorder = a.Metrics
		cfg.MetricsHandler = a.collector.Handler()
	}
	return httpserver.NewRouter(cfg)
}

// Serve runs the API server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv := httpserver.NewServer(a.Config.Server, a.Handler(), a.Logger.Named("http"))
	a.Logger.Info("starting InfringeCheck API server",
		logging.String("version", a.version),
		logging.String("addr", srv.Addr()),
		logging.String("provider", a.Config.LLM.Provider),
		logging.String("model", a.Config.LLM.Model))
	return srv.Run(ctx)
}

// WatchLogLevel applies log.level changes in configPath to the running
// logger.  It is a no-op when configPath is empty.
func (a *App) WatchLogLevel(configPath string) {
	if configPath == "" {
		return
	}
	config.Watch(configPath, func(cfg *config.Config) {
		if logging.SetLevel(a.Logger, cfg.Log.Level) {
			a.Logger.Info("log level updated", logging.String("level", cfg.Log.Level))
		}
	}, func(err error) {
		a.Logger.Warn("ignoring invalid configuration change", logging.Err(err))
	})
}

// NewLogger builds the service logger from cfg.
func NewLogger(cfg config.LogConfig) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:  cfg.Level,
		Format: cfg.Format,
	})
}

//Personal.AI order the ending
