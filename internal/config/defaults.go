package config

import (
	"os"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

// Completion providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Reference data sources.
const (
	SourceFile  = "file"
	SourceMinIO = "minio"
)

const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 180 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultLLMProvider    = ProviderOpenAI
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-sonnet-4-5"
	DefaultTemperature    = float32(0.2)
	DefaultMaxTokens      = 4096
	DefaultLLMTimeout     = 120 * time.Second

	DefaultRefDataSource = SourceFile
	DefaultRefDataDir    = "data"
	DefaultPatentsFile   = "patents.json"
	DefaultCompaniesFile = "company_products.json"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "infringecheck"
)

// Provider-native API key variables consulted when llm.api_key is unset.
const (
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Explicitly set fields are left unchanged.  It must run after unmarshalling
// and before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		cfg.Server.CORSAllowedOrigins = []string{"*"}
	}

	// ── LLM ───────────────────────────────────────────────────────────────────
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultLLMProvider
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case ProviderAnthropic:
			cfg.LLM.Model = DefaultAnthropicModel
		default:
			cfg.LLM.Model = DefaultOpenAIModel
		}
	}
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case ProviderAnthropic:
			cfg.LLM.APIKey = os.Getenv(EnvAnthropicAPIKey)
		default:
			cfg.LLM.APIKey = os.Getenv(EnvOpenAIAPIKey)
		}
	}
	// Temperature 0 is a legitimate setting but indistinguishable from unset;
	// the pipeline always runs at 0.2 unless configured otherwise.
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = DefaultTemperature
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = DefaultMaxTokens
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = DefaultLLMTimeout
	}

	// ── Reference data ────────────────────────────────────────────────────────
	if cfg.RefData.Source == "" {
		cfg.RefData.Source = DefaultRefDataSource
	}
	if cfg.RefData.Dir == "" {
		cfg.RefData.Dir = DefaultRefDataDir
	}
	if cfg.RefData.PatentsFile == "" {
		cfg.RefData.PatentsFile = DefaultPatentsFile
	}
	if cfg.RefData.CompaniesFile == "" {
		cfg.RefData.CompaniesFile = DefaultCompaniesFile
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

//Personal.AI order the ending
