// Package config provides configuration loading, defaults, and validation for
// the InfringeCheck service.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all service settings.
const envPrefix = "INFRINGECHECK"

// newViper builds a pre-configured Viper instance: YAML file type,
// INFRINGECHECK_ env prefix, automatic env binding and a "." → "_" key
// replacer so that "llm.api_key" resolves to "INFRINGECHECK_LLM_API_KEY".
//
// Every key is registered with a default so that Unmarshal consults the
// environment even when no config file mentions the key.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	v.SetDefault("llm.provider", DefaultLLMProvider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", DefaultTemperature)
	v.SetDefault("llm.max_tokens", DefaultMaxTokens)
	v.SetDefault("llm.timeout", DefaultLLMTimeout)

	v.SetDefault("refdata.source", DefaultRefDataSource)
	v.SetDefault("refdata.dir", DefaultRefDataDir)
	v.SetDefault("refdata.patents_file", DefaultPatentsFile)
	v.SetDefault("refdata.companies_file", DefaultCompaniesFile)
	v.SetDefault("refdata.minio.endpoint", "")
	v.SetDefault("refdata.minio.access_key", "")
	v.SetDefault("refdata.minio.secret_key", "")
	v.SetDefault("refdata.minio.bucket", "")
	v.SetDefault("refdata.minio.prefix", "")
	v.SetDefault("refdata.minio.use_ssl", false)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	return v
}

// Load reads the YAML file at configPath, merges INFRINGECHECK_* environment
// overrides, applies defaults for unset fields and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from INFRINGECHECK_* environment
// variables, with no config file required.
//
//	INFRINGECHECK_<SECTION>_<FIELD>   e.g.  INFRINGECHECK_LLM_MODEL
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// LoadOrEnv calls Load when configPath is non-empty and LoadFromEnv otherwise.
func LoadOrEnv(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return Load(configPath)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the re-parsed Config
// whenever the file changes on disk.  Only the log level is applied at
// runtime by the servers; other changes require a restart.
//
// Watch is non-blocking.  Changes that fail to parse or validate are reported
// to onError (when non-nil) and onChange is not called.
func Watch(configPath string, onChange func(*Config), onError func(error)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Callers are expected to have called Load first.
	_ = v.ReadInConfig()

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

//Personal.AI order the ending
