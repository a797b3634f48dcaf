package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dogtalk/internal/models"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*models.Config, error) {
	// Start with default configuration
	config := models.NewDefaultConfig()

	// Load from file if provided and exists
	if configPath != "" {
		if err := loadFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Override with environment variables
	loadFromEnvironment(config)

	// Validate the final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(config *models.Config, filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

func envInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(name string, dst *float64) {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(name string, dst *bool) {
	if v := os.Getenv(name); v != "" {
		*dst = strings.ToLower(v) == "true"
	}
}

func envDuration(name string, dst *time.Duration) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func envString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// loadFromEnvironment loads configuration from environment variables
func loadFromEnvironment(config *models.Config) {
	// Server configuration
	envInt("DOGTALK_PORT", &config.Server.Port)
	envString("DOGTALK_HOST", &config.Server.Host)
	envDuration("DOGTALK_READ_TIMEOUT", &config.Server.ReadTimeout)
	envDuration("DOGTALK_WRITE_TIMEOUT", &config.Server.WriteTimeout)
	envDuration("DOGTALK_IDLE_TIMEOUT", &config.Server.IdleTimeout)
	envBool("DOGTALK_TLS_ENABLED", &config.Server.TLSEnabled)
	envString("DOGTALK_TLS_CERT_FILE", &config.Server.TLSCertFile)
	envString("DOGTALK_TLS_KEY_FILE", &config.Server.TLSKeyFile)

	// Rate limit configuration
	envBool("DOGTALK_RATE_LIMIT_ENABLED", &config.RateLimit.Enabled)
	envInt("DOGTALK_RATE_LIMIT_SHORT_WINDOW_SECONDS", &config.RateLimit.ShortWindowSeconds)
	envInt("DOGTALK_RATE_LIMIT_SHORT_LIMIT", &config.RateLimit.ShortLimit)
	envInt("DOGTALK_RATE_LIMIT_LONG_WINDOW_SECONDS", &config.RateLimit.LongWindowSeconds)
	envInt("DOGTALK_RATE_LIMIT_LONG_LIMIT", &config.RateLimit.LongLimit)
	envInt("DOGTALK_RATE_LIMIT_SHARDS", &config.RateLimit.Shards)
	envDuration("DOGTALK_RATE_LIMIT_SWEEP_INTERVAL", &config.RateLimit.SweepInterval)
	envBool("DOGTALK_RATE_LIMIT_TRUST_FORWARDED_HEADER", &config.RateLimit.TrustForwardedHeader)
	envString("DOGTALK_RATE_LIMIT_FORWARDED_HEADER", &config.RateLimit.ForwardedHeader)

	// Upstream configuration
	envString("DOGTALK_UPSTREAM_PROVIDER", &config.Upstream.Provider)
	envString("DOGTALK_UPSTREAM_ENDPOINT", &config.Upstream.Endpoint)
	envString("DOGTALK_UPSTREAM_API_KEY", &config.Upstream.APIKey)
	envString("DOGTALK_UPSTREAM_MODEL", &config.Upstream.Model)
	envDuration("DOGTALK_UPSTREAM_TIMEOUT", &config.Upstream.Timeout)
	envInt("DOGTALK_UPSTREAM_MAX_TOKENS", &config.Upstream.MaxTokens)
	envFloat("DOGTALK_UPSTREAM_REQUESTS_PER_SECOND", &config.Upstream.RequestsPerSecond)
	envInt("DOGTALK_UPSTREAM_BURST", &config.Upstream.Burst)

	// Logging configuration
	envString("DOGTALK_LOG_LEVEL", &config.Logging.Level)
	envString("DOGTALK_LOG_FORMAT", &config.Logging.Format)
	envString("DOGTALK_LOG_OUTPUT", &config.Logging.Output)
	envString("DOGTALK_LOG_FILE_PATH", &config.Logging.FilePath)

	// Metrics configuration
	envBool("DOGTALK_METRICS_ENABLED", &config.Metrics.Enabled)
	envString("DOGTALK_METRICS_PATH", &config.Metrics.Path)
	envInt("DOGTALK_METRICS_PORT", &config.Metrics.Port)

	// Observability configuration
	envString("DOGTALK_SERVICE_NAME", &config.Observability.ServiceName)
	envBool("DOGTALK_TRACING_ENABLED", &config.Observability.Tracing.Enabled)
	envString("DOGTALK_TRACING_EXPORTER", &config.Observability.Tracing.Exporter)
	envString("DOGTALK_TRACING_OTLP_ENDPOINT", &config.Observability.Tracing.OTLPEndpoint)
	envFloat("DOGTALK_TRACING_SAMPLE_RATE", &config.Observability.Tracing.SampleRate)
}

// exampleComments annotates each top-level section of the example file.
var exampleComments = map[string]string{
	"server":        "HTTP listener settings. Environment overrides use the DOGTALK_ prefix.",
	"rate_limit":    "Per-client rolling windows. Windows are in seconds and capped at one year.\nsweep_interval controls how often fully expired clients are evicted.",
	"upstream":      "Translation provider. \"local\" needs no API key; \"openai\" falls back to\nlocal translations when the provider fails or requests_per_second is exhausted.",
	"logging":       "Structured logging: level debug|info|warn|error, format json|text.",
	"metrics":       "Prometheus scrape endpoint, served on its own port.",
	"observability": "OpenTelemetry tracing: exporter stdout|otlp.",
}

// SaveExample saves an example configuration file
func SaveExample(filePath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	config := models.NewDefaultConfig()

	// Example upstream configuration
	config.Upstream.Provider = models.ProviderOpenAI
	config.Upstream.APIKey = "sk-your-api-key-here"

	// Example TLS configuration
	config.Server.TLSEnabled = false
	config.Server.TLSCertFile = "/path/to/cert.pem"
	config.Server.TLSKeyFile = "/path/to/key.pem"

	var doc yaml.Node
	if err := doc.Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if comment, ok := exampleComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = comment
		}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	data = append([]byte("# dogtalk example configuration\n\n"), data...)

	// Write to file
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
