// Package models - Service configuration and operational settings.
// This file defines the configuration structures for all service components.
//
// Configuration Philosophy:
// - Hierarchical configuration with logical grouping (server, rate limit, upstream, etc.)
// - Defaults that work out of the box with no paid upstream configured
// - Validation to catch misconfigurations at startup
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Upstream provider constants
const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
)

// Config is the root configuration structure containing all service settings.
//
// Configuration Structure:
// - Server: HTTP server and network settings
// - RateLimit: Per-client admission windows for the translate endpoint
// - Upstream: Generative-text provider and spend guard
// - Logging: Structured logging and output configuration
// - Metrics: Prometheus endpoint
// - Observability: Tracing
type Config struct {
	Server        ServerConfig        `yaml:"server" json:"server"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit" json:"rate_limit"`
	Upstream      UpstreamConfig      `yaml:"upstream" json:"upstream"`
	Logging       LoggingConfig       `yaml:"logging" json:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics" json:"metrics"`
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

type ServerConfig struct {
	Port         int           `yaml:"port" json:"port"`
	Host         string        `yaml:"host" json:"host"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	TLSEnabled   bool          `yaml:"tls_enabled" json:"tls_enabled"`
	TLSCertFile  string        `yaml:"tls_cert_file" json:"tls_cert_file"`
	TLSKeyFile   string        `yaml:"tls_key_file" json:"tls_key_file"`
}

// MaxWindowSeconds bounds both rate limit windows to one leap year. Larger
// values would also overflow time.Duration.
const MaxWindowSeconds = 366 * 24 * 60 * 60

// RateLimitConfig holds the two rolling windows applied per client key.
// ShortLimit is the burst tolerance; LongLimit is the daily cost ceiling.
type RateLimitConfig struct {
	Enabled              bool          `yaml:"enabled" json:"enabled"`
	ShortWindowSeconds   int           `yaml:"short_window_seconds" json:"short_window_seconds"`
	ShortLimit           int           `yaml:"short_limit" json:"short_limit"`
	LongWindowSeconds    int           `yaml:"long_window_seconds" json:"long_window_seconds"`
	LongLimit            int           `yaml:"long_limit" json:"long_limit"`
	Shards               int           `yaml:"shards" json:"shards"`
	SweepInterval        time.Duration `yaml:"sweep_interval" json:"sweep_interval"`
	TrustForwardedHeader bool          `yaml:"trust_forwarded_header" json:"trust_forwarded_header"`
	ForwardedHeader      string        `yaml:"forwarded_header" json:"forwarded_header"`
}

// ShortWindow returns the short window as a duration.
func (rc RateLimitConfig) ShortWindow() time.Duration {
	return time.Duration(rc.ShortWindowSeconds) * time.Second
}

// LongWindow returns the long window as a duration.
func (rc RateLimitConfig) LongWindow() time.Duration {
	return time.Duration(rc.LongWindowSeconds) * time.Second
}

// UpstreamConfig selects the generative-text provider. RequestsPerSecond and
// Burst cap paid calls across all clients; excess requests get the local
// translation instead.
type UpstreamConfig struct {
	Provider          string        `yaml:"provider" json:"provider"`
	Endpoint          string        `yaml:"endpoint" json:"endpoint"`
	APIKey            string        `yaml:"api_key" json:"-"`
	Model             string        `yaml:"model" json:"model"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	MaxTokens         int           `yaml:"max_tokens" json:"max_tokens"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	Format   string `yaml:"format" json:"format"`
	Output   string `yaml:"output" json:"output"`
	FilePath string `yaml:"file_path" json:"file_path"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
	Port    int    `yaml:"port" json:"port"`
}

type ObservabilityConfig struct {
	ServiceName string        `yaml:"service_name" json:"service_name"`
	Tracing     TracingConfig `yaml:"tracing" json:"tracing"`
}

type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	Exporter     string  `yaml:"exporter" json:"exporter"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" json:"otlp_endpoint"`
	SampleRate   float64 `yaml:"sample_rate" json:"sample_rate"`
}

// NewDefaultConfig creates a configuration with production-ready defaults.
//
// Default Values Rationale:
// - Port 8080: Standard non-privileged HTTP port
// - 12 requests per rolling minute and 50 per rolling day per client
// - Local provider: the service runs without a paid API key
// - Metrics enabled on a separate port
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:              true,
			ShortWindowSeconds:   60,
			ShortLimit:           12,
			LongWindowSeconds:    86400,
			LongLimit:            50,
			Shards:               64,
			SweepInterval:        10 * time.Minute,
			TrustForwardedHeader: true,
			ForwardedHeader:      "X-Forwarded-For",
		},
		Upstream: UpstreamConfig{
			Provider:          ProviderLocal,
			Endpoint:          "https://api.openai.com/v1/chat/completions",
			Model:             "gpt-4o-mini",
			Timeout:           15 * time.Second,
			MaxTokens:         160,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9090,
		},
		Observability: ObservabilityConfig{
			ServiceName: "dogtalk",
			Tracing: TracingConfig{
				Enabled:    false,
				Exporter:   "stdout",
				SampleRate: 1.0,
			},
		},
	}
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("invalid rate limit config: %w", err)
	}

	if err := c.Upstream.Validate(); err != nil {
		return fmt.Errorf("invalid upstream config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

func (sc *ServerConfig) Validate() error {
	if sc.Port <= 0 || sc.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if sc.Host == "" {
		return errors.New("host cannot be empty")
	}

	if sc.ReadTimeout < 0 {
		return errors.New("read timeout cannot be negative")
	}

	if sc.WriteTimeout < 0 {
		return errors.New("write timeout cannot be negative")
	}

	if sc.IdleTimeout < 0 {
		return errors.New("idle timeout cannot be negative")
	}

	if sc.TLSEnabled {
		if sc.TLSCertFile == "" {
			return errors.New("TLS cert file is required when TLS is enabled")
		}
		if sc.TLSKeyFile == "" {
			return errors.New("TLS key file is required when TLS is enabled")
		}
	}

	return nil
}

func (rc *RateLimitConfig) Validate() error {
	if !rc.Enabled {
		return nil
	}

	if rc.ShortWindowSeconds <= 0 {
		return errors.New("short window must be positive")
	}
	if rc.LongWindowSeconds <= 0 {
		return errors.New("long window must be positive")
	}
	if rc.ShortWindowSeconds > MaxWindowSeconds {
		return fmt.Errorf("short window cannot exceed %d seconds", MaxWindowSeconds)
	}
	if rc.LongWindowSeconds > MaxWindowSeconds {
		return fmt.Errorf("long window cannot exceed %d seconds", MaxWindowSeconds)
	}
	if rc.LongWindowSeconds < rc.ShortWindowSeconds {
		return errors.New("long window cannot be shorter than short window")
	}
	if rc.ShortLimit <= 0 {
		return errors.New("short limit must be positive")
	}
	if rc.LongLimit <= 0 {
		return errors.New("long limit must be positive")
	}
	if rc.Shards < 0 {
		return errors.New("shards cannot be negative")
	}
	if rc.SweepInterval <= 0 {
		return errors.New("sweep interval must be positive")
	}

	return nil
}

func (uc *UpstreamConfig) Validate() error {
	switch uc.Provider {
	case ProviderLocal:
		return nil
	case ProviderOpenAI:
	default:
		return fmt.Errorf("invalid upstream provider: %s", uc.Provider)
	}

	if uc.Endpoint == "" {
		return errors.New("endpoint is required for the openai provider")
	}
	if !strings.HasPrefix(uc.Endpoint, "http://") && !strings.HasPrefix(uc.Endpoint, "https://") {
		return fmt.Errorf("endpoint must be an http(s) URL: %s", uc.Endpoint)
	}
	if uc.APIKey == "" {
		return errors.New("api key is required for the openai provider")
	}
	if uc.Model == "" {
		return errors.New("model is required for the openai provider")
	}
	if uc.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if uc.RequestsPerSecond < 0 {
		return errors.New("requests per second cannot be negative")
	}
	if uc.Burst < 0 {
		return errors.New("burst cannot be negative")
	}

	return nil
}

func (lc *LoggingConfig) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error"}
	found := false
	for _, vl := range validLevels {
		if lc.Level == vl {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid log level: %s", lc.Level)
	}

	validFormats := []string{"json", "text"}
	found = false
	for _, vf := range validFormats {
		if lc.Format == vf {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid log format: %s", lc.Format)
	}

	validOutputs := []string{"stdout", "stderr", "file"}
	found = false
	for _, vo := range validOutputs {
		if lc.Output == vo {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid log output: %s", lc.Output)
	}

	if lc.Output == "file" && lc.FilePath == "" {
		return errors.New("file path is required when output is file")
	}

	return nil
}

func (mc *MetricsConfig) Validate() error {
	if !mc.Enabled {
		return nil
	}

	if mc.Path == "" {
		return errors.New("metrics path cannot be empty")
	}

	if mc.Port <= 0 || mc.Port > 65535 {
		return errors.New("metrics port must be between 1 and 65535")
	}

	return nil
}

func (oc *ObservabilityConfig) Validate() error {
	if !oc.Tracing.Enabled {
		return nil
	}

	if oc.ServiceName == "" {
		return errors.New("service name is required when tracing is enabled")
	}

	switch oc.Tracing.Exporter {
	case "stdout":
	case "otlp":
		if oc.Tracing.OTLPEndpoint == "" {
			return errors.New("OTLP endpoint is required for the otlp exporter")
		}
	default:
		return fmt.Errorf("invalid trace exporter: %s", oc.Tracing.Exporter)
	}

	if oc.Tracing.SampleRate < 0 || oc.Tracing.SampleRate > 1 {
		return errors.New("sample rate must be between 0 and 1")
	}

	return nil
}
