package observability

import (
	"context"
	"testing"

	"dogtalk/internal/models"
	"dogtalk/internal/version"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_MetricsOnly(t *testing.T) {
	metrics := models.MetricsConfig{
		Enabled: true,
		Path:    "/metrics",
		Port:    9090,
	}
	obs := models.ObservabilityConfig{
		ServiceName: "dogtalk-test",
		Tracing: models.TracingConfig{
			Enabled: false,
		},
	}

	reg := promclient.NewRegistry()
	provider, err := Setup(metrics, obs, version.Info{}, WithRegistry(reg))
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.NotNil(t, provider.PrometheusExporter())
	assert.NotNil(t, provider.MeterProvider())
	assert.Nil(t, provider.tracerProvider)
	assert.Equal(t, promclient.Gatherer(reg), provider.gatherer)

	err = provider.Shutdown(context.Background())
	assert.NoError(t, err)
}

func TestSetup_TracingStdout(t *testing.T) {
	metrics := models.MetricsConfig{
		Enabled: false,
	}
	obs := models.ObservabilityConfig{
		ServiceName: "dogtalk-test",
		Tracing: models.TracingConfig{
			Enabled:    true,
			Exporter:   "stdout",
			SampleRate: 1.0,
		},
	}

	provider, err := Setup(metrics, obs, version.Info{})
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.NotNil(t, provider.tracerProvider)
	assert.Nil(t, provider.PrometheusExporter())
	assert.Nil(t, provider.MeterProvider())

	err = provider.Shutdown(context.Background())
	assert.NoError(t, err)
}

func TestSetup_BothEnabled(t *testing.T) {
	metrics := models.MetricsConfig{
		Enabled: true,
		Path:    "/metrics",
		Port:    9090,
	}
	obs := models.ObservabilityConfig{
		ServiceName: "dogtalk-test",
		Tracing: models.TracingConfig{
			Enabled:    true,
			Exporter:   "stdout",
			SampleRate: 0.5,
		},
	}

	provider, err := Setup(metrics, obs, version.Info{Version: "v0.3.0"}, WithRegistry(promclient.NewRegistry()))
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.NotNil(t, provider.tracerProvider)
	assert.NotNil(t, provider.PrometheusExporter())

	err = provider.Shutdown(context.Background())
	assert.NoError(t, err)
}

func TestSetup_UnsupportedExporter(t *testing.T) {
	obs := models.ObservabilityConfig{
		ServiceName: "dogtalk-test",
		Tracing: models.TracingConfig{
			Enabled:  true,
			Exporter: "carrier-pigeon",
		},
	}

	_, err := Setup(models.MetricsConfig{}, obs, version.Info{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestSetup_NothingEnabled(t *testing.T) {
	provider, err := Setup(models.MetricsConfig{}, models.ObservabilityConfig{ServiceName: "dogtalk-test"}, version.Info{})
	require.NoError(t, err)
	assert.Nil(t, provider.tracerProvider)
	assert.Nil(t, provider.meterProvider)
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("DOGTALK_ENVIRONMENT", "")
	t.Setenv("ENVIRONMENT", "")
	assert.Equal(t, "development", getEnvironment())

	t.Setenv("ENVIRONMENT", "staging")
	assert.Equal(t, "staging", getEnvironment())

	t.Setenv("DOGTALK_ENVIRONMENT", "production")
	assert.Equal(t, "production", getEnvironment())
}
