package config

import (
	"testing"
	"time"

	"motiflab/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "AGREEMENT_WORKERS", "AGREEMENT_WINDOW", "HISTOGRAM_BIN_WIDTH", "OVERLAP_ALPHA", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.GreaterOrEqual(t, cfg.Analysis.Workers, 1)
	assert.Equal(t, DefaultWindow, cfg.Analysis.Window)
	assert.Equal(t, 1.0, cfg.Analysis.BinWidth)
	assert.Equal(t, 0.05, cfg.Analysis.OverlapAlpha)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AGREEMENT_WORKERS", "3")
	t.Setenv("AGREEMENT_WINDOW", "500")
	t.Setenv("HISTOGRAM_BIN_WIDTH", "0.25")
	t.Setenv("OVERLAP_ALPHA", "0.01")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Analysis.Workers)
	assert.Equal(t, 500, cfg.Analysis.Window)
	assert.Equal(t, 0.25, cfg.Analysis.BinWidth)
	assert.Equal(t, 0.01, cfg.Analysis.OverlapAlpha)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"zero workers":   {"AGREEMENT_WORKERS", "0"},
		"negative width": {"HISTOGRAM_BIN_WIDTH", "-1"},
		"alpha of one":   {"OVERLAP_ALPHA", "1"},
		"empty window":   {"AGREEMENT_WINDOW", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, validateConfig(Default()))
}
