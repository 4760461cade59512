package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig_DefaultsPass(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)

	require.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfig_CollectsEveryViolation(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Metrics.Port = 80
	cfg.Optimizer.TargetFillPcts = []float64{0.7, 1.3}

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Metrics.Port")
	assert.Contains(t, err.Error(), "TargetFillPcts")
}
