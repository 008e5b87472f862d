package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/svebench/hwy"
	"github.com/ajroetker/svebench/hwy/contrib/axpy"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120*time.Second, cfg.Duration)
	assert.Equal(t, 10_000_000, cfg.Size)
	assert.Equal(t, float32(2.5), cfg.Alpha)
	assert.Equal(t, 10, cfg.ProgressEvery)
	assert.Equal(t, axpy.KernelAuto, cfg.Kernel)
	assert.Equal(t, VerifySpot, cfg.Verify)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svebench.yaml")
	data := `
duration: 90s
size: 4096
alpha: 0.5
kernel: predicated
width: 8
verify: full
report_json: out.json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Duration)
	assert.Equal(t, 4096, cfg.Size)
	assert.Equal(t, float32(0.5), cfg.Alpha)
	assert.Equal(t, axpy.KernelPredicated, cfg.Kernel)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, VerifyFull, cfg.Verify)
	assert.Equal(t, "out.json", cfg.ReportJSON)
	// Absent fields keep defaults.
	assert.Equal(t, 10, cfg.ProgressEvery)
	assert.Equal(t, 1, cfg.ToleranceULPs)
}

func TestLoadConfigBareSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svebench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration: \"30\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Duration)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration: soon\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SVEBENCH_DURATION", "2m")
	t.Setenv("SVEBENCH_SIZE", "123")
	t.Setenv("SVEBENCH_ALPHA", "1.25")
	t.Setenv("SVEBENCH_PROGRESS_EVERY", "5")
	t.Setenv("SVEBENCH_WIDTH", "4")
	t.Setenv("SVEBENCH_TOLERANCE_ULPS", "0")
	t.Setenv("SVEBENCH_KERNEL", "Scalar")
	t.Setenv("SVEBENCH_VERIFY", "NONE")
	t.Setenv("SVEBENCH_REPORT_JSON", "r.json")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, 2*time.Minute, cfg.Duration)
	assert.Equal(t, 123, cfg.Size)
	assert.Equal(t, float32(1.25), cfg.Alpha)
	assert.Equal(t, 5, cfg.ProgressEvery)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 0, cfg.ToleranceULPs)
	assert.Equal(t, axpy.KernelScalar, cfg.Kernel)
	assert.Equal(t, VerifyNone, cfg.Verify)
	assert.Equal(t, "r.json", cfg.ReportJSON)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("SVEBENCH_SIZE", "lots")
	cfg := DefaultConfig()
	assert.Error(t, ApplyEnv(&cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"negative size", func(c *Config) { c.Size = -1 }},
		{"zero progress", func(c *Config) { c.ProgressEvery = 0 }},
		{"negative width", func(c *Config) { c.Width = -4 }},
		{"width beyond 2048 bits", func(c *Config) { c.Width = MaxWidth + 1 }},
		{"negative tolerance", func(c *Config) { c.ToleranceULPs = -1 }},
		{"unknown kernel", func(c *Config) { c.Kernel = "neon-asm" }},
		{"unknown verify", func(c *Config) { c.Verify = "some" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigTag(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, hwy.ScalableTag[float32]{}, cfg.Tag())

	cfg.Width = MaxWidth
	assert.Equal(t, 2048/8, cfg.Tag().Width())
	require.NoError(t, cfg.Validate())
}
