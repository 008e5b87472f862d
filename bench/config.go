// Package bench drives the AXPY kernel for a fixed wall-clock budget and
// reports throughput and correctness.
//
// Configuration is resolved in this order (later wins):
//  1. DefaultConfig()
//  2. YAML file (LoadConfig)
//  3. SVEBENCH_* environment variables (ApplyEnv)
//  4. Command-line flags (cmd/svebench)
package bench

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/svebench/hwy"
	"github.com/ajroetker/svebench/hwy/contrib/axpy"
)

// Verification modes.
const (
	// VerifySpot checks a handful of fixed indices, as the classic
	// SAXPY benchmark does.
	VerifySpot = "spot"
	// VerifyFull recomputes every element with an independent vector
	// library and counts mismatches.
	VerifyFull = "full"
	// VerifyNone skips verification.
	VerifyNone = "none"
)

// MaxWidth is the largest lane override: float32 lanes in a 2048-bit
// vector, the SVE architectural maximum.
const MaxWidth = hwy.MaxVectorBytes / 4

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("bench: invalid config")

// Config holds the benchmark parameters.
type Config struct {
	// Duration is the wall-clock budget of the timed loop.
	Duration time.Duration `yaml:"-" json:"duration_ns"`
	// Size is N, the number of float32 elements in X and Y.
	Size int `yaml:"size" json:"size"`
	// Alpha is the scalar multiplier a.
	Alpha float32 `yaml:"alpha" json:"alpha"`
	// ProgressEvery prints a progress line every this many iterations.
	ProgressEvery int `yaml:"progress_every" json:"progress_every"`
	// Kernel is one of axpy.Names().
	Kernel string `yaml:"kernel" json:"kernel"`
	// Width overrides the lane count (0 = whatever the hardware reports).
	Width int `yaml:"width" json:"width"`
	// Verify is one of VerifySpot, VerifyFull, VerifyNone.
	Verify string `yaml:"verify" json:"verify"`
	// ToleranceULPs is the largest accepted distance, in units in the
	// last place, between expected and computed values.
	ToleranceULPs int `yaml:"tolerance_ulps" json:"tolerance_ulps"`
	// ReportJSON, when set, is the path the JSON report is written to.
	ReportJSON string `yaml:"report_json" json:"-"`
}

// DefaultConfig returns the classic benchmark setup: ten million
// elements, a = 2.5, two minutes.
func DefaultConfig() Config {
	return Config{
		Duration:      120 * time.Second,
		Size:          10_000_000,
		Alpha:         2.5,
		ProgressEvery: 10,
		Kernel:        axpy.KernelAuto,
		Verify:        VerifySpot,
		ToleranceULPs: 1,
	}
}

// Tag returns the vector width the kernel runs at: the hardware width,
// or Width float32 lanes when set.
func (c Config) Tag() hwy.Tag {
	if c.Width > 0 {
		return hwy.SizedTagForLanes[float32](c.Width)
	}
	return hwy.ScalableTag[float32]{}
}

// fileConfig is the on-disk YAML shape. Duration is a string so both
// "90s" and "2m" work.
type fileConfig struct {
	Config   `yaml:",inline"`
	Duration string `yaml:"duration"`
}

// LoadConfig reads a YAML file over DefaultConfig. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	fc := fileConfig{Config: cfg}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg = fc.Config
	if fc.Duration != "" {
		d, err := parseDuration(fc.Duration)
		if err != nil {
			return cfg, fmt.Errorf("config %s: duration: %w", path, err)
		}
		cfg.Duration = d
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from SVEBENCH_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("SVEBENCH_DURATION"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("SVEBENCH_DURATION: %w", err)
		}
		cfg.Duration = d
	}
	if err := envInt("SVEBENCH_SIZE", &cfg.Size); err != nil {
		return err
	}
	if v := os.Getenv("SVEBENCH_ALPHA"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("SVEBENCH_ALPHA: %w", err)
		}
		cfg.Alpha = float32(f)
	}
	if err := envInt("SVEBENCH_PROGRESS_EVERY", &cfg.ProgressEvery); err != nil {
		return err
	}
	if err := envInt("SVEBENCH_WIDTH", &cfg.Width); err != nil {
		return err
	}
	if err := envInt("SVEBENCH_TOLERANCE_ULPS", &cfg.ToleranceULPs); err != nil {
		return err
	}
	if v := os.Getenv("SVEBENCH_KERNEL"); v != "" {
		cfg.Kernel = strings.ToLower(v)
	}
	if v := os.Getenv("SVEBENCH_VERIFY"); v != "" {
		cfg.Verify = strings.ToLower(v)
	}
	if v := os.Getenv("SVEBENCH_REPORT_JSON"); v != "" {
		cfg.ReportJSON = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// parseDuration accepts Go durations ("90s", "2m") and bare seconds ("120").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}

// Validate checks the configuration for values the driver cannot run with.
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfig, c.Duration)
	}
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if c.ProgressEvery <= 0 {
		return fmt.Errorf("%w: progress_every must be positive, got %d", ErrInvalidConfig, c.ProgressEvery)
	}
	if c.Width < 0 || c.Width > MaxWidth {
		return fmt.Errorf("%w: width must be in [0, %d], got %d", ErrInvalidConfig, MaxWidth, c.Width)
	}
	if c.ToleranceULPs < 0 {
		return fmt.Errorf("%w: tolerance_ulps must be >= 0, got %d", ErrInvalidConfig, c.ToleranceULPs)
	}
	if _, err := axpy.Resolve(c.Kernel, c.Tag()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Verify {
	case VerifySpot, VerifyFull, VerifyNone:
	default:
		return fmt.Errorf("%w: verify must be spot, full or none, got %q", ErrInvalidConfig, c.Verify)
	}
	return nil
}
