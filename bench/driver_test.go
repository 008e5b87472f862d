package bench

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/svebench/hwy/contrib/axpy"
)

// fakeClock advances by step every time it is read.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 1000
	cfg.Duration = time.Second
	cfg.ProgressEvery = 2
	return cfg
}

func newTestRunner(t *testing.T, cfg Config, out *bytes.Buffer, step time.Duration) *Runner {
	t.Helper()
	r, err := NewRunner(cfg, out)
	require.NoError(t, err)
	clock := &fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), step: step}
	r.now = clock.now
	return r
}

func TestNewWorkload(t *testing.T) {
	w := NewWorkload(5)
	assert.Equal(t, []float32{0, 1, 2, 3, 4}, w.X)
	assert.Equal(t, []float32{5, 4, 3, 2, 1}, w.YOriginal)
	assert.Equal(t, w.YOriginal, w.Y)

	w.Y[0] = 99
	w.Reset()
	assert.Equal(t, w.YOriginal, w.Y)
}

func TestRunStopsAtDuration(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, testConfig(), &out, 100*time.Millisecond)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	// The clock advances 100ms per iteration; the 10th reaches 1s.
	assert.Equal(t, int64(10), report.Iterations)
	assert.InDelta(t, 1.0, report.Elapsed, 1e-9)
	assert.InDelta(t, GFLOPS(1000, 10, time.Second), report.GFLOPS, 1e-12)
	assert.False(t, report.Interrupted)
	assert.True(t, report.Verified())
	assert.NotEmpty(t, report.ID)

	text := out.String()
	for _, want := range []string{
		"SVE SAXPY Benchmark",
		"Target duration: 1 seconds",
		"Vector size:     1000 elements",
		"Vector length:",
		"\rElapsed time: 0s, Iterations: 2",
		"\rElapsed time: 1s, Iterations: 10",
		"Computation finished.",
		"Total iterations: 10",
		"Total time:       1.000 seconds",
		"Performance:",
		"Verifying a few results...",
		"y[0]: Expected=1000, Got=1000",
		"y[1]: Expected=1001.5, Got=1001.5",
		"y[42]:",
		"y[500]:",
		"y[999]:",
	} {
		assert.Contains(t, text, want)
	}
}

func TestRunSampleValues(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, testConfig(), &out, time.Second)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Samples, 5)

	wantIdx := []int{0, 1, 42, 500, 999}
	for i, s := range report.Samples {
		assert.Equal(t, wantIdx[i], s.Index)
		assert.Equal(t, 2.5*float32(s.Index)+float32(1000-s.Index), s.Expected)
		assert.Equal(t, s.Expected, s.Got)
		assert.True(t, s.OK)
	}
}

func TestRunAutoWithWidthIsPredicated(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 16

	var out bytes.Buffer
	r := newTestRunner(t, cfg, &out, 500*time.Millisecond)
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, axpy.KernelPredicated, report.Host.Kernel)
	assert.Contains(t, out.String(), "Kernel:          predicated")
}

func TestRunAllKernelsAndWidths(t *testing.T) {
	for _, kernel := range axpy.Names() {
		for _, width := range []int{0, 1, 3, 16} {
			cfg := testConfig()
			cfg.Kernel = kernel
			cfg.Width = width
			cfg.Size = 777
			cfg.Verify = VerifyFull

			var out bytes.Buffer
			r := newTestRunner(t, cfg, &out, 500*time.Millisecond)
			report, err := r.Run(context.Background())
			require.NoError(t, err, "kernel=%s width=%d", kernel, width)
			assert.Equal(t, int64(2), report.Iterations)
			assert.Zero(t, report.Mismatches, "kernel=%s width=%d", kernel, width)
			assert.True(t, report.Verified(), "kernel=%s width=%d", kernel, width)
			if width > 0 {
				assert.Equal(t, width, report.Host.Lanes)
				assert.Equal(t, width*32, report.Host.VectorBits)
			}
		}
	}
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := newTestRunner(t, testConfig(), &out, time.Millisecond)
	report, err := r.Run(ctx)
	require.NoError(t, err)

	// At least one iteration always runs, so there is a result to verify.
	assert.Equal(t, int64(1), report.Iterations)
	assert.True(t, report.Interrupted)
	assert.True(t, report.Verified())
	assert.Contains(t, out.String(), "interrupted")
}

func TestRunWritesJSONReport(t *testing.T) {
	cfg := testConfig()
	cfg.ReportJSON = filepath.Join(t.TempDir(), "report.json")

	var out bytes.Buffer
	r := newTestRunner(t, cfg, &out, 250*time.Millisecond)
	report, err := r.Run(context.Background())
	require.NoError(t, err)

	loaded, err := LoadReport(cfg.ReportJSON)
	require.NoError(t, err)
	assert.Equal(t, report.ID, loaded.ID)
	assert.Equal(t, report.Iterations, loaded.Iterations)
	assert.Equal(t, report.Config.Duration, loaded.Config.Duration)
	assert.Len(t, loaded.Samples, 5)
}

func TestNewRunnerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Size = 0
	_, err := NewRunner(cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGFLOPS(t *testing.T) {
	// 2 * 1e7 * 100 / 10s = 2e8 FLOP/s = 0.2 GFLOPS.
	assert.InDelta(t, 0.2, GFLOPS(10_000_000, 100, 10*time.Second), 1e-12)
	assert.Zero(t, GFLOPS(10, 10, 0))

	// Proportional scaling of iterations and time leaves it unchanged.
	base := GFLOPS(1_000_000, 50, 2*time.Second)
	for _, k := range []int64{2, 10, 1000} {
		assert.InDelta(t, base, GFLOPS(1_000_000, 50*k, time.Duration(k)*2*time.Second), 1e-9)
	}
}

func TestWriteSummaryMismatch(t *testing.T) {
	r := &Report{
		Iterations: 1,
		Elapsed:    1,
		Samples:    []Sample{{Index: 3, Expected: 1, Got: 2, ULPs: 8388608, OK: false}},
	}
	var buf bytes.Buffer
	require.NoError(t, r.WriteSummary(&buf))
	assert.True(t, strings.Contains(buf.String(), "MISMATCH"))
	assert.False(t, r.Verified())
}
