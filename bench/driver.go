package bench

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/ajroetker/svebench/hwy"
	"github.com/ajroetker/svebench/hwy/contrib/axpy"
)

// Workload holds the benchmark vectors. X and YOriginal are never
// written after NewWorkload; Y is reset from YOriginal before every
// kernel call.
type Workload struct {
	X         []float32
	YOriginal []float32
	Y         []float32
}

// NewWorkload allocates the ramps X[i] = i and YOriginal[i] = n - i.
func NewWorkload(n int) *Workload {
	w := &Workload{
		X:         make([]float32, n),
		YOriginal: make([]float32, n),
		Y:         make([]float32, n),
	}
	for i := range n {
		w.X[i] = float32(i)
		w.YOriginal[i] = float32(n - i)
	}
	copy(w.Y, w.YOriginal)
	return w
}

// Reset restores Y to its baseline so every iteration does identical work.
func (w *Workload) Reset() {
	copy(w.Y, w.YOriginal)
}

// Runner executes the timed loop. The zero value is not usable; build one
// with NewRunner.
type Runner struct {
	cfg        Config
	out        io.Writer
	tag        hwy.Tag
	kernel     axpy.Kernel
	kernelName string

	// now is the clock; tests substitute a fake one.
	now func() time.Time
}

// NewRunner validates cfg and binds the configured kernel to either the
// hardware vector width or the configured lane override. Output is
// written to out.
func NewRunner(cfg Config, out io.Writer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tag := cfg.Tag()
	name, err := axpy.Resolve(cfg.Kernel, tag)
	if err != nil {
		return nil, err
	}
	kernel, err := axpy.Lookup(name, tag)
	if err != nil {
		return nil, err
	}
	Logger().Debug("kernel selected", "kernel", name, "tag", tag.Name(), "lanes", hwy.LanesOf[float32](tag))
	return &Runner{
		cfg:        cfg,
		out:        out,
		tag:        tag,
		kernel:     kernel,
		kernelName: name,
		now:        time.Now,
	}, nil
}

// Run allocates the workload, runs the kernel until the configured
// duration has elapsed (or ctx is cancelled), verifies the result and
// prints the text report. The returned report is complete even when the
// run was interrupted.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	cfg := r.cfg
	bw := bufio.NewWriter(r.out)
	defer bw.Flush()

	host := CurrentHost(r.tag, r.kernelName)
	if err := r.writeHeader(bw, host); err != nil {
		return nil, err
	}

	fmt.Fprintln(bw, "Initializing vectors...")
	w := NewWorkload(cfg.Size)
	fmt.Fprintln(bw, "Initialization complete. Starting computation.")
	if err := bw.Flush(); err != nil {
		return nil, err
	}

	Logger().Info("run started", "size", cfg.Size, "duration", cfg.Duration, "kernel", r.kernelName, "vector_bits", host.VectorBits)

	var (
		iterations  int64
		interrupted bool
		start       = r.now()
		elapsed     time.Duration
	)
	for {
		w.Reset()
		if err := r.kernel(cfg.Alpha, w.X, w.Y); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iterations+1, err)
		}
		iterations++

		elapsed = r.now().Sub(start)
		if iterations%int64(cfg.ProgressEvery) == 0 {
			fmt.Fprintf(bw, "\rElapsed time: %ds, Iterations: %d", int64(elapsed/time.Second), iterations)
			if err := bw.Flush(); err != nil {
				return nil, err
			}
		}
		if elapsed >= cfg.Duration {
			break
		}
		if ctx.Err() != nil {
			interrupted = true
			break
		}
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Computation finished.")

	report := &Report{
		ID:          uuid.NewString(),
		Timestamp:   start.UTC(),
		Host:        host,
		Config:      cfg,
		Iterations:  iterations,
		Elapsed:     elapsed.Seconds(),
		GFLOPS:      GFLOPS(cfg.Size, iterations, elapsed),
		Interrupted: interrupted,
	}
	r.verify(w, report)

	if interrupted {
		Logger().Warn("run interrupted", "iterations", iterations, "elapsed", elapsed)
	}
	Logger().Info("run finished", "iterations", iterations, "gflops", report.GFLOPS, "verified", report.Verified())

	if err := report.WriteSummary(bw); err != nil {
		return report, err
	}
	if err := bw.Flush(); err != nil {
		return report, err
	}

	if cfg.ReportJSON != "" {
		if err := report.SaveJSON(cfg.ReportJSON); err != nil {
			return report, err
		}
		Logger().Info("report written", "path", cfg.ReportJSON, "id", report.ID)
	}
	return report, nil
}

func (r *Runner) writeHeader(w io.Writer, host Host) error {
	ew := &errWriter{w: w}
	ew.printf("SVE SAXPY Benchmark\n")
	ew.printf("---------------------\n")
	ew.printf("Target duration: %.0f seconds\n", r.cfg.Duration.Seconds())
	ew.printf("Vector size:     %d elements (%s per vector)\n", r.cfg.Size, humanize.IBytes(uint64(r.cfg.Size)*4))
	ew.printf("Vector length:   %d bits (%d bytes), %d float32 lanes [%s]\n",
		host.VectorBits, host.VectorBits/8, host.Lanes, host.Dispatch)
	ew.printf("Kernel:          %s\n", host.Kernel)
	ew.printf("---------------------\n")
	return ew.err
}

func (r *Runner) verify(w *Workload, report *Report) {
	cfg := r.cfg
	switch cfg.Verify {
	case VerifySpot:
		report.Samples = SpotCheck(cfg.Alpha, w.X, w.YOriginal, w.Y, cfg.ToleranceULPs)
	case VerifyFull:
		report.Samples = SpotCheck(cfg.Alpha, w.X, w.YOriginal, w.Y, cfg.ToleranceULPs)
		report.Mismatches, report.MaxULPs = FullCheck(cfg.Alpha, w.X, w.YOriginal, w.Y, cfg.ToleranceULPs)
	}
	if !report.Verified() {
		Logger().Warn("verification failed", "mismatches", report.Mismatches, "max_ulps", report.MaxULPs)
	}
}
