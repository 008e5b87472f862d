package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ajroetker/svebench/hwy"
)

// Host describes the machine and vector configuration a run used.
type Host struct {
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
	NumCPU     int    `json:"num_cpu"`
	Dispatch   string `json:"dispatch"`
	SVE        bool   `json:"sve"`
	VectorBits int    `json:"vector_bits"`
	Lanes      int    `json:"lanes"`
	Kernel     string `json:"kernel"`
}

// CurrentHost captures the running machine with the given tag and kernel.
func CurrentHost(tag hwy.Tag, kernel string) Host {
	return Host{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		Dispatch:   hwy.CurrentName(),
		SVE:        hwy.HasSVE(),
		VectorBits: tag.Width() * 8,
		Lanes:      hwy.LanesOf[float32](tag),
		Kernel:     kernel,
	}
}

// Report is the outcome of one timed run.
type Report struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Host        Host      `json:"host"`
	Config      Config    `json:"config"`
	Iterations  int64     `json:"iterations"`
	Elapsed     float64   `json:"elapsed_seconds"`
	GFLOPS      float64   `json:"gflops"`
	Interrupted bool      `json:"interrupted,omitempty"`
	Samples     []Sample  `json:"samples,omitempty"`
	Mismatches  int       `json:"mismatches"`
	MaxULPs     uint32    `json:"max_ulps"`
}

// GFLOPS returns the throughput of iterations kernel calls over n
// elements in elapsed time: 2*n*iterations / seconds / 1e9.
func GFLOPS(n int, iterations int64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(2*int64(n)) * float64(iterations) / secs / 1e9
}

// Verified reports whether the run passed verification.
func (r *Report) Verified() bool {
	return r.Mismatches == 0 && allOK(r.Samples)
}

// IterationsPerSecond is the kernel call rate.
func (r *Report) IterationsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Iterations) / r.Elapsed
}

// WriteSummary prints the post-run section of the text report.
func (r *Report) WriteSummary(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("---------------------\n")
	ew.printf("Total iterations: %s\n", humanize.Comma(r.Iterations))
	ew.printf("Total time:       %.3f seconds\n", r.Elapsed)
	ew.printf("Performance:      %.3f GFLOPS\n", r.GFLOPS)
	if r.Interrupted {
		ew.printf("(interrupted before the target duration)\n")
	}

	if len(r.Samples) > 0 {
		ew.printf("\nVerifying a few results...\n")
		for _, s := range r.Samples {
			mark := ""
			if !s.OK {
				mark = fmt.Sprintf("  MISMATCH (%d ulps)", s.ULPs)
			}
			ew.printf("y[%d]: Expected=%g, Got=%g%s\n", s.Index, s.Expected, s.Got, mark)
		}
	}
	if r.Config.Verify == VerifyFull {
		ew.printf("Full check: %d mismatches over %s elements (max %d ulps)\n",
			r.Mismatches, humanize.Comma(int64(r.Config.Size)), r.MaxULPs)
	}
	return ew.err
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveJSON writes the report to path.
func (r *Report) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := r.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return f.Close()
}

// LoadReport reads a report written by SaveJSON.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}

// errWriter keeps the first write error so report printing reads linearly.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
