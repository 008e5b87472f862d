package bench

import (
	"fmt"
	"io"
	"math"

	"github.com/samber/lo"
)

// Delta is the change of one metric between two reports.
type Delta struct {
	Metric         string
	Baseline       float64
	Current        float64
	ChangePct      float64
	HigherIsBetter bool
}

// Improved reports whether the change goes in the metric's good direction.
func (d Delta) Improved() bool {
	if d.HigherIsBetter {
		return d.ChangePct > 0
	}
	return d.ChangePct < 0
}

// PercentChange returns (current-baseline)/baseline*100, or 0 when the
// baseline is 0.
func PercentChange(baseline, current float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}

type metric struct {
	name           string
	higherIsBetter bool
	value          func(*Report) float64
}

var compareMetrics = []metric{
	{"GFLOPS", true, func(r *Report) float64 { return r.GFLOPS }},
	{"Iterations/s", true, (*Report).IterationsPerSecond},
	{"ms/iteration", false, func(r *Report) float64 {
		if r.Iterations == 0 {
			return 0
		}
		return r.Elapsed * 1000 / float64(r.Iterations)
	}},
	{"Mismatches", false, func(r *Report) float64 { return float64(r.Mismatches) }},
}

// Compare computes the per-metric change from baseline to current.
func Compare(baseline, current *Report) []Delta {
	return lo.Map(compareMetrics, func(m metric, _ int) Delta {
		b, c := m.value(baseline), m.value(current)
		return Delta{
			Metric:         m.name,
			Baseline:       b,
			Current:        c,
			ChangePct:      PercentChange(b, c),
			HigherIsBetter: m.higherIsBetter,
		}
	})
}

const (
	ansiGreen = "\033[92m"
	ansiRed   = "\033[91m"
	ansiReset = "\033[0m"
)

// FormatChange renders a percent change with a direction arrow, colored
// green for improvements and red for regressions when color is set.
func FormatChange(d Delta, color bool) string {
	if d.ChangePct == 0 {
		return "→ 0%"
	}
	arrow := "↑"
	if d.ChangePct < 0 {
		arrow = "↓"
	}
	s := fmt.Sprintf("%s %.2f%%", arrow, math.Abs(d.ChangePct))
	if !color {
		return s
	}
	if d.Improved() {
		return ansiGreen + s + ansiReset
	}
	return ansiRed + s + ansiReset
}

// WriteComparison prints a comparison table of two reports.
func WriteComparison(w io.Writer, baseline, current *Report, color bool) error {
	ew := &errWriter{w: w}
	ew.printf("%s\n", "============================================================")
	ew.printf("Performance Comparison Report\n")
	ew.printf("%s\n", "============================================================")
	ew.printf("Baseline: %s (%s, %s, %d bits)\n", baseline.ID, baseline.Timestamp.Format("2006-01-02 15:04:05"), baseline.Host.Kernel, baseline.Host.VectorBits)
	ew.printf("Current:  %s (%s, %s, %d bits)\n", current.ID, current.Timestamp.Format("2006-01-02 15:04:05"), current.Host.Kernel, current.Host.VectorBits)
	if baseline.Config.Size != current.Config.Size {
		ew.printf("warning: vector sizes differ (%d vs %d)\n", baseline.Config.Size, current.Config.Size)
	}
	ew.printf("\n%-14s %14s %14s  %s\n", "Metric", "Baseline", "Current", "Change")
	for _, d := range Compare(baseline, current) {
		ew.printf("%-14s %14.3f %14.3f  %s\n", d.Metric, d.Baseline, d.Current, FormatChange(d, color))
	}
	return ew.err
}
