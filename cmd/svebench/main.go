// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command svebench runs the scalable-vector SAXPY throughput benchmark.
//
// Usage:
//
//	svebench                          # 120s run, 10M elements, a=2.5
//	svebench --duration 30s --width 16 --kernel predicated
//	svebench --config bench.yaml --report-json result.json
//	svebench compare baseline.json result.json
//	svebench info
//
// Settings are resolved as defaults < --config YAML < SVEBENCH_* env <
// flags. HWY_NO_SIMD and HWY_NO_SVE force the portable width.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajroetker/svebench/bench"
	"github.com/ajroetker/svebench/hwy"
	"github.com/ajroetker/svebench/hwy/contrib/axpy"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	buildTime = "unknown" // Set via ldflags: -X main.buildTime=$(date +%Y%m%d-%H%M%S)
)

// errVerification is returned with --fail-on-mismatch when results are wrong.
var errVerification = errors.New("verification failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svebench",
		Short: "Scalable-vector SAXPY throughput benchmark",
		Long: `svebench computes Y = a*X + Y over a large float32 array with a
vector-length-agnostic kernel, repeating it for a fixed wall-clock
duration, then reports GFLOPS and spot-checks the result.

Without a subcommand it runs the benchmark.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runBench,
	}
	addRunFlags(rootCmd)
	rootCmd.PersistentFlags().String("log-level", "off", "Diagnostic log level on stderr: off, debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		return configureLogging(level)
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timed benchmark",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addRunFlags(runCmd)

	rootCmd.AddCommand(runCmd, newCompareCmd(), newInfoCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "svebench v%s (%s) built %s\n", version, commit, buildTime)
		},
	})
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	def := bench.DefaultConfig()
	f := cmd.Flags()
	f.String("config", "", "YAML config file")
	f.Duration("duration", def.Duration, "Target wall-clock duration of the timed loop")
	f.Int("size", def.Size, "Number of float32 elements in X and Y")
	f.Float32("alpha", def.Alpha, "Scalar multiplier a")
	f.Int("progress-every", def.ProgressEvery, "Print progress every N iterations")
	f.String("kernel", def.Kernel, "Kernel: "+strings.Join(axpy.Names(), ", "))
	f.Int("width", def.Width, "Override the vector width in float32 lanes (0 = hardware)")
	f.String("verify", def.Verify, "Verification: spot, full, none")
	f.Int("tolerance-ulps", def.ToleranceULPs, "Accepted distance in ULPs between expected and computed values")
	f.String("report-json", "", "Write the JSON report to this path")
	f.Bool("fail-on-mismatch", false, "Exit non-zero when verification fails")
}

// loadConfig resolves defaults, the YAML file, the environment and the
// flags the user actually set, in that order.
func loadConfig(cmd *cobra.Command) (bench.Config, error) {
	f := cmd.Flags()
	cfg := bench.DefaultConfig()
	if path, _ := f.GetString("config"); path != "" {
		var err error
		if cfg, err = bench.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if err := bench.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if f.Changed("duration") {
		cfg.Duration, _ = f.GetDuration("duration")
	}
	if f.Changed("size") {
		cfg.Size, _ = f.GetInt("size")
	}
	if f.Changed("alpha") {
		cfg.Alpha, _ = f.GetFloat32("alpha")
	}
	if f.Changed("progress-every") {
		cfg.ProgressEvery, _ = f.GetInt("progress-every")
	}
	if f.Changed("kernel") {
		cfg.Kernel, _ = f.GetString("kernel")
	}
	if f.Changed("width") {
		cfg.Width, _ = f.GetInt("width")
	}
	if f.Changed("verify") {
		cfg.Verify, _ = f.GetString("verify")
	}
	if f.Changed("tolerance-ulps") {
		cfg.ToleranceULPs, _ = f.GetInt("tolerance-ulps")
	}
	if f.Changed("report-json") {
		cfg.ReportJSON, _ = f.GetString("report-json")
	}
	return cfg, cfg.Validate()
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runner, err := bench.NewRunner(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if failOnMismatch, _ := cmd.Flags().GetBool("fail-on-mismatch"); failOnMismatch && !report.Verified() {
		return errVerification
	}
	return nil
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare BASELINE.json CURRENT.json",
		Short: "Compare two JSON reports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseline, err := bench.LoadReport(args[0])
			if err != nil {
				return err
			}
			current, err := bench.LoadReport(args[1])
			if err != nil {
				return err
			}
			color, _ := cmd.Flags().GetBool("color")
			return bench.WriteComparison(cmd.OutOrStdout(), baseline, current, color)
		},
	}
	cmd.Flags().Bool("color", false, "Color improvements green and regressions red")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the detected vector hardware",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var tag hwy.Tag = hwy.ScalableTag[float32]{}
			kernel, err := axpy.Resolve(axpy.KernelAuto, tag)
			if err != nil {
				return err
			}
			host := bench.CurrentHost(tag, kernel)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Platform:      %s/%s (%d CPUs)\n", host.GOOS, host.GOARCH, host.NumCPU)
			fmt.Fprintf(out, "Dispatch:      %s\n", host.Dispatch)
			fmt.Fprintf(out, "SVE:           %v\n", host.SVE)
			if host.SVE {
				fmt.Fprintf(out, "SVE length:    %d bytes\n", hwy.SVEVectorBytes())
			}
			fmt.Fprintf(out, "Vector length: %d bits (%d bytes)\n", host.VectorBits, host.VectorBits/8)
			fmt.Fprintf(out, "float32 lanes: %d\n", host.Lanes)
			fmt.Fprintf(out, "Auto kernel:   %s\n", host.Kernel)
			return nil
		},
	}
}

func configureLogging(level string) error {
	var l slog.Level
	switch strings.ToLower(level) {
	case "", "off":
		bench.SetLogger(nil)
		return nil
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	bench.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}
