// Command tau runs the gesture engine over recorded or synthetic skeleton
// motion and prints per-frame tau readings.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/banshee-data/tau.report/internal/config"
	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
	"github.com/banshee-data/tau.report/internal/gesture/pipeline"
	"github.com/banshee-data/tau.report/internal/monitoring"
	"github.com/banshee-data/tau.report/internal/timeutil"
	"github.com/banshee-data/tau.report/internal/version"
)

type rootOptions struct {
	configPath  string
	verbose     bool
	trace       bool
	workers     int
	minInterval time.Duration
	asJSON      bool
	skipGated   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tau",
		Short: "Gesture tau estimation from skeleton motion",
		Long: `tau builds triangles over a tracked skeleton, follows each triangle's
Euler line from frame to frame and reports tau, the time-to-closure of the
Euler line's rotation, along with whether it is growing.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "tuning config JSON (defaults apply when omitted)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable diagnostic logging")
	pf.BoolVar(&opts.trace, "trace", false, "enable per-frame trace logging")
	pf.IntVar(&opts.workers, "workers", 1, "goroutines used for tau updates (overrides config)")
	pf.DurationVar(&opts.minInterval, "min-interval", 100*time.Millisecond, "minimum time between processed frames (overrides config)")
	pf.BoolVar(&opts.asJSON, "json", false, "write frame results as JSON Lines")
	pf.BoolVar(&opts.skipGated, "skip-gated", false, "omit gated frames from the output")

	root.AddCommand(newReplayCmd(opts), newSynthCmd(opts), newVersionCmd())
	return root
}

func setupLogging(w io.Writer, opts *rootOptions) {
	streams := monitoring.LogWriters{Ops: w}
	if opts.verbose || opts.trace {
		streams.Diag = w
	}
	if opts.trace {
		streams.Trace = w
	}
	pipeline.SetLogWriters(streams)
	monitoring.SetLogger(log.New(w, "[tau] ", log.LstdFlags).Printf)
}

// engineConfig loads the tuning file and applies any flag overrides.
func engineConfig(cmd *cobra.Command, opts *rootOptions) (pipeline.Config, error) {
	tuning := config.EmptyTuningConfig()
	if opts.configPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(opts.configPath)
		if err != nil {
			return pipeline.Config{}, err
		}
	}
	cfg := pipeline.ConfigFromTuning(tuning)
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if cmd.Flags().Changed("min-interval") {
		cfg.MinUpdateInterval = opts.minInterval
	}
	return cfg, cfg.Validate()
}

func newReplayCmd(opts *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run the engine over a recorded JSON Lines session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engineConfig(cmd, opts)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("open recording: %w", err)
				}
				defer f.Close()
				r = f
			}
			frames, err := readRecording(r)
			if err != nil {
				return err
			}

			eng, err := pipeline.NewEngine(cfg)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), opts.asJSON, opts.skipGated)
			if err := replay(cmd.Context(), eng, frames, p); err != nil {
				return err
			}
			monitoring.Logf("replayed %d frames from %s: %s", len(frames), input, eng.Meter())
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "recording to replay, - for stdin")
	return cmd
}

// replay feeds recorded frames through eng in order. Frames the engine
// rejects are logged and skipped.
func replay(ctx context.Context, eng *pipeline.Engine, frames []timedSample, p *printer) error {
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := eng.Update(ctx, f.Sample, f.At)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			monitoring.Logf("skipping frame: %v", err)
			continue
		}
		if err := p.print(res); err != nil {
			return err
		}
	}
	return nil
}

func newSynthCmd(opts *rootOptions) *cobra.Command {
	var (
		frames    int
		dt        time.Duration
		frequency float64
		live      bool
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Run the engine over a generated walking skeleton",
		Long: `synth drives the engine with a deterministic walking-in-place skeleton.
By default frames are produced on a simulated clock as fast as possible;
--live paces them on the wall clock instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 {
				return fmt.Errorf("--frames must be positive, got %d", frames)
			}
			if dt <= 0 {
				return fmt.Errorf("--dt must be positive, got %v", dt)
			}
			cfg, err := engineConfig(cmd, opts)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), opts.asJSON, opts.skipGated)

			if live {
				return synthLive(cmd.Context(), cfg, frames, dt, frequency, p)
			}
			return synthSimulated(cmd.Context(), cfg, frames, dt, frequency, p)
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 300, "number of frames to generate")
	cmd.Flags().DurationVar(&dt, "dt", 16*time.Millisecond, "time between frames")
	cmd.Flags().Float64Var(&frequency, "frequency", 0.5, "gait cycle rate in Hz")
	cmd.Flags().BoolVar(&live, "live", false, "pace frames on the wall clock")
	return cmd
}

func synthSimulated(ctx context.Context, cfg pipeline.Config, frames int, dt time.Duration, frequency float64, p *printer) error {
	clock := timeutil.NewSimClock(replayEpoch)
	eng, err := pipeline.NewEngine(cfg,
		pipeline.WithClock(clock),
		pipeline.WithSource(l1pose.NewSyntheticSource(clock, frequency)))
	if err != nil {
		return err
	}

	for i := 0; i < frames; i++ {
		res, err := eng.Step(ctx)
		if err != nil {
			return err
		}
		if err := p.print(res); err != nil {
			return err
		}
		clock.Advance(dt)
	}
	monitoring.Logf("generated %d frames: %s", frames, eng.Meter())
	return nil
}

func synthLive(ctx context.Context, cfg pipeline.Config, frames int, dt time.Duration, frequency float64, p *printer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := timeutil.WallClock{}
	eng, err := pipeline.NewEngine(cfg,
		pipeline.WithClock(clock),
		pipeline.WithSource(l1pose.NewSyntheticSource(clock, frequency)))
	if err != nil {
		return err
	}

	var (
		seen     int
		printErr error
	)
	err = eng.Run(ctx, dt, func(res pipeline.FrameResult) {
		if printErr == nil {
			printErr = p.print(res)
		}
		seen++
		if seen >= frames || printErr != nil {
			cancel()
		}
	})
	monitoring.Logf("generated %d frames: %s", seen, eng.Meter())
	if printErr != nil {
		return printErr
	}
	if errors.Is(err, context.Canceled) && seen >= frames {
		return nil
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
