package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
	"github.com/banshee-data/tau.report/internal/timeutil"
)

// Sink receives every frame result produced by Run.
type Sink func(FrameResult)

// Run steps the engine on every tick of interval until ctx is cancelled or
// the source is exhausted. Rejected frames are logged and skipped.
func (e *Engine) Run(ctx context.Context, interval time.Duration, sink Sink) error {
	ticker := e.clock.NewFrameTicker(interval)
	defer ticker.Stop()
	return e.RunTicker(ctx, ticker, sink)
}

// RunTicker is Run driven by an existing ticker. Source exhaustion ends the
// loop without error.
func (e *Engine) RunTicker(ctx context.Context, ticker timeutil.FrameTicker, sink Sink) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
		}

		res, err := e.Step(ctx)
		switch {
		case errors.Is(err, l1pose.ErrNoSample):
			logs.Diagf("source exhausted after %d frames: %s", e.Frames(), e.Meter())
			return nil
		case errors.Is(err, ErrNoSource),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			// Invalid input costs one frame, not the session.
			logs.Opsf("step failed: %v", err)
			continue
		}
		if sink != nil {
			sink(res)
		}
	}
}
