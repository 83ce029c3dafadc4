//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	HostConfig

	Enabled bool

	// Hz is how often the app step runs. Scheduler time still advances in
	// wall-clock milliseconds, so tweens keep their duration at any rate.
	Hz int

	// Frames stops the runner after that many steps. Zero runs until ctx
	// is done.
	Frames uint64
}

// RunHeadless drives the viewer without a window: no pointer or keyboard
// events arrive, but ticks, rendering and presentation run as in the
// window. It returns nil after cfg.Frames steps, ctx.Err() when ctx is
// done, or the first error a step returns.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("headless: invalid rate %d Hz", cfg.Hz)
	}

	h := newHost(cfg.HostConfig)
	step := newApp(h)

	t := time.NewTicker(period)
	defer t.Stop()
	return runFrames(ctx, t.C, h.t, step, cfg.Frames)
}

// runFrames advances the host clock and calls step once per frame signal.
func runFrames(ctx context.Context, frames <-chan time.Time, clock *hostTime, step func() error, limit uint64) error {
	for n := uint64(0); limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames:
		}
		clock.step(1)
		if step == nil {
			continue
		}
		if err := step(); err != nil {
			return fmt.Errorf("headless: frame %d: %w", n, err)
		}
	}
	return nil
}
