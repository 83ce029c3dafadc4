//go:build !tinygo

package hal

import "time"

// maxTicksPerStep bounds the catch-up after the host stalled (window drag,
// debugger). Ticks beyond it are dropped, not queued.
const maxTicksPerStep = 250

// hostTime turns wall-clock progress into a 1 ms tick stream.
type hostTime struct {
	ch    chan uint64
	seq   uint64
	clock func() time.Time

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), clock: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// now returns the last emitted tick.
func (t *hostTime) now() uint64 { return t.seq }

// step emits one tick per elapsed millisecond since the previous call, or n
// ticks on the first call.
func (t *hostTime) step(n uint64) {
	now := t.clock()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / time.Millisecond)
	if ticks == 0 {
		return
	}
	t.acc %= time.Millisecond
	if ticks > maxTicksPerStep {
		t.seq += ticks - maxTicksPerStep
		ticks = maxTicksPerStep
	}
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
