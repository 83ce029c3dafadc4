// Package sched runs periodic callbacks off a monotonically increasing tick
// counter.
//
// The scheduler never starts goroutines: the owner advances it with TickTo
// from the same goroutine that delivers input, so callbacks never race with
// event handlers. A Timer is cancelled with Stop and is never queued behind
// another timer.
package sched

// maxCatchUp bounds how many periods a single timer may fire in one TickTo
// after the tick source stalled. Remaining periods are skipped.
const maxCatchUp = 8

// Scheduler is a tick clock plus a set of periodic timers.
type Scheduler struct {
	now    uint64
	timers []*Timer
}

// New returns a scheduler at tick 0.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the last tick passed to TickTo.
func (s *Scheduler) Now() uint64 { return s.now }

// Timer is a periodic callback registered with a Scheduler.
type Timer struct {
	period  uint64
	next    uint64
	fn      func()
	stopped bool
}

// Every registers fn to run every period ticks, first at Now()+period.
func (s *Scheduler) Every(period uint64, fn func()) *Timer {
	if period == 0 {
		period = 1
	}
	t := &Timer{period: period, next: s.now + period, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer. It is safe to call on a nil or stopped timer and
// from within the timer's own callback.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.stopped = true
}

// Active reports whether the timer is still scheduled.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// TickTo advances the clock and runs every due timer, in registration order.
// Timers registered by a callback first fire on a later tick.
func (s *Scheduler) TickTo(now uint64) {
	if now < s.now {
		return
	}
	s.now = now

	due := append([]*Timer(nil), s.timers...)
	for _, t := range due {
		for n := 0; !t.stopped && t.next <= now; n++ {
			if n == maxCatchUp {
				t.next = now + t.period
				break
			}
			t.next += t.period
			t.fn()
		}
	}
	s.compact()
}

// Pending returns the number of active timers.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
