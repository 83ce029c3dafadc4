// Package anim implements the fixed-tick tweens used by the viewer: an
// exponential approach for view state and a linear fade for opacity.
package anim

import "nile/viz/sched"

// Period is the tween tick in scheduler ticks (milliseconds on host).
const Period = 1000 / 30

// Approach speeds.
const (
	TransformSpeed = 0.3
	BoundsSpeed    = 0.5
)

const (
	ticksPerDuration = 30
	snapProgress     = 0.8
)

// Approach is an exponential approach: every tick current moves by speed
// times the remaining distance. Once progress passes 80% of the nominal
// duration the speed snaps to 1, so the tween lands on its target after a
// bounded number of ticks.
type Approach struct {
	speed float64
	ticks int
	done  bool
}

// NewApproach returns an approach starting at the given speed.
func NewApproach(speed float64) *Approach {
	return &Approach{speed: speed}
}

// Next advances one tick and returns the speed to apply on it.
func (a *Approach) Next() float64 {
	if a.done {
		return 1
	}
	a.ticks++
	if float64(a.ticks)/ticksPerDuration > snapProgress {
		a.speed = 1
		a.done = true
	}
	return a.speed
}

// Done reports whether the last tick has been produced.
func (a *Approach) Done() bool { return a.done }

// Toward moves cur toward target by speed. A speed of 1 or more returns
// target exactly.
func Toward(cur, target, speed float64) float64 {
	if speed >= 1 {
		return target
	}
	return cur + speed*(target-cur)
}

// Fade is a linear interpolation over an explicit duration.
type Fade struct {
	from, to float64
	step     float64
	progress float64
}

// NewFade returns a fade from -> to over duration scheduler ticks.
func NewFade(from, to float64, duration uint64) *Fade {
	f := &Fade{from: from, to: to, step: 1}
	if duration > 0 {
		f.step = float64(Period) / float64(duration)
	}
	return f
}

// Next advances one tick and returns the new value. The final value is
// exactly the target.
func (f *Fade) Next() float64 {
	f.progress += f.step
	if f.progress >= 1 {
		f.progress = 1
		return f.to
	}
	return f.from + (f.to-f.from)*f.progress
}

// Done reports whether the fade reached its target.
func (f *Fade) Done() bool { return f.progress >= 1 }

// Slot owns at most one running tween of a kind. Starting a new tween
// cancels the previous one immediately; nothing is queued or blended.
type Slot struct {
	timer *sched.Timer
}

// Start cancels any running tween and schedules step every Period ticks
// until it returns false.
func (s *Slot) Start(sc *sched.Scheduler, step func() bool) {
	s.Stop()
	var t *sched.Timer
	t = sc.Every(Period, func() {
		if !step() {
			t.Stop()
		}
	})
	s.timer = t
}

// Stop cancels the running tween, if any.
func (s *Slot) Stop() {
	s.timer.Stop()
	s.timer = nil
}

// Running reports whether a tween is scheduled.
func (s *Slot) Running() bool {
	return s.timer.Active()
}
