package sched

import "testing"

func TestEveryFiresOnPeriod(t *testing.T) {
	s := New()
	n := 0
	s.Every(10, func() { n++ })

	s.TickTo(9)
	if n != 0 {
		t.Fatalf("fired %d times before first period", n)
	}
	s.TickTo(10)
	if n != 1 {
		t.Fatalf("fired %d times at tick 10, want 1", n)
	}
	s.TickTo(35)
	if n != 3 {
		t.Fatalf("fired %d times by tick 35, want 3", n)
	}
}

func TestStopFromCallback(t *testing.T) {
	s := New()
	n := 0
	var tm *Timer
	tm = s.Every(1, func() {
		n++
		if n == 2 {
			tm.Stop()
		}
	})
	s.TickTo(10)
	if n != 2 {
		t.Fatalf("fired %d times, want 2", n)
	}
	if tm.Active() || s.Pending() != 0 {
		t.Fatalf("timer still active: active=%v pending=%d", tm.Active(), s.Pending())
	}
}

func TestCatchUpIsBounded(t *testing.T) {
	s := New()
	n := 0
	s.Every(1, func() { n++ })
	s.TickTo(1000)
	if n != maxCatchUp {
		t.Fatalf("fired %d times after stall, want %d", n, maxCatchUp)
	}
	s.TickTo(1001)
	if n != maxCatchUp+1 {
		t.Fatalf("fired %d times, want %d", n, maxCatchUp+1)
	}
}

func TestTimerAddedInCallbackWaits(t *testing.T) {
	s := New()
	inner := 0
	var outer *Timer
	outer = s.Every(5, func() {
		outer.Stop()
		s.Every(5, func() { inner++ })
	})
	s.TickTo(5)
	if inner != 0 {
		t.Fatalf("inner fired on the tick it was created")
	}
	s.TickTo(10)
	if inner != 1 {
		t.Fatalf("inner fired %d times, want 1", inner)
	}
}

func TestNilTimerStop(t *testing.T) {
	var tm *Timer
	tm.Stop()
	if tm.Active() {
		t.Fatal("nil timer active")
	}
}
