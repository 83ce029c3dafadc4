//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func TestHostFramebufferSnapshotFollowsPresent(t *testing.T) {
	fb := newHostFramebuffer(3, 2)
	if fb.StrideBytes() != 6 || len(fb.Buffer()) != 12 {
		t.Fatalf("stride = %d len = %d", fb.StrideBytes(), len(fb.Buffer()))
	}
	dst := make([]byte, 3*2*4)
	if got := fb.snapshotRGBA(dst, 0); got != 0 || dst[3] != 0 {
		t.Fatalf("snapshot before present: frame %d alpha %d", got, dst[3])
	}

	fb.ClearRGB(0xff, 0, 0)
	_ = fb.Present()
	frame := fb.snapshotRGBA(dst, 0)
	if frame != 1 {
		t.Fatalf("frame = %d", frame)
	}
	for i := 0; i < len(dst); i += 4 {
		if dst[i] != 0xff || dst[i+1] != 0 || dst[i+2] != 0 || dst[i+3] != 0xff {
			t.Fatalf("pixel %d = %v", i/4, dst[i:i+4])
		}
	}

	fb.ClearRGB(0, 0, 0)
	if fb.snapshotRGBA(dst, frame) != frame || dst[0] != 0xff {
		t.Fatal("unpresented pixels leaked into the snapshot")
	}
}

func TestHostTimeTicksPerMillisecond(t *testing.T) {
	now := time.Unix(100, 0)
	ht := newHostTime()
	ht.clock = func() time.Time { return now }

	ht.step(1)
	now = now.Add(2500 * time.Microsecond)
	ht.step(1)
	now = now.Add(600 * time.Microsecond)
	ht.step(1)
	if ht.now() != 4 {
		t.Fatalf("now = %d, want 4", ht.now())
	}
	if n := len(ht.Ticks()); n != 4 {
		t.Fatalf("queued = %d", n)
	}
}

func TestHostTimeDropsStall(t *testing.T) {
	now := time.Unix(100, 0)
	ht := newHostTime()
	ht.clock = func() time.Time { return now }
	ht.step(1)
	now = now.Add(5 * time.Second)
	ht.step(1)
	if ht.now() != 5001 {
		t.Fatalf("now = %d", ht.now())
	}
	if n := len(ht.Ticks()); n != 1+maxTicksPerStep {
		t.Fatalf("queued = %d", n)
	}
}
