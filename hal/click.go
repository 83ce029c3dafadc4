package hal

// Double-click thresholds.
const (
	doubleClickTicks = 400
	doubleClickSlop  = 4
)

// clickTracker recognizes a second press close in time and space to the
// previous one. A recognized double click resets the tracker so a third
// press starts over.
type clickTracker struct {
	armed bool
	tick  uint64
	x, y  int
}

// press records a press at tick and reports whether it completes a double
// click.
func (c *clickTracker) press(tick uint64, x, y int) bool {
	if c.armed && tick-c.tick <= doubleClickTicks && abs(x-c.x) <= doubleClickSlop && abs(y-c.y) <= doubleClickSlop {
		c.armed = false
		return true
	}
	c.armed = true
	c.tick = tick
	c.x, c.y = x, y
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
