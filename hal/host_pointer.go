//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch     chan PointerEvent
	t      *hostTime
	clicks clickTracker

	x, y   int
	seen   bool
	cursor Cursor
}

func newHostPointer(t *hostTime) *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 256), t: t}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) SetCursor(c Cursor) { p.cursor = c }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// poll turns the current mouse state into events. Motion is reported
// before button transitions at the same position.
func (p *hostPointer) poll() {
	x, y := ebiten.CursorPosition()
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	if !p.seen || x != p.x || y != p.y {
		p.seen = true
		p.x, p.y = x, y
		p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y, Shift: shift})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerDown, X: x, Y: y, Shift: shift})
		if p.clicks.press(p.t.now(), x, y) {
			p.emit(PointerEvent{Kind: PointerDoubleClick, X: x, Y: y, Shift: shift})
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerUp, X: x, Y: y, Shift: shift})
	}

	ebiten.SetCursorShape(cursorShape(p.cursor))
}

func cursorShape(c Cursor) ebiten.CursorShapeType {
	switch c {
	case CursorMove:
		return ebiten.CursorShapeMove
	case CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	case CursorRowResize:
		return ebiten.CursorShapeNSResize
	default:
		return ebiten.CursorShapeDefault
	}
}
