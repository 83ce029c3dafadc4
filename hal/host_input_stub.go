//go:build !tinygo && !cgo

package hal

// Without the window backend there is no input device: the channels stay
// open and silent so the app's drain loops see nothing.

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 1)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {}

type hostPointer struct {
	ch chan PointerEvent
}

func newHostPointer(_ *hostTime) *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 1)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) SetCursor(Cursor) {}

func (p *hostPointer) poll() {}
