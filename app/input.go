package app

import (
	"nile/hal"
	"nile/viz/view"
)

func (s *system) drainKeys() {
	in := s.h.Input()
	if in == nil || in.Keyboard() == nil {
		return
	}
	ch := in.Keyboard().Events()
	for {
		select {
		case ev := <-ch:
			if ev.Press {
				s.key(ev.Code)
			}
		default:
			return
		}
	}
}

func (s *system) key(code hal.KeyCode) {
	switch code {
	case hal.KeyTab:
		s.editable = !s.editable
		for _, v := range s.views {
			v.SetEditable(s.editable)
		}
		s.logf("app: editable=%v", s.editable)
	case hal.KeyEscape:
		for _, v := range s.views {
			v.ResetView()
		}
	case hal.KeyF1:
		s.style.HighContrast = !s.style.HighContrast
		for _, v := range s.views {
			v.SetStyle(s.style)
		}
		s.logf("app: high-contrast=%v", s.style.HighContrast)
	}
}

func (s *system) pointer() hal.Pointer {
	in := s.h.Input()
	if in == nil {
		return nil
	}
	return in.Pointer()
}

func (s *system) drainPointer() {
	p := s.pointer()
	if p == nil {
		return
	}
	ch := p.Events()
	for {
		select {
		case ev := <-ch:
			s.dispatch(ev)
		default:
			return
		}
	}
}

// dispatch routes a pointer event. A view that saw the button go down keeps
// receiving motion until release, wherever the pointer is.
func (s *system) dispatch(ev hal.PointerEvent) {
	switch ev.Kind {
	case hal.PointerMove:
		if s.capture != nil {
			s.capture.PointerMove(ev.X, ev.Y, ev.Shift)
		}
		s.track(ev.X, ev.Y)
		if s.capture == nil && s.over != nil {
			s.over.PointerMove(ev.X, ev.Y, ev.Shift)
		}
	case hal.PointerDown:
		s.track(ev.X, ev.Y)
		if s.over != nil {
			s.capture = s.over
			s.capture.PointerDown(ev.X, ev.Y, ev.Shift)
		}
	case hal.PointerUp:
		if s.capture != nil {
			c := s.capture
			s.capture = nil
			c.PointerUp(ev.X, ev.Y, ev.Shift)
		}
	case hal.PointerDoubleClick:
		if s.over != nil {
			s.over.DoubleClick(ev.X, ev.Y, ev.Shift)
		}
	}
}

// track delivers enter and leave as the pointer crosses view borders.
func (s *system) track(x, y int) {
	next := s.viewAt(x, y)
	if next == s.over {
		return
	}
	if s.over != nil {
		s.over.PointerLeave()
	}
	s.over = next
	if next != nil {
		next.PointerEnter(x, y)
	}
}

func (s *system) viewAt(x, y int) *view.View {
	for _, v := range s.views {
		if v.Contains(x, y) {
			return v
		}
	}
	return nil
}

func (s *system) updateCursor() {
	p := s.pointer()
	if p == nil {
		return
	}
	c := hal.CursorDefault
	switch {
	case s.capture != nil:
		c = s.capture.Cursor()
	case s.over != nil:
		c = s.over.Cursor()
	}
	if c == s.cursor {
		return
	}
	s.cursor = c
	p.SetCursor(c)
}
