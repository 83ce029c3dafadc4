package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"nile/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// PanicError is returned by a step that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("viewer panic: %v", e.Value) }

// Unwrap exposes a panicking error value, such as a stale index.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// guard converts a panic in step into a PanicError, after logging it and
// painting it on the framebuffer.
func guard(h hal.HAL, step func() error) func() error {
	return func() (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			pe := &PanicError{Value: r, Stack: debug.Stack()}
			reportPanic(h, pe)
			err = pe
		}()
		return step()
	}
}

func reportPanic(h hal.HAL, pe *PanicError) {
	var stack []string
	for _, line := range strings.Split(string(pe.Stack), "\n") {
		if line != "" {
			stack = append(stack, line)
		}
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString(pe.Error())
		for _, line := range stack {
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	const lineHeight, baseline = 10, 8
	_, outbox := tinyfont.LineWidth(font, "0")
	fontWidth := int(outbox)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}
	cols := fb.Width() / fontWidth
	if cols <= 0 {
		cols = 1
	}

	lines := []string{"Viewer panic:", fmt.Sprintf("panic: %v", pe.Value)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		lines = append(lines, stack...)
	} else {
		lines = append(lines, "stack: unavailable")
	}

	d := panicDisplay{fb: fb}
	fg := color.RGBA{A: 255}
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+lineHeight > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, int16(y+baseline), chunk, fg)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }

// takeRunes splits s after n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
