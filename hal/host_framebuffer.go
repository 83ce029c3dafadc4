//go:build !tinygo

package hal

import "sync"

// hostFramebuffer is an in-memory RGB565 framebuffer. Present bumps a frame
// counter so the window only re-uploads pixels that changed.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	frame  uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.frame++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(pixel)
		f.buf[i+1] = byte(pixel >> 8)
	}
}

// snapshotRGBA expands the last presented pixels into dst unless frame is
// already current. It returns the frame dst now holds.
func (f *hostFramebuffer) snapshotRGBA(dst []byte, frame uint64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if frame == f.frame {
		return frame
	}
	expandRGB565(dst, f.buf)
	return f.frame
}
