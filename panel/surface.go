package panel

import (
	"image"
	"image/color"
)

const (
	// Width of the reference display, in pixels.
	Width = 128
	// Height of the reference display, in pixels.
	Height = 64
)

// Surface is a monochrome pixel display. Drawing only becomes
// visible after Flush.
type Surface interface {
	SetPixel(x int, y int, on bool)
	Flush() error
}

// FlushFunc receives the framebuffer contents on every flush.
// It's called from the goroutine running the device loop and
// must not retain fb.
type FlushFunc func(fb *Framebuffer) error

var _ Surface = (*Framebuffer)(nil)
var _ image.Image = (*Framebuffer)(nil)

// Framebuffer is an in-memory Width x Height Surface. Rows are
// packed 8 pixels per byte, most significant bit first.
type Framebuffer struct {
	pix     [Width * Height / 8]byte
	flushes []FlushFunc
}

// NewFramebuffer returns a cleared Framebuffer that calls the
// given functions, in order, when flushed.
func NewFramebuffer(onFlush ...FlushFunc) *Framebuffer {
	return &Framebuffer{flushes: onFlush}
}

// OnFlush adds a function to call on every flush.
func (fb *Framebuffer) OnFlush(fn FlushFunc) {
	fb.flushes = append(fb.flushes, fn)
}

func (fb *Framebuffer) offset(x int, y int) (int, byte, bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, 0, false
	}
	idx := y*Width + x
	return idx / 8, 0x80 >> uint(idx%8), true
}

// SetPixel implements Surface. Pixels outside the display are ignored.
func (fb *Framebuffer) SetPixel(x int, y int, on bool) {
	off, mask, ok := fb.offset(x, y)
	if !ok {
		return
	}
	if on {
		fb.pix[off] |= mask
	} else {
		fb.pix[off] &^= mask
	}
}

// Pixel reports whether the pixel at x, y is on.
func (fb *Framebuffer) Pixel(x int, y int) bool {
	off, mask, ok := fb.offset(x, y)
	return ok && fb.pix[off]&mask != 0
}

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	fb.pix = [Width * Height / 8]byte{}
}

// Rows returns a copy of the packed pixel data.
func (fb *Framebuffer) Rows() []byte {
	data := make([]byte, len(fb.pix))
	copy(data, fb.pix[:])
	return data
}

// Flush implements Surface, calling every registered FlushFunc.
// It stops at the first error.
func (fb *Framebuffer) Flush() error {
	for _, fn := range fb.flushes {
		if err := fn(fb); err != nil {
			return err
		}
	}
	return nil
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return color.GrayModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, Width, Height) }

// At implements image.Image. Lit pixels are white.
func (fb *Framebuffer) At(x int, y int) color.Color {
	if fb.Pixel(x, y) {
		return color.White
	}
	return color.Black
}

// fillRect sets every pixel in the w x h rectangle at x, y. Empty
// rectangles draw nothing.
func fillRect(s Surface, x int, y int, w int, h int, on bool) {
	for jj := y; jj < y+h; jj++ {
		for ii := x; ii < x+w; ii++ {
			s.SetPixel(ii, jj, on)
		}
	}
}

// strokeRect draws the 1 pixel outline of the w x h rectangle at x, y.
func strokeRect(s Surface, x int, y int, w int, h int, on bool) {
	if w <= 0 || h <= 0 {
		return
	}
	fillRect(s, x, y, w, 1, on)
	fillRect(s, x, y+h-1, w, 1, on)
	fillRect(s, x, y, 1, h, on)
	fillRect(s, x+w-1, y, 1, h, on)
}
