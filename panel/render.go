package panel

const (
	// PlotTop is the first row of the bar area.
	PlotTop = 8
	// PlotBottom is the last row of the bar area.
	PlotBottom = 62
	// MaxBarHeight is the tallest bar, in pixels above PlotBottom.
	MaxBarHeight = PlotBottom - PlotTop

	labelY = 1

	cpuBarX       = 2
	cpuBarStride  = 20
	cpuBarWidth   = 15
	netTXX        = 104
	netRXX        = 116
	netBarWidth   = 10
	netFineWidth  = 3
	netWideWidth  = netBarWidth - netFineWidth
	livenessX     = 88
	livenessY     = labelY
	livenessShape = "+x"
)

const (
	// FrameSize is the length of a RenderFrame payload.
	FrameSize = 8
	// LegacyFrameSize is the length of a RenderFrame payload from
	// hosts that send a single value per network direction.
	LegacyFrameSize = 6
)

// Frame holds the values for one render pass.
type Frame struct {
	CPU    [IndicatorCount]uint8
	TXFine uint8
	RXFine uint8
	TXWide uint8
	RXWide uint8
	// Legacy frames carry one value per network direction, stored
	// in TXFine and RXFine and drawn across the whole column.
	Legacy bool
}

// ParseFrame decodes a RenderFrame payload. It returns false if the
// payload length is neither FrameSize nor LegacyFrameSize.
func ParseFrame(payload []byte) (Frame, bool) {
	var f Frame
	switch len(payload) {
	case FrameSize:
		f.TXWide, f.RXWide = payload[6], payload[7]
	case LegacyFrameSize:
		f.Legacy = true
	default:
		return f, false
	}
	copy(f.CPU[:], payload[:IndicatorCount])
	f.TXFine, f.RXFine = payload[4], payload[5]
	return f, true
}

// ByteToHeight maps an 8 bit value to a bar height. It keeps the 6
// most significant bits, so 256 input levels map to 64 heights, and
// clamps the result to max.
func ByteToHeight(value uint8, max int) int {
	t := int(value >> 2)
	if t > max {
		return max
	}
	return t
}

// CPUBarX returns the left column of the CPU bar for index 1 to 4.
func CPUBarX(index int) int {
	return cpuBarX + (index-1)*cpuBarStride
}

// Renderer draws the panel layout on a Surface.
type Renderer struct {
	surface Surface
	passes  uint32
}

// NewRenderer returns a Renderer drawing on s. It doesn't draw
// anything until DrawChrome or DrawFrame are called.
func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

// Surface returns the surface the renderer draws on.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Passes returns how many frames have been drawn.
func (r *Renderer) Passes() uint32 {
	return r.passes
}

// DrawChrome draws the parts of the layout that never change: the
// border and the column labels. It doesn't flush.
func (r *Renderer) DrawChrome() {
	s := r.surface
	fillRect(s, 0, 0, Width, Height, false)
	strokeRect(s, 0, 0, Width, Height, true)
	for ii := 1; ii <= IndicatorCount; ii++ {
		drawText(s, CPUBarX(ii), labelY, "CPU"+string(rune('0'+ii)))
	}
	drawText(s, netTXX, labelY, "TX")
	drawText(s, netRXX, labelY, "RX")
}

// DrawFrame advances the liveness glyph, redraws every bar from f
// and flushes the surface.
func (r *Renderer) DrawFrame(f Frame) error {
	r.passes++
	drawGlyph(r.surface, livenessX, livenessY, livenessShape[r.passes%2])
	for ii, v := range f.CPU {
		r.drawBar(CPUBarX(ii+1), cpuBarWidth, v)
	}
	if f.Legacy {
		r.drawBar(netTXX, netBarWidth, f.TXFine)
		r.drawBar(netRXX, netBarWidth, f.RXFine)
	} else {
		r.drawBar(netTXX, netFineWidth, f.TXFine)
		r.drawBar(netTXX+netFineWidth, netWideWidth, f.TXWide)
		r.drawBar(netRXX, netFineWidth, f.RXFine)
		r.drawBar(netRXX+netFineWidth, netWideWidth, f.RXWide)
	}
	return r.surface.Flush()
}

// drawBar draws a w pixel wide bar for value at column x. The bar
// is h+1 pixels tall and sits on PlotBottom, with the area above it
// cleared up to PlotTop. A height of 0 draws no bar at all.
func (r *Renderer) drawBar(x int, w int, value uint8) {
	h := ByteToHeight(value, MaxBarHeight)
	if h == 0 {
		fillRect(r.surface, x, PlotTop, w, MaxBarHeight+1, false)
		return
	}
	fillRect(r.surface, x, PlotTop, w, MaxBarHeight-h, false)
	fillRect(r.surface, x, PlotBottom-h, w, h+1, true)
}

// DrawTestPattern fills the surface with a checkerboard and
// flushes it.
func (r *Renderer) DrawTestPattern() error {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r.surface.SetPixel(x, y, (x+y)%2 == 0)
		}
	}
	return r.surface.Flush()
}
