package main

import (
	"image"
	"image/color"

	"fyne.io/fyne"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/layout"

	"loadpanel/panel"
)

const (
	displayScale = 4
	ledSize      = 20
)

var (
	displayOn  = color.RGBA{R: 0xa8, G: 0xe0, B: 0xff, A: 0xff}
	displayOff = color.RGBA{R: 0x0a, G: 0x0e, B: 0x14, A: 0xff}
)

// PanelImage is a convenience type wrapping a canvas.Image
// that shows a panel display, scaled up.
type PanelImage struct {
	canvas.Image
}

// SetFrame updates the image from a Width x Height frame. A nil
// frame shows a blank display.
func (i *PanelImage) SetFrame(frame image.Image) {
	img := image.NewRGBA(image.Rect(0, 0, panel.Width*displayScale, panel.Height*displayScale))
	for jj := 0; jj < panel.Height; jj++ {
		for ii := 0; ii < panel.Width; ii++ {
			c := displayOff
			if frame != nil {
				if g := color.GrayModel.Convert(frame.At(ii, jj)).(color.Gray); g.Y > 127 {
					c = displayOn
				}
			}
			for y := jj * displayScale; y < (jj+1)*displayScale; y++ {
				for x := ii * displayScale; x < (ii+1)*displayScale; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
	i.Image.Image = img
	i.Image.Refresh()
}

// NewPanelImage returns a *PanelImage ready to be used
func NewPanelImage() *PanelImage {
	pi := &PanelImage{}
	pi.Image.FillMode = canvas.ImageFillContain
	pi.SetMinSize(fyne.NewSize(panel.Width*displayScale, panel.Height*displayScale))
	pi.SetFrame(nil)
	return pi
}

// LED is a round light whose brightness can be set.
type LED struct {
	circle  *canvas.Circle
	color   color.RGBA
	content *fyne.Container
}

// NewLED returns an LED of the given color, initially off.
func NewLED(c color.RGBA) *LED {
	l := &LED{color: c}
	l.circle = canvas.NewCircle(ledLevelColor(c, 0))
	l.circle.StrokeColor = color.Gray{Y: 0x40}
	l.circle.StrokeWidth = 1
	l.content = fyne.NewContainerWithLayout(layout.NewFixedGridLayout(fyne.NewSize(ledSize, ledSize)), l.circle)
	return l
}

// ledLevelColor scales c by level, keeping a dim glow when off so
// the LED stays visible.
func ledLevelColor(c color.RGBA, level uint8) color.RGBA {
	const glow = 24
	scale := func(v uint8) uint8 {
		return uint8(glow + (int(v)-glow)*int(level)/255)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 0xff}
}

// SetLevel sets the brightness, 0 to 255.
func (l *LED) SetLevel(level uint8) {
	l.circle.FillColor = ledLevelColor(l.color, level)
	canvas.Refresh(l.circle)
}

// SetOn turns the LED fully on or off.
func (l *LED) SetOn(on bool) {
	if on {
		l.SetLevel(255)
	} else {
		l.SetLevel(0)
	}
}

// Content returns the object to add to a container.
func (l *LED) Content() fyne.CanvasObject {
	return l.content
}
