package panel

import (
	"bytes"

	"github.com/icza/bitio"
)

const (
	// GlyphWidth is the width of a character cell, including spacing.
	GlyphWidth = 4
	// GlyphHeight is the height of a character cell, including spacing.
	GlyphHeight = 6
)

// Each glyph is a 4x6 cell, one bit per pixel, row major with the
// most significant bit on the left. Glyphs use the top left 3x5
// pixels, leaving a blank column and row as spacing.
var glyphs = map[byte][3]byte{
	'0': {0xea, 0xaa, 0xe0},
	'1': {0x4c, 0x44, 0xe0},
	'2': {0xc2, 0x48, 0xe0},
	'3': {0xc2, 0x42, 0xc0},
	'4': {0xaa, 0xe2, 0x20},
	'5': {0xe8, 0xc2, 0xc0},
	'6': {0x68, 0xea, 0xe0},
	'7': {0xe2, 0x44, 0x40},
	'8': {0xea, 0xea, 0xe0},
	'9': {0xea, 0xe2, 0xc0},
	'C': {0x68, 0x88, 0x60},
	'P': {0xca, 0xc8, 0x80},
	'R': {0xca, 0xca, 0xa0},
	'T': {0xe4, 0x44, 0x40},
	'U': {0xaa, 0xaa, 0xe0},
	'X': {0xaa, 0x4a, 0xa0},
	'+': {0x04, 0xe4, 0x00},
	'x': {0x0a, 0x4a, 0x00},
}

// drawGlyph draws the whole cell for c with its top left corner at
// x, y, so it overwrites whatever was there. Characters without a
// glyph draw an empty cell.
func drawGlyph(s Surface, x int, y int, c byte) {
	data := glyphs[c]
	r := bitio.NewReader(bytes.NewReader(data[:]))
	for jj := 0; jj < GlyphHeight; jj++ {
		for ii := 0; ii < GlyphWidth; ii++ {
			on, err := r.ReadBool()
			if err != nil {
				// Can't happen, the cell is exactly 3 bytes
				return
			}
			s.SetPixel(x+ii, y+jj, on)
		}
	}
}

// drawText draws s starting at x, y, one cell per byte.
func drawText(s Surface, x int, y int, text string) {
	for ii := 0; ii < len(text); ii++ {
		drawGlyph(s, x+ii*GlyphWidth, y, text[ii])
	}
}
