// Package sink provides flush targets that show or record a
// panel.Framebuffer.
package sink

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/icza/bitio"

	"loadpanel/panel"
)

const (
	ansiHome = "\x1b[H"
)

// Half block characters, indexed by top pixel | bottom pixel << 1.
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// Terminal draws the framebuffer on w using half block characters,
// two pixel rows per line. If home is true, the cursor is moved to
// the top left corner first so frames overwrite each other.
func Terminal(w io.Writer, home bool) panel.FlushFunc {
	return func(fb *panel.Framebuffer) error {
		bw := bufio.NewWriter(w)
		if home {
			bw.WriteString(ansiHome)
		}
		for y := 0; y < panel.Height; y += 2 {
			for x := 0; x < panel.Width; x++ {
				idx := 0
				if fb.Pixel(x, y) {
					idx |= 1
				}
				if fb.Pixel(x, y+1) {
					idx |= 2
				}
				bw.WriteString(halfBlocks[idx])
			}
			bw.WriteByte('\n')
		}
		return bw.Flush()
	}
}

// WritePBM writes fb as a binary PBM image. Lit pixels are written
// as ink.
func WritePBM(w io.Writer, fb *panel.Framebuffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P4\n%d %d\n", panel.Width, panel.Height)
	bits := bitio.NewWriter(bw)
	for y := 0; y < panel.Height; y++ {
		for x := 0; x < panel.Width; x++ {
			if err := bits.WriteBool(fb.Pixel(x, y)); err != nil {
				return err
			}
		}
	}
	if err := bits.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

// PBM writes one PBM image to w per flush, producing a stream of
// concatenated images.
func PBM(w io.Writer) panel.FlushFunc {
	return func(fb *panel.Framebuffer) error {
		return WritePBM(w, fb)
	}
}

// WritePNG writes img as a PNG file at path. The file is replaced
// atomically, so readers never see a partial image.
func WritePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".panel-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// PNG writes the framebuffer to path on every flush.
func PNG(path string) panel.FlushFunc {
	return func(fb *panel.Framebuffer) error {
		return WritePNG(path, fb)
	}
}

// Every calls fn only on every nth flush, starting with the first.
func Every(n int, fn panel.FlushFunc) panel.FlushFunc {
	count := 0
	return func(fb *panel.Framebuffer) error {
		count++
		if n > 1 && (count-1)%n != 0 {
			return nil
		}
		return fn(fb)
	}
}
