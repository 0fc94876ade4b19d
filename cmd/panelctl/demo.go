package main

import (
	"time"

	"loadpanel/internal/link"
	"loadpanel/panel"
)

// triangle returns a triangle wave between 0 and 255 with the given
// period in steps.
func triangle(step int, period int) uint8 {
	half := period / 2
	pos := step % period
	if pos > half {
		pos = period - pos
	}
	return uint8(pos * 255 / half)
}

// demoFrame returns the frame shown at step of the demo. Every bar
// follows its own wave so they never line up.
func demoFrame(step int) panel.Frame {
	var f panel.Frame
	for ii := range f.CPU {
		f.CPU[ii] = triangle(step+ii*7, 40)
	}
	f.TXFine = triangle(step, 10)
	f.RXFine = triangle(step+5, 10)
	f.TXWide = triangle(step, 60)
	f.RXWide = triangle(step+30, 60)
	return f
}

func runDemo(s *link.Sender, frames int, interval time.Duration) error {
	for step := 0; step < frames; step++ {
		f := demoFrame(step)
		packets := []panel.Packet{
			panel.SetIndicatorsPacket(f.CPU[0], f.CPU[1], f.CPU[2], f.CPU[3]),
			panel.NetworkStatePacket(f.TXFine > 127, f.RXFine > 127),
			panel.RenderFramePacket(f),
		}
		for _, p := range packets {
			if err := s.Send(p); err != nil {
				return err
			}
		}
		if step < frames-1 {
			time.Sleep(interval)
		}
	}
	return s.Send(panel.ResetPacket())
}
