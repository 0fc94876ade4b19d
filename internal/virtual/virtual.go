// Package virtual implements the panel peripherals in memory, so a
// panel.Device can run on a host while a UI reads its outputs.
package virtual

import (
	"sync/atomic"

	"loadpanel/panel"
)

// Duty is a virtual PWM output.
type Duty struct {
	value   atomic.Uint32
	changed func()
}

// SetDuty implements panel.DutyOutput.
func (d *Duty) SetDuty(duty uint8) {
	if old := d.value.Swap(uint32(duty)); old != uint32(duty) && d.changed != nil {
		d.changed()
	}
}

// Duty returns the current duty, 0 to 255.
func (d *Duty) Duty() uint8 {
	return uint8(d.value.Load())
}

// Pin is a virtual binary output.
type Pin struct {
	on      atomic.Bool
	changed func()
}

// Set implements panel.BinaryOutput.
func (p *Pin) Set(on bool) {
	if old := p.on.Swap(on); old != on && p.changed != nil {
		p.changed()
	}
}

// On reports whether the output is on.
func (p *Pin) On() bool {
	return p.on.Load()
}

// Button is a virtual reset button.
type Button struct {
	pressed atomic.Bool
}

// Asserted implements panel.ResetInput.
func (b *Button) Asserted() bool {
	return b.pressed.Load()
}

// Press holds the button down until Release.
func (b *Button) Press() {
	b.pressed.Store(true)
}

// Release lets the button go.
func (b *Button) Release() {
	b.pressed.Store(false)
}

// State is a snapshot of every output.
type State struct {
	Duties   [panel.IndicatorCount]uint8
	TX       bool
	RX       bool
	Activity bool
	Reset    bool
}

// Board groups the virtual peripherals of a panel. Its outputs can
// be read from any goroutine while the device loop writes them.
type Board struct {
	Indicators [panel.IndicatorCount]Duty
	TX         Pin
	RX         Pin
	Activity   Pin
	Button     Button

	changes chan struct{}
}

// NewBoard returns a Board with every output off.
func NewBoard() *Board {
	b := &Board{changes: make(chan struct{}, 1)}
	for ii := range b.Indicators {
		b.Indicators[ii].changed = b.notify
	}
	b.TX.changed = b.notify
	b.RX.changed = b.notify
	b.Activity.changed = b.notify
	return b
}

func (b *Board) notify() {
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

// Changes receives a value after one or more outputs changed.
// Changes that happen before the previous one is received are
// coalesced.
func (b *Board) Changes() <-chan struct{} {
	return b.changes
}

// Peripherals returns the panel peripherals backed by the board.
// Source and Display are left for the caller to fill.
func (b *Board) Peripherals() panel.Peripherals {
	p := panel.Peripherals{
		Reset:    &b.Button,
		TX:       &b.TX,
		RX:       &b.RX,
		Activity: &b.Activity,
	}
	for ii := range b.Indicators {
		p.Indicators[ii] = &b.Indicators[ii]
	}
	return p
}

// State returns the current value of every output.
func (b *Board) State() State {
	s := State{
		TX:       b.TX.On(),
		RX:       b.RX.On(),
		Activity: b.Activity.On(),
		Reset:    b.Button.Asserted(),
	}
	for ii := range b.Indicators {
		s.Duties[ii] = b.Indicators[ii].Duty()
	}
	return s
}
