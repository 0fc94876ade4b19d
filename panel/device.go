package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNoData is returned by a byte source when no byte is available
// yet. It's the normal outcome of most polls and is not a transport
// error.
var ErrNoData = errors.New("no data available")

// ResetInput is the reset button. Asserted reports whether it's
// currently pressed, regardless of the electrical polarity.
type ResetInput interface {
	Asserted() bool
}

// Outcome describes what happened during a Step.
type Outcome int

const (
	// OutcomeIdle means no byte was available.
	OutcomeIdle Outcome = iota
	// OutcomeReset means the reset input was asserted, so the
	// indicators were zeroed and the byte source wasn't polled.
	OutcomeReset
	// OutcomeByte means a byte was consumed without completing a packet.
	OutcomeByte
	// OutcomePacket means a byte completed a packet, which was dispatched.
	OutcomePacket
	// OutcomeTransportError means the byte source failed.
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "Idle"
	case OutcomeReset:
		return "Reset"
	case OutcomeByte:
		return "Byte"
	case OutcomePacket:
		return "Packet"
	case OutcomeTransportError:
		return "TransportError"
	}
	return fmt.Sprintf("unknown Outcome %d", int(o))
}

// StepResult reports a single loop iteration.
type StepResult struct {
	Outcome Outcome
	Byte    byte
	// Kind and Applied are only meaningful for OutcomePacket.
	Kind    PacketKind
	Length  int
	Applied bool
	// Err is the transport error for OutcomeTransportError or the
	// display error for OutcomePacket.
	Err error
}

// Peripherals are the hardware the device drives.
type Peripherals struct {
	Source     io.ByteReader
	Reset      ResetInput
	Indicators [IndicatorCount]DutyOutput
	TX         BinaryOutput
	RX         BinaryOutput
	// Activity is on while bytes are being received.
	Activity BinaryOutput
	Display  Surface
}

// Device owns the whole panel state: the decoder, the indicators and
// the renderer. It's meant to be driven by a single goroutine.
type Device struct {
	source   io.ByteReader
	reset    ResetInput
	activity BinaryOutput

	decoder    Decoder
	bank       *IndicatorBank
	flags      *NetworkFlags
	renderer   *Renderer
	dispatcher Dispatcher
}

// NewDevice returns a Device using the given peripherals. The
// indicators start at 0 and the static parts of the display are
// drawn, but not flushed.
func NewDevice(p Peripherals) *Device {
	d := &Device{
		source:   p.Source,
		reset:    p.Reset,
		activity: p.Activity,
		bank:     NewIndicatorBank(p.Indicators[0], p.Indicators[1], p.Indicators[2], p.Indicators[3]),
		flags:    NewNetworkFlags(p.TX, p.RX),
		renderer: NewRenderer(p.Display),
	}
	d.dispatcher = Dispatcher{Bank: d.bank, Flags: d.flags, Renderer: d.renderer}
	d.renderer.DrawChrome()
	return d
}

// Bank returns the indicator bank.
func (d *Device) Bank() *IndicatorBank { return d.bank }

// Flags returns the network flags.
func (d *Device) Flags() *NetworkFlags { return d.flags }

// Renderer returns the renderer.
func (d *Device) Renderer() *Renderer { return d.renderer }

// DecoderStats returns the decoder counters.
func (d *Device) DecoderStats() DecoderStats { return d.decoder.Stats() }

func (d *Device) setActivity(on bool) {
	if d.activity != nil {
		d.activity.Set(on)
	}
}

// SelfTest lights every indicator in turn, shows a checkerboard and
// then restores a blank layout with all indicators off.
func (d *Device) SelfTest() error {
	d.setActivity(true)
	d.flags.Set(true, true)
	for ii := 1; ii <= IndicatorCount; ii++ {
		d.bank.Set(ii, 255)
	}
	if err := d.renderer.DrawTestPattern(); err != nil {
		return err
	}
	d.bank.SetAll(0)
	d.flags.Set(false, false)
	d.setActivity(false)
	d.renderer.DrawChrome()
	return d.renderer.Surface().Flush()
}

// Step runs one iteration of the main loop. It never blocks as
// long as the byte source doesn't.
func (d *Device) Step() StepResult {
	if d.reset != nil && d.reset.Asserted() {
		d.bank.SetAll(0)
		d.setActivity(true)
		return StepResult{Outcome: OutcomeReset}
	}
	b, err := d.source.ReadByte()
	if err != nil {
		d.setActivity(false)
		if errors.Is(err, ErrNoData) {
			return StepResult{Outcome: OutcomeIdle}
		}
		return StepResult{Outcome: OutcomeTransportError, Err: err}
	}
	d.setActivity(true)
	pkt, ok := d.decoder.Submit(b)
	if !ok {
		return StepResult{Outcome: OutcomeByte, Byte: b}
	}
	applied, err := d.dispatcher.Dispatch(pkt)
	return StepResult{
		Outcome: OutcomePacket,
		Byte:    b,
		Kind:    pkt.Kind,
		Length:  len(pkt.Payload),
		Applied: applied,
		Err:     err,
	}
}

// Run calls Step until ctx is done. If observe is not nil, it's
// called with every result other than OutcomeIdle.
func (d *Device) Run(ctx context.Context, observe func(StepResult)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		res := d.Step()
		if observe != nil && res.Outcome != OutcomeIdle {
			observe(res)
		}
	}
}
