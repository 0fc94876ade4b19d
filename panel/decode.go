package panel

import "fmt"

type decoderState int

const (
	stateAwaitingIdentifier decoderState = iota
	stateAwaitingLength
	stateAccumulatingPayload
)

func (s decoderState) String() string {
	switch s {
	case stateAwaitingIdentifier:
		return "AwaitingIdentifier"
	case stateAwaitingLength:
		return "AwaitingLength"
	case stateAccumulatingPayload:
		return "AccumulatingPayload"
	}
	return fmt.Sprintf("unknown decoderState %d", int(s))
}

// DecoderStats counts what a Decoder did with its input.
type DecoderStats struct {
	Packets      uint32
	Unrecognized uint32
	Oversize     uint32
}

// Decoder turns a byte stream into packets. The zero value is
// ready to use.
//
// Framing errors are not reported: an unknown identifier byte is
// skipped and an oversize length aborts the frame. In both cases
// the decoder waits for the next byte that looks like an identifier,
// so a stream that lost sync may decode payload bytes as identifiers
// until it happens to line up again.
type Decoder struct {
	state    decoderState
	kind     PacketKind
	expected int
	count    int
	buf      [Capacity]byte
	stats    DecoderStats
}

// Submit feeds one byte to the decoder. When the byte completes a
// frame, the packet is returned along with true. The returned payload
// is a view into the decoder's buffer, valid until the next Submit.
func (d *Decoder) Submit(b byte) (Packet, bool) {
	switch d.state {
	case stateAwaitingIdentifier:
		kind := KindFromByte(b)
		if kind == KindUnrecognized {
			d.stats.Unrecognized++
			break
		}
		d.kind = kind
		d.state = stateAwaitingLength
	case stateAwaitingLength:
		switch {
		case int(b) > Capacity:
			d.stats.Oversize++
			d.state = stateAwaitingIdentifier
		case b == 0:
			d.state = stateAwaitingIdentifier
			return d.emit(0), true
		default:
			d.expected = int(b)
			d.count = 0
			d.state = stateAccumulatingPayload
		}
	case stateAccumulatingPayload:
		d.buf[d.count] = b
		d.count++
		if d.count == d.expected {
			d.state = stateAwaitingIdentifier
			return d.emit(d.expected), true
		}
	default:
		panic(fmt.Errorf("invalid decoder state %d", d.state))
	}
	return Packet{}, false
}

func (d *Decoder) emit(n int) Packet {
	d.stats.Packets++
	return Packet{Kind: d.kind, Payload: d.buf[:n:n]}
}

// Pending reports whether a frame is partially received.
func (d *Decoder) Pending() bool {
	return d.state != stateAwaitingIdentifier
}

// Stats returns the decoder counters.
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}
