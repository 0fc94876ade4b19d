package panel

import (
	"errors"
	"fmt"
	"io"
)

// Capacity is the largest payload a packet can carry.
const Capacity = 32

var (
	// ErrPayloadTooLarge is returned when encoding a packet whose
	// payload doesn't fit in Capacity bytes.
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrUnrecognizedKind is returned when encoding a packet with
	// a kind that has no wire identifier.
	ErrUnrecognizedKind = errors.New("unrecognized packet kind")
)

// PacketKind identifies a packet on the wire.
type PacketKind byte

const (
	// KindReset zeroes all the indicators. Its payload is ignored.
	KindReset PacketKind = 0x00
	// KindSetIndicators sets the four indicator duties.
	KindSetIndicators PacketKind = 0x01
	// KindNetworkState sets the tx/rx activity outputs.
	KindNetworkState PacketKind = 0x02
	// KindRenderFrame redraws the metric bars.
	KindRenderFrame PacketKind = 0x03
	// KindUnrecognized is used by the decoder for identifier bytes
	// it doesn't know. It's never part of an emitted Packet.
	KindUnrecognized PacketKind = 0xFF
)

// KindFromByte maps a wire identifier to its kind. Unknown
// identifiers map to KindUnrecognized.
func KindFromByte(b byte) PacketKind {
	switch PacketKind(b) {
	case KindReset:
		return KindReset
	case KindSetIndicators:
		return KindSetIndicators
	case KindNetworkState:
		return KindNetworkState
	case KindRenderFrame:
		return KindRenderFrame
	}
	return KindUnrecognized
}

// Valid reports whether k has a wire identifier.
func (k PacketKind) Valid() bool {
	return k != KindUnrecognized && KindFromByte(byte(k)) == k
}

func (k PacketKind) String() string {
	switch k {
	case KindReset:
		return "Reset"
	case KindSetIndicators:
		return "SetIndicators"
	case KindNetworkState:
		return "NetworkState"
	case KindRenderFrame:
		return "RenderFrame"
	case KindUnrecognized:
		return "Unrecognized"
	}
	return fmt.Sprintf("unknown PacketKind 0x%02x", byte(k))
}

// Packet is a decoded frame. When produced by a Decoder, Payload
// aliases the decoder's buffer and is only valid until the next
// call to Decoder.Submit.
type Packet struct {
	Kind    PacketKind
	Payload []byte
}

func (p Packet) String() string {
	return fmt.Sprintf("%s%v", p.Kind, p.Payload)
}

// AppendPacket appends the wire encoding of a packet with the given
// kind and payload to dst.
func AppendPacket(dst []byte, kind PacketKind, payload []byte) ([]byte, error) {
	if !kind.Valid() {
		return dst, ErrUnrecognizedKind
	}
	if len(payload) > Capacity {
		return dst, fmt.Errorf("%s with %d bytes: %w", kind, len(payload), ErrPayloadTooLarge)
	}
	dst = append(dst, byte(kind), byte(len(payload)))
	return append(dst, payload...), nil
}

// Bytes returns the wire encoding of the packet.
func (p Packet) Bytes() ([]byte, error) {
	return AppendPacket(make([]byte, 0, 2+len(p.Payload)), p.Kind, p.Payload)
}

// WriteTo writes the wire encoding of the packet to w.
func (p Packet) WriteTo(w io.Writer) (int64, error) {
	data, err := p.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ResetPacket returns a zero-length Reset packet.
func ResetPacket() Packet {
	return Packet{Kind: KindReset}
}

// SetIndicatorsPacket returns a packet setting the four indicator duties.
func SetIndicatorsPacket(a, b, c, d uint8) Packet {
	return Packet{Kind: KindSetIndicators, Payload: []byte{a, b, c, d}}
}

// NetworkStatePacket returns a packet setting the tx/rx activity outputs.
func NetworkStatePacket(tx, rx bool) Packet {
	return Packet{Kind: KindNetworkState, Payload: []byte{boolByte(tx), boolByte(rx)}}
}

// RenderFramePacket returns a packet redrawing every bar using the
// fine/wide network layout.
func RenderFramePacket(f Frame) Packet {
	return Packet{Kind: KindRenderFrame, Payload: []byte{
		f.CPU[0], f.CPU[1], f.CPU[2], f.CPU[3],
		f.TXFine, f.RXFine, f.TXWide, f.RXWide,
	}}
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
