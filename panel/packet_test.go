package panel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketBytes(t *testing.T) {
	testCases := []struct {
		name string
		p    Packet
		want []byte
	}{
		{"reset", ResetPacket(), []byte{0x00, 0x00}},
		{"set indicators", SetIndicatorsPacket(10, 20, 30, 40), []byte{0x01, 0x04, 10, 20, 30, 40}},
		{"network state", NetworkStatePacket(false, true), []byte{0x02, 0x02, 0, 1}},
		{
			"render frame",
			RenderFramePacket(Frame{CPU: [4]uint8{1, 2, 3, 4}, TXFine: 5, RXFine: 6, TXWide: 7, RXWide: 8}),
			[]byte{0x03, 0x08, 1, 2, 3, 4, 5, 6, 7, 8},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.p.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tc.want, data)

			var d Decoder
			got := feed(&d, data...)
			require.Len(t, got, 1)
			assert.Equal(t, tc.p.Kind, got[0].Kind)
			assert.Equal(t, len(tc.p.Payload), len(got[0].Payload))
		})
	}
}

func TestPacketErrors(t *testing.T) {
	_, err := Packet{Kind: KindRenderFrame, Payload: make([]byte, Capacity+1)}.Bytes()
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))

	_, err = Packet{Kind: KindRenderFrame, Payload: make([]byte, Capacity)}.Bytes()
	assert.NoError(t, err)

	_, err = Packet{Kind: KindUnrecognized}.Bytes()
	assert.Equal(t, ErrUnrecognizedKind, err)

	dst, err := AppendPacket([]byte{0xAA}, PacketKind(0x42), nil)
	assert.Equal(t, ErrUnrecognizedKind, err)
	assert.Equal(t, []byte{0xAA}, dst)
}

func TestPacketWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := NetworkStatePacket(true, true).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, []byte{0x02, 0x02, 1, 1}, buf.Bytes())

	n, err = Packet{Kind: KindReset, Payload: make([]byte, 40)}.WriteTo(&buf)
	assert.Error(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 4, buf.Len())
}

func TestPacketString(t *testing.T) {
	assert.Equal(t, "NetworkState[1 0]", NetworkStatePacket(true, false).String())
	assert.Equal(t, "Reset[]", ResetPacket().String())
}
