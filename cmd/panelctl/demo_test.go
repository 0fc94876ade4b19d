package main

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadpanel/internal/link"
	"loadpanel/panel"
)

func TestTriangle(t *testing.T) {
	assert.Equal(t, uint8(0), triangle(0, 40))
	assert.Equal(t, uint8(255), triangle(20, 40))
	assert.Equal(t, uint8(127), triangle(10, 40))
	assert.Equal(t, triangle(10, 40), triangle(30, 40))
	assert.Equal(t, uint8(0), triangle(40, 40))
}

func TestRunDemo(t *testing.T) {
	host, device := net.Pipe()
	fb := panel.NewFramebuffer()
	dev := panel.NewDevice(panel.Peripherals{
		Source:  link.NewPoller(device, 10*time.Millisecond),
		Display: fb,
	})

	errCh := make(chan error, 1)
	go func() {
		s := link.NewSender(host)
		errCh <- runDemo(s, 3, time.Millisecond)
		s.Close()
	}()

	var kinds []panel.PacketKind
	deadline := time.Now().Add(5 * time.Second)
	for len(kinds) < 10 {
		require.True(t, time.Now().Before(deadline), "got %v", kinds)
		res := dev.Step()
		require.NotEqual(t, panel.OutcomeTransportError, res.Outcome, "%v", res.Err)
		if res.Outcome == panel.OutcomePacket {
			require.True(t, res.Applied)
			kinds = append(kinds, res.Kind)
		}
	}
	require.NoError(t, <-errCh)
	assert.Equal(t, panel.KindSetIndicators, kinds[0])
	assert.Equal(t, panel.KindNetworkState, kinds[1])
	assert.Equal(t, panel.KindRenderFrame, kinds[2])
	assert.Equal(t, panel.KindReset, kinds[9])
	assert.Equal(t, uint32(3), dev.Renderer().Passes())
	assert.Equal(t, [4]uint8{}, dev.Bank().Duties())
}
