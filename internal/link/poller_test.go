package link

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadpanel/panel"
)

// readAll polls p until it has n bytes or the deadline passes.
func readAll(t *testing.T, p *Poller, n int) []byte {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var out []byte
	for len(out) < n {
		require.True(t, time.Now().Before(deadline), "got %v before timing out", out)
		b, err := p.ReadByte()
		if errors.Is(err, panel.ErrNoData) {
			continue
		}
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func TestPoller(t *testing.T) {
	host, device := net.Pipe()
	p := NewPoller(device, 10*time.Millisecond)
	defer p.Close()

	_, err := p.ReadByte()
	assert.Equal(t, panel.ErrNoData, err)

	go host.Write([]byte{0x01, 0x04, 1, 2, 3, 4})
	assert.Equal(t, []byte{0x01, 0x04, 1, 2, 3, 4}, readAll(t, p, 6))
}

func TestPollerNoWait(t *testing.T) {
	_, device := net.Pipe()
	p := NewPoller(device, 0)
	defer p.Close()
	start := time.Now()
	for ii := 0; ii < 100; ii++ {
		_, err := p.ReadByte()
		require.Equal(t, panel.ErrNoData, err)
	}
	assert.True(t, time.Since(start) < time.Second)
}

func TestPollerClosed(t *testing.T) {
	host, device := net.Pipe()
	p := NewPoller(device, time.Millisecond)
	go func() {
		host.Write([]byte{7, 8})
		host.Close()
	}()
	assert.Equal(t, []byte{7, 8}, readAll(t, p, 2))

	deadline := time.Now().Add(5 * time.Second)
	for {
		require.True(t, time.Now().Before(deadline))
		_, err := p.ReadByte()
		if errors.Is(err, panel.ErrNoData) {
			continue
		}
		assert.True(t, errors.Is(err, ErrClosed), "got %v", err)
		break
	}
	// Still closed on the next call
	_, err := p.ReadByte()
	assert.True(t, errors.Is(err, ErrClosed))
	assert.NoError(t, p.Close())
}
