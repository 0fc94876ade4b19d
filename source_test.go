package main

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadpanel/internal/link"
	"loadpanel/panel"
)

func nextByte(t *testing.T, s *linkSource) (byte, error) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		b, err := s.ReadByte()
		if !errors.Is(err, panel.ErrNoData) {
			return b, err
		}
	}
	t.Fatal("timed out waiting for a byte")
	return 0, nil
}

func TestLinkSource(t *testing.T) {
	injectHost, injectDevice := net.Pipe()
	s := newLinkSource(link.NewPoller(injectDevice, 0), time.Millisecond)

	_, err := s.ReadByte()
	assert.Equal(t, panel.ErrNoData, err)

	go injectHost.Write([]byte{42})
	b, err := nextByte(t, s)
	require.NoError(t, err)
	assert.Equal(t, byte(42), b)

	remoteHost, remoteDevice := net.Pipe()
	remote := link.NewPoller(remoteDevice, time.Millisecond)
	assert.Nil(t, s.attach(remote))
	go func() {
		remoteHost.Write([]byte{7})
		remoteHost.Close()
	}()
	b, err = nextByte(t, s)
	require.NoError(t, err)
	assert.Equal(t, byte(7), b)

	_, err = nextByte(t, s)
	assert.True(t, errors.Is(err, link.ErrClosed))
	assert.Nil(t, s.current(), "closed remote is still attached")

	// Injected bytes keep flowing
	go injectHost.Write([]byte{43})
	b, err = nextByte(t, s)
	require.NoError(t, err)
	assert.Equal(t, byte(43), b)
}
