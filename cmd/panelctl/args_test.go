package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadpanel/panel"
)

func TestParseByte(t *testing.T) {
	testCases := []struct {
		in      string
		want    byte
		wantErr bool
	}{
		{"0", 0, false},
		{"255", 255, false},
		{"0x1f", 0x1f, false},
		{"0b101", 5, false},
		{"256", 0, true},
		{"-1", 0, true},
		{"ff", 0, true},
	}
	for _, tc := range testCases {
		got, err := parseByte(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseFlag(t *testing.T) {
	for _, s := range []string{"1", "on", "TRUE", "yes"} {
		v, err := parseFlag(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "Off", "false", "no"} {
		v, err := parseFlag(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := parseFlag("maybe")
	assert.Error(t, err)
}

func TestParsePackets(t *testing.T) {
	p, err := parseIndicators([]string{"10", "20", "0x1e", "40"})
	require.NoError(t, err)
	assert.Equal(t, panel.SetIndicatorsPacket(10, 20, 30, 40), p)
	_, err = parseIndicators([]string{"1", "2", "3"})
	assert.Error(t, err)

	p, err = parseNetwork([]string{"off", "on"})
	require.NoError(t, err)
	assert.Equal(t, panel.NetworkStatePacket(false, true), p)
	_, err = parseNetwork([]string{"on"})
	assert.Error(t, err)

	p, err = parseFrame([]string{"1", "2", "3", "4", "5", "6"})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, p.Payload)
	p, err = parseFrame([]string{"1", "2", "3", "4", "5", "6", "7", "8"})
	require.NoError(t, err)
	assert.Equal(t, panel.KindRenderFrame, p.Kind)
	assert.Len(t, p.Payload, 8)
	_, err = parseFrame([]string{"1", "2", "3", "4", "5", "6", "7"})
	assert.Error(t, err)
	_, err = parseFrame([]string{"1", "2", "3", "4", "5", "x"})
	assert.Error(t, err)
}
