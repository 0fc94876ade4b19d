package main

import (
	"fmt"
	"strconv"
	"strings"

	"loadpanel/panel"
)

// parseByte parses a decimal, 0x hexadecimal or 0b binary value
// between 0 and 255.
func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q: must be between 0 and 255", s)
	}
	return byte(v), nil
}

func parseBytes(args []string) ([]byte, error) {
	data := make([]byte, 0, len(args))
	for _, a := range args {
		b, err := parseByte(a)
		if err != nil {
			return nil, err
		}
		data = append(data, b)
	}
	return data, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "on", "true", "yes":
		return true, nil
	case "0", "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag %q: expected on or off", s)
}

func parseIndicators(args []string) (panel.Packet, error) {
	if len(args) != panel.IndicatorCount {
		return panel.Packet{}, fmt.Errorf("expected %d values, got %d", panel.IndicatorCount, len(args))
	}
	v, err := parseBytes(args)
	if err != nil {
		return panel.Packet{}, err
	}
	return panel.SetIndicatorsPacket(v[0], v[1], v[2], v[3]), nil
}

func parseNetwork(args []string) (panel.Packet, error) {
	if len(args) != 2 {
		return panel.Packet{}, fmt.Errorf("expected TX and RX, got %d values", len(args))
	}
	tx, err := parseFlag(args[0])
	if err != nil {
		return panel.Packet{}, err
	}
	rx, err := parseFlag(args[1])
	if err != nil {
		return panel.Packet{}, err
	}
	return panel.NetworkStatePacket(tx, rx), nil
}

// parseFrame accepts 8 values for the fine/wide layout or 6 for the
// legacy one.
func parseFrame(args []string) (panel.Packet, error) {
	if len(args) != panel.FrameSize && len(args) != panel.LegacyFrameSize {
		return panel.Packet{}, fmt.Errorf("expected %d or %d values, got %d", panel.FrameSize, panel.LegacyFrameSize, len(args))
	}
	v, err := parseBytes(args)
	if err != nil {
		return panel.Packet{}, err
	}
	return panel.Packet{Kind: panel.KindRenderFrame, Payload: v}, nil
}
