// Package link opens the byte streams between a host and a panel:
// serial ports, TCP sockets and MQTT topics.
package link

import (
	"io"
	"net"
	"strings"

	"go.bug.st/serial"
)

const (
	tcpPrefix = "tcp:"
)

// Conn is an open link to a panel.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}

func openTCPConnection(addr string) (Conn, error) {
	return net.Dial("tcp", addr)
}

func openSerialConnection(port string, opts PortOptions) (Conn, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	return serial.Open(portName(port), mode)
}

// Open opens the link with the given name, as returned by
// AvailablePorts. Names starting with tcp: are TCP addresses, names
// starting with mqtt:// or mqtts:// are broker URLs whose path is the
// topic, and anything else is a serial port opened with opts.
func Open(name string, opts PortOptions) (Conn, error) {
	switch {
	case strings.HasPrefix(name, tcpPrefix):
		return openTCPConnection(name[len(tcpPrefix):])
	case isMQTT(name):
		return openMQTTConnection(name)
	}
	return openSerialConnection(name, opts)
}
