package link

import (
	"os"
	"strings"

	"go.bug.st/serial"
)

// TCPPortsEnv lists extra tcp: ports, comma separated, to include
// in AvailablePorts.
const TCPPortsEnv = "LOADPANEL_TCP_PORTS"

var (
	tcpPorts []string
)

// AvailablePorts returns the list of ports in the system
// that can be used to connect to a panel
func AvailablePorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		if pe, ok := err.(*serial.PortError); ok {
			if pe.Code() == serial.ErrorEnumeratingPorts {
				// This happens on Windows when there are
				// no serial ports
				return tcpPorts, nil
			}
		}
		return nil, err
	}
	filtered := filterPorts(ports)
	filtered = append(filtered, tcpPorts...)
	return filtered, nil
}

func parseTCPPorts(value string) []string {
	var ports []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			ports = append(ports, tcpPrefix+v)
		}
	}
	return ports
}

func init() {
	if tp := os.Getenv(TCPPortsEnv); tp != "" {
		tcpPorts = parseTCPPorts(tp)
	}
}
