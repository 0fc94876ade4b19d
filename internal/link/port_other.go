//go:build !darwin

package link

import (
	"strings"
)

// Kernel consoles and the virtual ports most distributions create
// whether or not anything is attached.
var otherPortSkip = []string{"/dev/ttyS", "/dev/console"}

func portName(port string) string {
	return port
}

func filterPorts(ports []string) []string {
	var filtered []string
	for _, v := range ports {
		skip := false
		for _, s := range otherPortSkip {
			if strings.HasPrefix(v, s) {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
