package discovery

import (
	"fmt"
	"net"
	"strconv"
)

// Device represents a discovered UDP logger device on the network
type Device struct {
	// Name is the mDNS instance name (e.g., "esp32-udp-logger-7A3F")
	Name string

	// Host is the advertised hostname without the trailing dot
	// (e.g., "esp32-udp-logger-7A3F.local")
	Host string

	// IP is the IPv4 address (e.g., "192.168.1.20")
	IP string

	// Port is the device command port (typically 9998)
	Port int
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", d.Name, d.Host, d.IP, d.Port)
}

// Addr returns the device command endpoint as "ip:port"
func (d *Device) Addr() string {
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}
