// Package discovery provides mDNS-based discovery of UDP logger devices.
//
// Devices running the esp32-udp-logger component advertise themselves using
// the "_esp32udplog._udp" service type. A discovery session browses for that
// service for a bounded duration and returns a snapshot of every device that
// answered with a resolvable IPv4 address, deduplicated by instance name and
// sorted case-insensitively.
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Devices must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
//
// An empty snapshot is a valid result, not an error; callers decide whether
// the absence of devices is fatal for their operation.
package discovery
