// Package sim emulates an esp32-udp-logger device for development and
// integration testing without hardware.
//
// The simulator reproduces the firmware's control protocol byte-for-byte:
// "bind <ipv4> <port>", "unbind", "broadcast on|off" and "status", with the
// same "OK ..." and "ERR ..." reply strings. It advertises the
// _esp32udplog._udp service via mDNS and emits a configurable script of
// synthetic log lines, broadcast by default or unicast to a bound target.
package sim
