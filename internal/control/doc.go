// Package control implements the plaintext UDP control protocol spoken by
// esp32-udp-logger devices.
//
// Commands are newline-free UTF-8 strings sent as single UDP datagrams to a
// device's command port: "bind <ip> <port>", "unbind", "status",
// "broadcast on" and "broadcast off". The device answers each command with a
// single reply datagram ("OK ...", "ERR ...", or a status line); a missing
// reply within the wait window is reported as an empty string rather than an
// error, since log delivery may already be working even when replies are
// dropped.
//
// Each send opens its own ephemeral socket and closes it on every exit path.
package control
