package control

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/muurk/udplog/internal/logging"
)

const (
	// DefaultReplyTimeout is how long to wait for a device reply after a send
	DefaultReplyTimeout = 1 * time.Second

	// MaxReplySize is the largest command reply a device will send
	MaxReplySize = 2048

	// DefaultListenPort is the PC-side port devices send log lines to
	DefaultListenPort = 9999
)

// Command is one member of the fixed control command set
type Command struct {
	// Name is the CLI-facing command name
	Name string

	// Payload is the literal wire string sent to the device
	Payload string

	// ExpectReply indicates whether to wait for a single reply datagram
	ExpectReply bool
}

// The fixed-payload commands understood by the device firmware
var (
	Unbind       = Command{Name: "unbind", Payload: "unbind", ExpectReply: true}
	Status       = Command{Name: "status", Payload: "status", ExpectReply: true}
	BroadcastOn  = Command{Name: "broadcast-on", Payload: "broadcast on", ExpectReply: true}
	BroadcastOff = Command{Name: "broadcast-off", Payload: "broadcast off", ExpectReply: true}
)

// Bind builds the bind command, which tells the device to unicast its log
// stream to the given address. The payload is exactly "bind <ip> <port>".
func Bind(pcIP string, txPort int) Command {
	return Command{
		Name:        "bind",
		Payload:     fmt.Sprintf("bind %s %d", pcIP, txPort),
		ExpectReply: true,
	}
}

// Client sends plaintext control commands to a device over UDP
type Client struct {
	// ReplyTimeout is the maximum time to wait for a reply datagram
	ReplyTimeout time.Duration
}

// NewClient creates a command client with default settings
func NewClient() *Client {
	return &Client{
		ReplyTimeout: DefaultReplyTimeout,
	}
}

// Send transmits a single command datagram to ip:port. When the command
// expects a reply, Send waits up to ReplyTimeout for exactly one datagram and
// returns its text; a timeout yields an empty reply, not an error.
func (c *Client) Send(ip string, port int, cmd Command) (string, error) {
	dstIP := net.ParseIP(ip)
	if dstIP == nil {
		return "", NewSendError(ip, port, fmt.Errorf("invalid IPv4 address"))
	}
	dst := &net.UDPAddr{IP: dstIP, Port: port}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: 0})
	if err != nil {
		return "", NewBindError(0, err)
	}
	defer conn.Close()

	if _, err := conn.WriteToUDP([]byte(cmd.Payload), dst); err != nil {
		return "", NewSendError(ip, port, err)
	}
	logging.LogDatagram("send", dst.String(), []byte(cmd.Payload))

	if !cmd.ExpectReply {
		return "", nil
	}

	if err := conn.SetReadDeadline(time.Now().Add(c.ReplyTimeout)); err != nil {
		return "", NewSendError(ip, port, err)
	}

	buf := make([]byte, MaxReplySize)
	n, from, err := conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			// No reply within the window; the send itself succeeded
			return "", nil
		}
		return "", NewSendError(ip, port, err)
	}
	logging.LogDatagram("recv", from.String(), buf[:n])

	reply := strings.ToValidUTF8(string(buf[:n]), "�")
	return strings.TrimRight(reply, "\r\n"), nil
}
