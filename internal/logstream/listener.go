package logstream

import (
	"context"
	"io"
	"net"
	"strings"

	"github.com/muurk/udplog/internal/control"
	"github.com/muurk/udplog/internal/logging"
)

// MaxDatagramSize is the largest log datagram a device will send
const MaxDatagramSize = 64 * 1024

// Listen binds a UDP socket on 0.0.0.0:port and writes every received
// datagram to w as lossily-decoded UTF-8 text, appending a newline when the
// datagram lacks one. It blocks until the context is cancelled or the socket
// fails.
func Listen(ctx context.Context, port int, w io.Writer) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: port})
	if err != nil {
		return control.NewListenError(port, err)
	}
	return run(ctx, conn, w)
}

// run consumes datagrams from conn until the context is cancelled.
// It owns conn and closes it on every exit path.
func run(ctx context.Context, conn *net.UDPConn, w io.Writer) error {
	defer conn.Close()

	// Unblock the read loop when the context is cancelled
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	buf := make([]byte, MaxDatagramSize)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logging.LogDatagram("recv", from.String(), buf[:n])

		txt := strings.ToValidUTF8(string(buf[:n]), "�")
		if !strings.HasSuffix(txt, "\n") {
			txt += "\n"
		}
		if _, err := io.WriteString(w, txt); err != nil {
			return err
		}
	}
}
