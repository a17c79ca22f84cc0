package sim

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/udplog/internal/discovery"
	"github.com/muurk/udplog/internal/logging"
)

type destMode int

const (
	destBroadcast destMode = iota
	destUnicast
)

func (m destMode) String() string {
	if m == destUnicast {
		return "unicast"
	}
	return "broadcast"
}

// Simulator emulates one esp32-udp-logger device: it answers control
// commands on its command port, optionally advertises itself via mDNS, and
// emits synthetic log datagrams in broadcast or bound-unicast mode.
type Simulator struct {
	cfg *Config

	mu          sync.Mutex
	mode        destMode
	broadcastOn bool
	unicast     *net.UDPAddr
	drops       uint32
}

// New creates a simulator in the firmware's boot state: broadcast mode with
// broadcasting enabled and no unicast target.
func New(cfg *Config) *Simulator {
	return &Simulator{
		cfg:         cfg,
		mode:        destBroadcast,
		broadcastOn: true,
	}
}

// Run starts the simulator and blocks until the context is cancelled
func (s *Simulator) Run(ctx context.Context) error {
	rx, err := net.ListenUDP("udp4", &net.UDPAddr{Port: s.cfg.Port})
	if err != nil {
		return fmt.Errorf("failed to bind command socket on UDP port %d: %w", s.cfg.Port, err)
	}

	if s.cfg.MDNS {
		server, err := zeroconf.Register(s.cfg.Hostname, discovery.ServiceType,
			discovery.ServiceDomain, s.cfg.Port, []string{"txtvers=1"}, nil)
		if err != nil {
			rx.Close()
			return fmt.Errorf("failed to register mDNS service: %w", err)
		}
		defer server.Shutdown()
		logging.Info("Registered mDNS service",
			zap.String("instance", s.cfg.Hostname),
			zap.String("service", discovery.ServiceType),
			zap.Int("port", s.cfg.Port),
		)
	}

	go s.emitLogs(ctx)

	return s.serve(ctx, rx)
}

// serve answers control commands on rx until the context is cancelled.
// It owns rx and closes it on every exit path.
func (s *Simulator) serve(ctx context.Context, rx *net.UDPConn) error {
	defer rx.Close()

	stop := context.AfterFunc(ctx, func() { rx.Close() })
	defer stop()

	logging.Info("Simulator listening for commands",
		zap.String("addr", rx.LocalAddr().String()),
	)

	buf := make([]byte, 512)
	for {
		n, from, err := rx.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logging.LogDatagram("recv", from.String(), buf[:n])

		reply := s.handleCommand(string(buf[:n]))
		if reply == "" {
			continue
		}
		if _, err := rx.WriteToUDP([]byte(reply), from); err != nil {
			logging.Warn("Failed to send reply",
				zap.String("remote_addr", from.String()),
				zap.Error(err),
			)
		}
	}
}

// handleCommand parses one command datagram and returns the reply payload.
// Semantics and reply strings match the device firmware exactly; an empty
// datagram gets no reply.
func (s *Simulator) handleCommand(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "bind":
		if len(fields) < 3 {
			return "ERR usage: bind <ipv4> <port>\n"
		}
		addr, ok := parseIPPort(fields[1], fields[2])
		if !ok {
			return "ERR usage: bind <ipv4> <port>\n"
		}
		s.mu.Lock()
		s.unicast = addr
		s.mode = destUnicast
		s.mu.Unlock()
		return "OK bound\n"

	case "unbind":
		s.mu.Lock()
		s.mode = destBroadcast
		s.mu.Unlock()
		return "OK unbound\n"

	case "broadcast":
		if len(fields) < 2 {
			return "ERR usage: broadcast on|off\n"
		}
		on := fields[1] == "on" || fields[1] == "1"
		off := fields[1] == "off" || fields[1] == "0"
		if !on && !off {
			return "ERR usage: broadcast on|off\n"
		}
		s.mu.Lock()
		s.broadcastOn = on
		s.mu.Unlock()
		if on {
			return "OK broadcast on\n"
		}
		return "OK broadcast off\n"

	case "status":
		s.mu.Lock()
		mode := s.mode
		broadcastOn := s.broadcastOn
		drops := s.drops
		unicast := s.unicast
		s.mu.Unlock()

		uHost, uPort := "-", 0
		if unicast != nil {
			uHost = unicast.IP.String()
			uPort = unicast.Port
		}
		onOff := "off"
		if broadcastOn {
			onOff = "on"
		}
		return fmt.Sprintf("host=%s mode=%s broadcast=%s drops=%d unicast=%s:%d\n",
			s.cfg.Hostname, mode, onOff, drops, uHost, uPort)

	default:
		return "ERR unknown command\n"
	}
}

// emitLogs sends one line from the script per interval to the current
// destination: the bound unicast target in unicast mode, otherwise the
// limited broadcast address (the firmware computes the subnet broadcast
// instead, which a host-side simulator cannot know reliably).
func (s *Simulator) emitLogs(ctx context.Context) {
	if len(s.cfg.Lines) == 0 {
		return
	}

	tx, err := net.ListenUDP("udp4", &net.UDPAddr{Port: 0})
	if err != nil {
		logging.Error("Failed to bind log send socket", zap.Error(err))
		return
	}
	defer tx.Close()

	ticker := time.NewTicker(time.Duration(s.cfg.Interval))
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		line := s.cfg.Lines[i%len(s.cfg.Lines)]
		if s.cfg.PrefixHostname {
			line = fmt.Sprintf("[%s] %s", s.cfg.Hostname, line)
		}

		s.mu.Lock()
		mode := s.mode
		broadcastOn := s.broadcastOn
		unicast := s.unicast
		s.mu.Unlock()

		var dst *net.UDPAddr
		switch {
		case mode == destUnicast && unicast != nil:
			dst = unicast
		case broadcastOn:
			dst = &net.UDPAddr{IP: net.IPv4bcast, Port: s.cfg.LogPort}
		default:
			continue
		}

		if _, err := tx.WriteToUDP([]byte(line), dst); err != nil {
			s.mu.Lock()
			s.drops++
			s.mu.Unlock()
			logging.Debug("Dropped log datagram",
				zap.String("dst", dst.String()),
				zap.Error(err),
			)
			continue
		}
		logging.LogDatagram("send", dst.String(), []byte(line))
	}
}

func parseIPPort(ipStr, portStr string) (*net.UDPAddr, bool) {
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, false
	}
	ip := net.ParseIP(ipStr)
	if ip == nil || ip.To4() == nil {
		return nil, false
	}
	return &net.UDPAddr{IP: ip.To4(), Port: port}, true
}
