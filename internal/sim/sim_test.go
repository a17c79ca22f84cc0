package sim

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/muurk/udplog/internal/control"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Hostname = "esp32-udp-logger-TEST"
	cfg.MDNS = false
	cfg.Lines = nil // no log emission in unit tests
	return cfg
}

func TestHandleCommand_Replies(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bind with valid target",
			input: "bind 192.168.1.10 9999",
			want:  "OK bound\n",
		},
		{
			name:  "bind missing arguments",
			input: "bind 192.168.1.10",
			want:  "ERR usage: bind <ipv4> <port>\n",
		},
		{
			name:  "bind with bad address",
			input: "bind not-an-ip 9999",
			want:  "ERR usage: bind <ipv4> <port>\n",
		},
		{
			name:  "bind with IPv6 address",
			input: "bind fe80::1 9999",
			want:  "ERR usage: bind <ipv4> <port>\n",
		},
		{
			name:  "bind with out-of-range port",
			input: "bind 192.168.1.10 70000",
			want:  "ERR usage: bind <ipv4> <port>\n",
		},
		{
			name:  "bind with zero port",
			input: "bind 192.168.1.10 0",
			want:  "ERR usage: bind <ipv4> <port>\n",
		},
		{
			name:  "unbind",
			input: "unbind",
			want:  "OK unbound\n",
		},
		{
			name:  "broadcast on",
			input: "broadcast on",
			want:  "OK broadcast on\n",
		},
		{
			name:  "broadcast off",
			input: "broadcast off",
			want:  "OK broadcast off\n",
		},
		{
			name:  "broadcast numeric forms",
			input: "broadcast 1",
			want:  "OK broadcast on\n",
		},
		{
			name:  "broadcast missing argument",
			input: "broadcast",
			want:  "ERR usage: broadcast on|off\n",
		},
		{
			name:  "broadcast bad argument",
			input: "broadcast maybe",
			want:  "ERR usage: broadcast on|off\n",
		},
		{
			name:  "unknown command",
			input: "reboot",
			want:  "ERR unknown command\n",
		},
		{
			name:  "empty datagram gets no reply",
			input: "  \r\n",
			want:  "",
		},
		{
			name:  "whitespace-tolerant parsing",
			input: "  bind   192.168.1.10   9999  \n",
			want:  "OK bound\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testConfig())
			if got := s.handleCommand(tt.input); got != tt.want {
				t.Errorf("handleCommand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHandleCommand_StatusTransitions(t *testing.T) {
	s := New(testConfig())

	// Boot state: broadcast mode, broadcasting on, no unicast target
	got := s.handleCommand("status")
	want := "host=esp32-udp-logger-TEST mode=broadcast broadcast=on drops=0 unicast=-:0\n"
	if got != want {
		t.Errorf("boot status = %q, want %q", got, want)
	}

	// Bind switches to unicast and records the target
	s.handleCommand("bind 192.168.1.10 9999")
	got = s.handleCommand("status")
	want = "host=esp32-udp-logger-TEST mode=unicast broadcast=on drops=0 unicast=192.168.1.10:9999\n"
	if got != want {
		t.Errorf("status after bind = %q, want %q", got, want)
	}

	// Unbind reverts the mode but keeps the last target, like the firmware
	s.handleCommand("unbind")
	got = s.handleCommand("status")
	want = "host=esp32-udp-logger-TEST mode=broadcast broadcast=on drops=0 unicast=192.168.1.10:9999\n"
	if got != want {
		t.Errorf("status after unbind = %q, want %q", got, want)
	}

	// Broadcast toggle is reflected
	s.handleCommand("broadcast off")
	got = s.handleCommand("status")
	want = "host=esp32-udp-logger-TEST mode=broadcast broadcast=off drops=0 unicast=192.168.1.10:9999\n"
	if got != want {
		t.Errorf("status after broadcast off = %q, want %q", got, want)
	}
}

func TestServe_CommandRoundTrip(t *testing.T) {
	rx, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("failed to bind simulator socket: %v", err)
	}
	port := rx.LocalAddr().(*net.UDPAddr).Port

	s := New(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.serve(ctx, rx)
	}()

	client := control.NewClient()

	reply, err := client.Send("127.0.0.1", port, control.Bind("127.0.0.1", 9999))
	if err != nil {
		t.Fatalf("Send(bind) error = %v", err)
	}
	if reply != "OK bound" {
		t.Errorf("Send(bind) reply = %q, want %q", reply, "OK bound")
	}

	reply, err = client.Send("127.0.0.1", port, control.Status)
	if err != nil {
		t.Fatalf("Send(status) error = %v", err)
	}
	wantStatus := "host=esp32-udp-logger-TEST mode=unicast broadcast=on drops=0 unicast=127.0.0.1:9999"
	if reply != wantStatus {
		t.Errorf("Send(status) reply = %q, want %q", reply, wantStatus)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve() error = %v, want nil on cancellation", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve() did not return after cancellation")
	}
}

func TestEmitLogs_UnicastDelivery(t *testing.T) {
	// Stand in for the operator's listen socket
	sink, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("failed to bind sink socket: %v", err)
	}
	defer sink.Close()
	sinkPort := sink.LocalAddr().(*net.UDPAddr).Port

	cfg := testConfig()
	cfg.Interval = Duration(20 * time.Millisecond)
	cfg.Lines = []string{"hello from sim"}
	cfg.PrefixHostname = true

	s := New(cfg)
	s.handleCommand("bind 127.0.0.1 " + strconv.Itoa(sinkPort))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.emitLogs(ctx)

	if err := sink.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("failed to set deadline: %v", err)
	}
	buf := make([]byte, 512)
	n, _, err := sink.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("no log datagram received: %v", err)
	}

	want := "[esp32-udp-logger-TEST] hello from sim"
	if string(buf[:n]) != want {
		t.Errorf("log datagram = %q, want %q", string(buf[:n]), want)
	}
}
