package control

import (
	"strings"
	"testing"
)

func TestLocalIPForTarget_Loopback(t *testing.T) {
	ip, err := LocalIPForTarget("127.0.0.1")
	if err != nil {
		t.Fatalf("LocalIPForTarget() error = %v", err)
	}

	if ip != "127.0.0.1" {
		t.Errorf("LocalIPForTarget(127.0.0.1) = %q, want %q", ip, "127.0.0.1")
	}
}

func TestLocalIPForTarget_InvalidTarget(t *testing.T) {
	_, err := LocalIPForTarget("999.999.999.999")
	if err == nil {
		t.Fatal("LocalIPForTarget() error = nil, want error for invalid target")
	}
	if !IsLocalAddrError(err) {
		t.Errorf("LocalIPForTarget() error type = %T, want local address error", err)
	}
	if !strings.Contains(err.Error(), "999.999.999.999") {
		t.Errorf("LocalIPForTarget() error = %q, want it to contain the target address", err)
	}
}
