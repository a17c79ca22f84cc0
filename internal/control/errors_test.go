package control

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewBindError_Message(t *testing.T) {
	err := NewBindError(0, errors.New("address in use"))

	if !strings.Contains(err.Error(), "Failed to bind") {
		t.Errorf("bind error = %q, want it to contain %q", err, "Failed to bind")
	}
	if !strings.Contains(err.Error(), "0") {
		t.Errorf("bind error = %q, want it to contain the attempted port", err)
	}
}

func TestNewSendError_Message(t *testing.T) {
	err := NewSendError("192.168.1.20", 9998, errors.New("network unreachable"))

	if !strings.Contains(err.Error(), "192.168.1.20") {
		t.Errorf("send error = %q, want it to contain the target address", err)
	}
	if !strings.Contains(err.Error(), "9998") {
		t.Errorf("send error = %q, want it to contain the target port", err)
	}
	if !strings.Contains(err.Error(), "network unreachable") {
		t.Errorf("send error = %q, want it to contain the system error text", err)
	}
}

func TestNewListenError_Message(t *testing.T) {
	err := NewListenError(9999, errors.New("address in use"))

	if !strings.Contains(err.Error(), "9999") {
		t.Errorf("listen error = %q, want it to contain the attempted port", err)
	}
}

func TestNewLocalAddrError_Message(t *testing.T) {
	err := NewLocalAddrError("10.1.2.3", errors.New("no route to host"))

	if !strings.Contains(err.Error(), "10.1.2.3") {
		t.Errorf("local address error = %q, want it to contain the target address", err)
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewSendError("192.168.1.20", 9998, cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find the wrapped cause")
	}
}

func TestErrorTypePredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"bind", NewBindError(0, nil), IsBindError},
		{"send", NewSendError("1.2.3.4", 1, nil), IsSendError},
		{"listen", NewListenError(9999, nil), IsListenError},
		{"local address", NewLocalAddrError("1.2.3.4", nil), IsLocalAddrError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("predicate returned false for its own error type")
			}
			// Predicates see through wrapping
			if !tt.pred(fmt.Errorf("outer: %w", tt.err)) {
				t.Errorf("predicate returned false for wrapped error")
			}
			if tt.pred(errors.New("unrelated")) {
				t.Errorf("predicate returned true for unrelated error")
			}
		})
	}
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeBind, "Bind Error"},
		{ErrTypeSend, "Send Error"},
		{ErrTypeListen, "Listen Error"},
		{ErrTypeLocalAddr, "Local Address Error"},
		{ErrorType(99), "ErrorType(99)"},
	}

	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}
