package control

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeBind indicates the local UDP socket could not be bound
	ErrTypeBind ErrorType = iota
	// ErrTypeSend indicates a datagram could not be sent to the device
	ErrTypeSend
	// ErrTypeListen indicates the log listener socket could not be bound
	ErrTypeListen
	// ErrTypeLocalAddr indicates the local outbound address for a target
	// could not be determined
	ErrTypeLocalAddr
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeBind:
		return "Bind Error"
	case ErrTypeSend:
		return "Send Error"
	case ErrTypeListen:
		return "Listen Error"
	case ErrTypeLocalAddr:
		return "Local Address Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// CommandError represents an error that occurred while talking to a device.
// It always identifies the operation and the relevant address or port so the
// user-facing message is actionable.
type CommandError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Addr    string    // Target address (if applicable)
	Port    int       // Relevant port (local or remote)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (caused by: %v)", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain inspection
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewBindError creates an error for a local socket bind failure
func NewBindError(port int, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeBind,
		Message: fmt.Sprintf("Failed to bind local UDP socket on port %d", port),
		Port:    port,
		Err:     err,
	}
}

// NewSendError creates an error for a datagram send failure
func NewSendError(addr string, port int, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeSend,
		Message: fmt.Sprintf("Failed to send command to %s:%d", addr, port),
		Addr:    addr,
		Port:    port,
		Err:     err,
	}
}

// NewListenError creates an error for a listener bind failure
func NewListenError(port int, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeListen,
		Message: fmt.Sprintf("Failed to bind listener on UDP port %d", port),
		Port:    port,
		Err:     err,
	}
}

// NewLocalAddrError creates an error for an outbound-address detection failure
func NewLocalAddrError(addr string, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeLocalAddr,
		Message: fmt.Sprintf("Failed to determine local IP for %s", addr),
		Addr:    addr,
		Err:     err,
	}
}

// IsBindError checks if an error is a local socket bind error
func IsBindError(err error) bool {
	return isType(err, ErrTypeBind)
}

// IsSendError checks if an error is a datagram send error
func IsSendError(err error) bool {
	return isType(err, ErrTypeSend)
}

// IsListenError checks if an error is a listener bind error
func IsListenError(err error) bool {
	return isType(err, ErrTypeListen)
}

// IsLocalAddrError checks if an error is an outbound-address detection error
func IsLocalAddrError(err error) bool {
	return isType(err, ErrTypeLocalAddr)
}

func isType(err error, et ErrorType) bool {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Type == et
	}
	return false
}
