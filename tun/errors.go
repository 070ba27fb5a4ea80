package tun

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an open attempt failed.
type Kind int

// Failure kinds. The Linux kinds map one-to-one to a step of the
// bring-up sequence, the macOS path only distinguishes the initial
// socket from everything after it.
const (
	DeviceOpenFailure Kind = iota + 1
	InterfaceAllocationFailure
	PersistDisableFailure
	ControlSocketCreationFailure
	NonBlockingSetFailure
	CloseOnExecFailure
	AddressAssignFailure
	ControlSocketOpenFailure
	OpenFailure
)

var kindNames = map[Kind]string{
	DeviceOpenFailure:            "device open failed",
	InterfaceAllocationFailure:   "interface allocation failed",
	PersistDisableFailure:        "disabling persistence failed",
	ControlSocketCreationFailure: "control socket creation failed",
	NonBlockingSetFailure:        "setting non-blocking mode failed",
	CloseOnExecFailure:           "setting close-on-exec failed",
	AddressAssignFailure:         "address assignment failed",
	ControlSocketOpenFailure:     "control socket open failed",
	OpenFailure:                  "open failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the negative integer code reported to callers. The Linux
// codes -1..-6 follow the order of the bring-up steps; both macOS kinds
// report -1, which is the raw return value of the failing syscall.
func (k Kind) Code() int {
	switch k {
	case ControlSocketOpenFailure, OpenFailure:
		return -1
	default:
		return -int(k)
	}
}

// Error is returned by Open. Any OS resource acquired before the failing
// step has already been released.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not open tun device %d: %s", e.Kind.Code(), e.Kind)
	}
	return fmt.Sprintf("could not open tun device %d: %s: %v", e.Kind.Code(), e.Kind, e.Err)
}

// Code is shorthand for e.Kind.Code().
func (e *Error) Code() int { return e.Kind.Code() }

// Cause implements the github.com/pkg/errors causer interface.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Err: errors.Wrap(err, msg)}
}

// IsKind reports whether err, or any error it wraps, is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// ErrUnsupported is returned by Open on platforms other than Linux and macOS.
var ErrUnsupported = errors.New("tun devices are not supported on this platform")
