// Package rvserrors defines the error taxonomy used across the synthesizer:
// configuration, I/O, geometry and internal-invariant failures, each carrying
// enough context to identify the frame, camera and operation that failed.
package rvserrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error without committing callers to a concrete type.
type Kind int

const (
	// Unknown is the zero value; never returned by New.
	Unknown Kind = iota
	// Config covers missing/malformed configuration: bad keys, version
	// mismatches, mismatched list lengths, unknown enum values.
	Config
	// IO covers file-not-found, truncated streams, unexpected channel
	// counts or bit depths.
	IO
	// Geometry covers invalid camera matrices, unknown projection kinds.
	Geometry
	// Internal covers arithmetic that produced NaN outside the documented
	// skip paths, or an unreachable state-machine branch.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "ConfigError"
	case IO:
		return "IOError"
	case Geometry:
		return "GeometryError"
	case Internal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Error is a taxonomy-tagged, context-carrying wrapped error.
type Error struct {
	Kind  Kind
	Op    string // operation, e.g. "synth.Synthesize", "config.Load"
	Frame int    // -1 if not applicable
	Input string // input camera name, empty if not applicable
	Virt  string // virtual camera name, empty if not applicable
	Cause error
}

// Option mutates an *Error before it is returned by New.
type Option func(*Error)

// WithFrame attaches a frame index to the error context.
func WithFrame(frame int) Option {
	return func(e *Error) { e.Frame = frame }
}

// WithInput attaches an input-camera name to the error context.
func WithInput(name string) Option {
	return func(e *Error) { e.Input = name }
}

// WithVirtual attaches a virtual-camera name to the error context.
func WithVirtual(name string) Option {
	return func(e *Error) { e.Virt = name }
}

// New builds a taxonomy error. cause may be nil.
func New(kind Kind, op string, cause error, opts ...Option) *Error {
	e := &Error{Kind: kind, Op: op, Frame: -1, Cause: cause}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Op)
	if e.Frame >= 0 {
		msg += fmt.Sprintf(" frame=%d", e.Frame)
	}
	if e.Virt != "" {
		msg += fmt.Sprintf(" virtual=%s", e.Virt)
	}
	if e.Input != "" {
		msg += fmt.Sprintf(" input=%s", e.Input)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap lets errors.Is/As see through to Cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, rvserrors.New(rvserrors.Config, "", nil)) style
// checks, or more idiomatically use Kind directly via As.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Unknown, false
}
