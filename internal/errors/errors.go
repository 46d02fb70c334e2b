// Package errors provides standardized error handling for vlcrc.
// It defines the error kinds, the typed errors for configuration,
// connection and terminal failures, and helpers for creating, wrapping
// and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrMissingServer   = NewConfigError("Need a server to connect to", "", InvalidServerAddress, nil)
	ErrNotTerminal     = NewTerminalError("standard input is not a terminal", TerminalInit, nil)
	ErrSurfaceTooSmall = NewTerminalError("surface must have positive dimensions", TerminalInit, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	InvalidServerAddress
	UnknownToggle
	DuplicateKey
	InvalidBinding
	// Connection error kinds
	ConnectionFailed
	// Terminal error kinds
	TerminalInit
	TerminalResize
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ConfigError represents errors related to configuration: the server
// argument, the key table and toggle declarations.
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// ConnectionError represents a network failure while talking to the
// remote control endpoint.
type ConnectionError struct {
	ApplicationError
	address string
	op      string
}

// NewConnectionError creates a new connection error. op names the
// protocol step that failed (dial, write, read).
func NewConnectionError(op string, address string, err error) *ConnectionError {
	return &ConnectionError{
		ApplicationError: ApplicationError{
			msg:  op + " failed",
			err:  err,
			kind: ConnectionFailed,
		},
		address: address,
		op:      op,
	}
}

// Error returns the connection error message
func (e *ConnectionError) Error() string {
	if e.address != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.address, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.address)
	}
	return e.ApplicationError.Error()
}

// Address returns the server address the failed operation targeted
func (e *ConnectionError) Address() string {
	return e.address
}

// Op returns the protocol step that failed
func (e *ConnectionError) Op() string {
	return e.op
}

// TerminalError represents a failure to initialize or drive the terminal
type TerminalError struct {
	ApplicationError
}

// NewTerminalError creates a new terminal error
func NewTerminalError(msg string, kind ErrorKind, err error) *TerminalError {
	return &TerminalError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
	}
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsConfigError checks if the error is any configuration error
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsUnknownToggle checks if the error reports an undeclared toggle name
func IsUnknownToggle(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == UnknownToggle
	}
	return false
}

// IsDuplicateKey checks if the error reports a key bound twice
func IsDuplicateKey(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == DuplicateKey
	}
	return false
}

// IsConnectionError checks if the error is a network failure
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsTerminalError checks if the error is a terminal failure
func IsTerminalError(err error) bool {
	var termErr *TerminalError
	return errors.As(err, &termErr)
}
