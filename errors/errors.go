/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors implements the closed failure taxonomy of the RSI host
// endpoint: every lifecycle and engine operation returns a Kind instead of
// an arbitrary error value, so callers can switch on it exhaustively.
//
// Unlike a general-purpose error-hierarchy package, Kind values never nest
// and never carry a parent chain: inside the engine loop a failure is
// always absorbed locally (the datagram is dropped, the send is skipped,
// the watchdog fires) and only Init/Start-time failures are ever surfaced
// to the caller, per the protocol's own failure semantics.
package errors

import "fmt"

// Kind is a closed set of outcomes for every public operation.
type Kind uint8

const (
	// Success is the normal completion outcome.
	Success Kind = iota
	// InitFailed reports subsystem init failure or a call that needs Init
	// to have run first.
	InitFailed
	// AlreadyRunning reports a lifecycle precondition failure expecting
	// Uninitialized or Initialized.
	AlreadyRunning
	// NotRunning reports a lifecycle precondition failure expecting Running.
	NotRunning
	// SocketFailed reports socket creation, bind, or non-blocking setup failure.
	SocketFailed
	// ThreadFailed reports that the engine goroutine could not be spawned.
	ThreadFailed
	// InvalidParam reports a nil pointer where a required output was expected.
	InvalidParam
	// Timeout is reserved; no current caller produces it.
	Timeout
	// Unknown is the catch-all for anything not covered above.
	Unknown
)

// String implements fmt.Stringer and backs GetErrorString.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case InitFailed:
		return "initialization failed or illegal state for this call"
	case AlreadyRunning:
		return "engine is already initialized or running"
	case NotRunning:
		return "engine is not running"
	case SocketFailed:
		return "socket creation, bind, or non-blocking configuration failed"
	case ThreadFailed:
		return "engine thread could not be spawned"
	case InvalidParam:
		return "required output parameter was nil"
	case Timeout:
		return "operation timed out"
	default:
		return "unknown error"
	}
}

// Error makes Kind satisfy the error interface so it can be returned or
// wrapped anywhere a standard error is expected.
func (k Kind) Error() string {
	return k.String()
}

// Err wraps a Kind with additional free-form context without losing the
// Kind: callers that only need the taxonomy recover it with the Kind
// method or with KindOf.
type Err struct {
	kind Kind
	msg  string
}

// New returns an Err carrying kind and a formatted message.
func New(kind Kind, format string, args ...any) *Err {
	return &Err{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Kind returns the closed-taxonomy classification of this error.
func (e *Err) Kind() Kind {
	if e == nil {
		return Success
	}
	return e.kind
}

// Error implements the error interface.
func (e *Err) Error() string {
	if e == nil {
		return Success.String()
	}
	if e.msg == "" {
		return e.kind.String()
	}
	return e.kind.String() + ": " + e.msg
}

// GetErrorString returns the diagnostic text for a given Kind.
func GetErrorString(k Kind) string {
	return k.String()
}

// KindOf extracts the Kind from any error produced by this package, or
// Unknown if err is not one of ours. A nil error yields Success.
func KindOf(err error) Kind {
	if err == nil {
		return Success
	}
	switch e := err.(type) {
	case Kind:
		return e
	case *Err:
		return e.Kind()
	default:
		return Unknown
	}
}
