// Package bridgeerr classifies the failure modes described in the
// bridge's error handling design: which ones are terminal for a
// session and which are merely logged and skipped.
package bridgeerr

import "fmt"

// Kind identifies one of the bridge's recognized failure categories.
type Kind int

const (
	// IpcRead covers a failed read from the inputs channel. Terminal.
	IpcRead Kind = iota
	// IpcWrite covers a failed write to the updates channel. Terminal.
	IpcWrite
	// Encode covers an image encoder failure for one frame. Non-terminal.
	Encode
	// Spooler covers a host spooler call failure. Non-terminal.
	Spooler
	// Parse covers malformed arguments for a known command tag. Non-terminal.
	Parse
	// NoResource covers a missing primary drawing surface. Non-terminal.
	NoResource
)

func (k Kind) String() string {
	switch k {
	case IpcRead:
		return "ipc_read"
	case IpcWrite:
		return "ipc_write"
	case Encode:
		return "encode"
	case Spooler:
		return "spooler"
	case Parse:
		return "parse"
	case NoResource:
		return "no_resource"
	default:
		return "unknown"
	}
}

// Terminal reports whether an error of this kind must tear down the session.
func (k Kind) Terminal() bool {
	return k == IpcRead || k == IpcWrite
}

// Error wraps an underlying cause with its Kind and, where relevant,
// the subject it applies to (a wire format tag, an image format, a
// spooler operation name).
type Error struct {
	Kind    Kind
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s(%s): %v", e.Kind, e.Subject, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}
