// Package apperr carries tagged application errors so handlers can map
// failures to HTTP status codes without string matching.
package apperr

import "errors"

type Kind uint8

const (
	Unknown Kind = iota
	Validation
	Auth
	NotFound
	Conflict
	Remote
)

type Error struct {
	Kind Kind
	Op   string // operation family, e.g. "checkout.place"
	Msg  string // user-facing message
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func E(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// KindOf unwraps err looking for a tagged error; Unknown when none is found.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Message returns the user-facing message of a tagged error, or the plain
// error text for untagged ones.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
