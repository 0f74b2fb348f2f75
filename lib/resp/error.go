package resp

import (
	"errors"
	"fmt"
	"strings"
)

// EncodingError wraps a failure while writing or reading RESP data.
type EncodingError struct {
	sym          Sym
	encodingType string // Marshal | Unmarshal
	step         string
	inner        error
}

func (err *EncodingError) Error() string {
	return fmt.Sprintf("(%s)[%s|%s]: %s", err.encodingType, GetSymString(err.sym), err.step, err.inner)
}

func (err *EncodingError) Is(target error) bool {
	return errors.Is(err.inner, target)
}

func (err *EncodingError) Unwrap() error {
	return err.inner
}

func newMarshalError(sym Sym, step string, inner error) *EncodingError {
	return &EncodingError{
		sym:          sym,
		encodingType: "Marshal",
		step:         step,
		inner:        inner,
	}
}

func newUnmarshalError(sym Sym, step string, inner error) *EncodingError {
	return &EncodingError{
		sym:          sym,
		encodingType: "Unmarshal",
		step:         step,
		inner:        inner,
	}
}

// ServerError is an error reply sent by the store, e.g.
// "WRONGTYPE Operation against a key holding the wrong kind of value".
type ServerError struct {
	Msg string
}

func NewServerError(msg string) *ServerError {
	return &ServerError{Msg: msg}
}

func (e *ServerError) Error() string {
	return e.Msg
}

// Prefix returns the error code, the first word of the message if it is
// upper case (e.g. "WRONGTYPE", "ERR").
func (e *ServerError) Prefix() string {
	prefix, _, _ := strings.Cut(e.Msg, " ")
	if prefix == "" || strings.ToUpper(prefix) != prefix {
		return ""
	}
	return prefix
}
