package resp

import (
	"errors"
	"math"
	"testing"
	"time"
)

type stringerArg struct{ v string }

func (s stringerArg) String() string { return s.v }

type failingMarshaler struct{}

func (failingMarshaler) MarshalBinary() ([]byte, error) { return nil, errors.New("boom") }

// TestMarshalCommand tests the exact bytes written for command token lists
func TestMarshalCommand(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []any
		expected string
	}{
		{"name only", []any{"MGET"}, "*1\r\n$4\r\nMGET\r\n"},
		{"del", []any{"DEL", "k"}, "*2\r\n$3\r\nDEL\r\n$1\r\nk\r\n"},
		{"sadd", []any{"SADD", "myset1", "first"}, "*3\r\n$4\r\nSADD\r\n$6\r\nmyset1\r\n$5\r\nfirst\r\n"},
		{"expire uint64", []any{"EXPIRE", "k", uint64(10)}, "*3\r\n$6\r\nEXPIRE\r\n$1\r\nk\r\n$2\r\n10\r\n"},
		{"incrby negative", []any{"INCRBY", "k", int64(-5)}, "*3\r\n$6\r\nINCRBY\r\n$1\r\nk\r\n$2\r\n-5\r\n"},
		{"set int", []any{"SET", "k", 42}, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$2\r\n42\r\n"},
		{"set float", []any{"SET", "k", 1.5}, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$3\r\n1.5\r\n"},
		{"set inf", []any{"SET", "k", math.Inf(1)}, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$4\r\n+inf\r\n"},
		{"set bool", []any{"SET", "k", true}, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\n1\r\n"},
		{"set binary", []any{"SET", "k", []byte{0, '\r', '\n'}}, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$3\r\n\x00\r\n\r\n"},
		{"set empty", []any{"SET", "k", ""}, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$0\r\n\r\n"},
		{"set stringer", []any{"SET", "k", stringerArg{"abc"}}, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$3\r\nabc\r\n"},
		{"unicode", []any{"GET", "你好"}, "*2\r\n$3\r\nGET\r\n$6\r\n你好\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCommand(tt.tokens)
			if err != nil {
				t.Fatalf("MarshalCommand() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("MarshalCommand() = %q, want %q", got, tt.expected)
			}

			// same input, same bytes
			again, _ := MarshalCommand(tt.tokens)
			if string(again) != string(got) {
				t.Errorf("MarshalCommand() is not deterministic: %q != %q", again, got)
			}
		})
	}
}

// TestMarshalCommandBinaryMarshaler tests that BinaryMarshaler takes precedence over Stringer
func TestMarshalCommandBinaryMarshaler(t *testing.T) {
	ts := time.Unix(0, 0).UTC()
	bin, _ := ts.MarshalBinary()

	got, err := MarshalCommand([]any{"SET", "k", ts})
	if err != nil {
		t.Fatalf("MarshalCommand() error = %v", err)
	}

	expected, _ := MarshalCommand([]any{"SET", "k", bin})
	if string(got) != string(expected) {
		t.Errorf("MarshalCommand() = %q, want %q", got, expected)
	}
}

// TestMarshalCommandErrors tests arguments that can not be encoded
func TestMarshalCommandErrors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []any
	}{
		{"nil", []any{"SET", "k", nil}},
		{"struct", []any{"SET", "k", struct{}{}}},
		{"NaN", []any{"SET", "k", math.NaN()}},
		{"failing marshaler", []any{"SET", "k", failingMarshaler{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MarshalCommand(tt.tokens)
			if err == nil {
				t.Fatalf("MarshalCommand() expected error")
			}
			var encErr *EncodingError
			if !errors.As(err, &encErr) {
				t.Errorf("expected *EncodingError, got %T", err)
			}
		})
	}
}

// TestFormatArgs tests that the unframed arguments are the payloads MarshalCommand frames
func TestFormatArgs(t *testing.T) {
	tokens := []any{"SET", "k", int64(-5), uint64(10), 1.5, false, stringerArg{"abc"}, []byte{0, 1}}

	args, err := FormatArgs(tokens)
	if err != nil {
		t.Fatalf("FormatArgs() error = %v", err)
	}
	expected := []string{"SET", "k", "-5", "10", "1.5", "0", "abc", "\x00\x01"}
	if len(args) != len(expected) {
		t.Fatalf("FormatArgs() returned %d args, want %d", len(args), len(expected))
	}
	for i, arg := range args {
		if string(arg) != expected[i] {
			t.Errorf("arg %d = %q, want %q", i, arg, expected[i])
		}
	}

	framed := make([]any, len(args))
	for i, arg := range args {
		framed[i] = arg
	}
	fromArgs, _ := MarshalCommand(framed)
	fromTokens, _ := MarshalCommand(tokens)
	if string(fromArgs) != string(fromTokens) {
		t.Errorf("MarshalCommand(FormatArgs()) = %q, want %q", fromArgs, fromTokens)
	}

	var encErr *EncodingError
	if _, err := FormatArgs([]any{"SET", "k", struct{}{}}); !errors.As(err, &encErr) {
		t.Errorf("expected *EncodingError, got %v", err)
	}
}

// TestMarshalValue tests the bytes written for replies
func TestMarshalValue(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"ok", NewOK(), "+OK\r\n"},
		{"error", NewErrorValue("ERR unknown"), "-ERR unknown\r\n"},
		{"integer", NewInteger(-2), ":-2\r\n"},
		{"bulk", NewBulk([]byte("first")), "$5\r\nfirst\r\n"},
		{"null bulk", NewNullBulk(), "$-1\r\n"},
		{"null array", NewNullArray(), "*-1\r\n"},
		{"empty array", NewArray(nil), "*0\r\n"},
		{"bulk array with nil", NewBulkArray([][]byte{[]byte("a"), nil}), "*2\r\n$1\r\na\r\n$-1\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalValue(tt.value)
			if err != nil {
				t.Fatalf("MarshalValue() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("MarshalValue() = %q, want %q", got, tt.expected)
			}
		})
	}

	if _, err := MarshalValue(NewSimpleString("a\r\nb")); err == nil {
		t.Errorf("MarshalValue() expected error for simple string containing CRLF")
	}
	if _, err := MarshalValue(Value{Sym: '%'}); err == nil {
		t.Errorf("MarshalValue() expected error for unknown symbol")
	}
}
