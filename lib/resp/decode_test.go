package resp

import (
	"bufio"
	"errors"
	"io"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

// TestReadValue tests parsing of all supported reply types
func TestReadValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{"simple string", "+OK\r\n", NewSimpleString("OK")},
		{"error", "-WRONGTYPE Operation against a key\r\n", NewErrorValue("WRONGTYPE Operation against a key")},
		{"integer", ":1000\r\n", NewInteger(1000)},
		{"negative integer", ":-2\r\n", NewInteger(-2)},
		{"bulk", "$5\r\nfirst\r\n", NewBulk([]byte("first"))},
		{"empty bulk", "$0\r\n\r\n", NewBulk([]byte{})},
		{"bulk containing CRLF", "$4\r\na\r\nb\r\n", NewBulk([]byte("a\r\nb"))},
		{"null bulk", "$-1\r\n", NewNullBulk()},
		{"null array", "*-1\r\n", NewNullArray()},
		{"empty array", "*0\r\n", NewArray([]Value{})},
		{
			"nested array",
			"*2\r\n$1\r\na\r\n*2\r\n:1\r\n$-1\r\n",
			NewArray([]Value{NewBulk([]byte("a")), NewArray([]Value{NewInteger(1), NewNullBulk()})}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadValue(reader(tt.input))
			if err != nil {
				t.Fatalf("ReadValue() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ReadValue() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

// TestReadValueErrors tests malformed input
func TestReadValueErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		protocol bool
	}{
		{"unknown symbol", "%1\r\n", true},
		{"missing LF", "+OK\rX", true},
		{"bad integer", ":abc\r\n", true},
		{"bad bulk length", "$-5\r\n", true},
		{"bulk without CRLF", "$2\r\nabcd", true},
		{"truncated bulk", "$10\r\nabc", false},
		{"truncated array", "*2\r\n$1\r\na\r\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadValue(reader(tt.input))
			if err == nil {
				t.Fatalf("ReadValue() expected error")
			}
			if got := errors.Is(err, ErrProtocol); got != tt.protocol {
				t.Errorf("errors.Is(err, ErrProtocol) = %v, want %v (err: %v)", got, tt.protocol, err)
			}
		})
	}

	if _, err := ReadValue(reader("")); err != io.EOF {
		t.Errorf("ReadValue() on empty input = %v, want io.EOF", err)
	}
}

// TestReadCommand tests parsing of client commands, including several pipelined commands
func TestReadCommand(t *testing.T) {
	encoded, err := MarshalCommand([]any{"SADD", "myset1", "first"})
	if err != nil {
		t.Fatalf("MarshalCommand() error = %v", err)
	}
	second, _ := MarshalCommand([]any{"SMEMBERS", "myset1"})

	r := bufio.NewReader(strings.NewReader(string(encoded) + string(second)))

	args, err := ReadCommand(r)
	if err != nil {
		t.Fatalf("ReadCommand() error = %v", err)
	}
	if want := [][]byte{[]byte("SADD"), []byte("myset1"), []byte("first")}; !reflect.DeepEqual(args, want) {
		t.Errorf("ReadCommand() = %q, want %q", args, want)
	}

	args, err = ReadCommand(r)
	if err != nil {
		t.Fatalf("ReadCommand() error = %v", err)
	}
	if want := [][]byte{[]byte("SMEMBERS"), []byte("myset1")}; !reflect.DeepEqual(args, want) {
		t.Errorf("ReadCommand() = %q, want %q", args, want)
	}

	if _, err := ReadCommand(r); err != io.EOF {
		t.Errorf("ReadCommand() at end = %v, want io.EOF", err)
	}
}

// TestReadCommandErrors tests values that are not valid commands
func TestReadCommandErrors(t *testing.T) {
	inputs := map[string]string{
		"not an array":  "+PING\r\n",
		"empty array":   "*0\r\n",
		"null array":    "*-1\r\n",
		"integer arg":   "*2\r\n$3\r\nGET\r\n:1\r\n",
		"null bulk arg": "*2\r\n$3\r\nGET\r\n$-1\r\n",
		"nested array":  "*2\r\n$3\r\nGET\r\n*1\r\n$1\r\na\r\n",
		"nested header": strings.Repeat("*1048576\r\n", 4),
		"inline":        "PING\r\n",
		"too long":      "*1048577\r\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCommand(reader(input))
			if !errors.Is(err, ErrProtocol) {
				t.Errorf("ReadCommand() error = %v, want ErrProtocol", err)
			}
		})
	}
}

// TestReadCommandLengthHeaders tests that length headers without the announced data
// do not reserve memory up front
func TestReadCommandLengthHeaders(t *testing.T) {
	inputs := map[string]string{
		"array":  "*1048576\r\n$3\r\nGET\r\n",
		"bulk":   "*1\r\n$536870912\r\nabc",
		"nested": strings.Repeat("*1048576\r\n", 64),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			if _, err := ReadCommand(reader(input)); err == nil {
				t.Fatalf("ReadCommand() expected error")
			}
			runtime.ReadMemStats(&after)

			if allocated := after.TotalAlloc - before.TotalAlloc; allocated > 16<<20 {
				t.Errorf("ReadCommand() allocated %d bytes for %d bytes of input", allocated, len(input))
			}
		})
	}
}

// TestServerError tests the error code extraction of error replies
func TestServerError(t *testing.T) {
	tests := []struct {
		msg    string
		prefix string
	}{
		{"WRONGTYPE Operation against a key holding the wrong kind of value", "WRONGTYPE"},
		{"ERR value is not an integer or out of range", "ERR"},
		{"something went wrong", ""},
		{"", ""},
	}

	for _, tt := range tests {
		err := NewErrorValue(tt.msg).Err()
		var serverErr *ServerError
		if !errors.As(err, &serverErr) {
			t.Fatalf("Err() = %T, want *ServerError", err)
		}
		if got := serverErr.Prefix(); got != tt.prefix {
			t.Errorf("Prefix(%q) = %q, want %q", tt.msg, got, tt.prefix)
		}
	}

	if err := NewOK().Err(); err != nil {
		t.Errorf("Err() on +OK = %v, want nil", err)
	}
}
