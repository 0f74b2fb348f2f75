package resp

import (
	"fmt"
	"strconv"
)

// Sym is the type byte that starts every RESP value.
type Sym = byte

const (
	SymString     Sym = '+'
	SymError      Sym = '-'
	SymInteger    Sym = ':'
	SymBulkString Sym = '$'
	SymArray      Sym = '*'
)

var symbolStrings = map[Sym]string{
	SymString:     "String",
	SymError:      "Error",
	SymInteger:    "Integer",
	SymBulkString: "BulkString",
	SymArray:      "Array",
}

// IsSymbolValid reports whether sym is one of the supported RESP2 types.
func IsSymbolValid(sym Sym) bool {
	_, exists := symbolStrings[sym]
	return exists
}

// GetSymString returns a readable name for sym.
func GetSymString(sym Sym) string {
	if value, exists := symbolStrings[sym]; exists {
		return value
	}
	return fmt.Sprintf("<unknown|%q>", sym)
}

// Value is a single RESP value.
// Only the field matching Sym is meaningful. Null is set for the null bulk
// string ($-1) and the null array (*-1).
type Value struct {
	Sym Sym

	Str     string // SymString and SymError
	Integer int64  // SymInteger
	Bulk    []byte // SymBulkString
	Array   []Value
	Null    bool
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

func NewSimpleString(value string) Value {
	return Value{Sym: SymString, Str: value}
}

// NewOK returns the `+OK` status reply.
func NewOK() Value {
	return NewSimpleString("OK")
}

func NewErrorValue(value string) Value {
	return Value{Sym: SymError, Str: value}
}

func NewInteger(value int64) Value {
	return Value{Sym: SymInteger, Integer: value}
}

func NewBulk(value []byte) Value {
	return Value{Sym: SymBulkString, Bulk: value}
}

func NewNullBulk() Value {
	return Value{Sym: SymBulkString, Null: true}
}

func NewArray(values []Value) Value {
	return Value{Sym: SymArray, Array: values}
}

func NewNullArray() Value {
	return Value{Sym: SymArray, Null: true}
}

// NewBulkArray returns an array of bulk strings. Nil elements become null
// bulk strings, as in MGET replies for missing keys.
func NewBulkArray(values [][]byte) Value {
	array := make([]Value, 0, len(values))
	for _, value := range values {
		if value == nil {
			array = append(array, NewNullBulk())
		} else {
			array = append(array, NewBulk(value))
		}
	}
	return NewArray(array)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// IsNull reports whether v is a null bulk string or a null array.
func (v Value) IsNull() bool {
	return v.Null
}

// Err returns a *ServerError if v is an error reply, nil otherwise.
func (v Value) Err() error {
	if v.Sym != SymError {
		return nil
	}
	return NewServerError(v.Str)
}

// String renders the value for logs and the CLI.
func (v Value) String() string {
	switch v.Sym {
	case SymString:
		return v.Str
	case SymError:
		return "(error) " + v.Str
	case SymInteger:
		return "(integer) " + strconv.FormatInt(v.Integer, 10)
	case SymBulkString:
		if v.Null {
			return "(nil)"
		}
		return strconv.Quote(string(v.Bulk))
	case SymArray:
		if v.Null {
			return "(nil)"
		}
		if len(v.Array) == 0 {
			return "(empty array)"
		}
		s := ""
		for i, elem := range v.Array {
			if i > 0 {
				s += "\n"
			}
			s += fmt.Sprintf("%d) %s", i+1, elem.String())
		}
		return s
	default:
		return fmt.Sprintf("<unknown|%q>", v.Sym)
	}
}
