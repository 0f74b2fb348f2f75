package resp

import (
	"bufio"
	"encoding"
	"fmt"
	"math"
	"strconv"
)

var CRLF = []byte{'\r', '\n'}

// --------------------------------------------------------------------------
// Commands (client -> server)
// --------------------------------------------------------------------------

// MarshalCommand encodes a command token list as a RESP array of bulk strings.
func MarshalCommand(tokens []any) ([]byte, error) {
	return AppendCommand(nil, tokens)
}

// AppendCommand appends the encoded command to dst.
func AppendCommand(dst []byte, tokens []any) ([]byte, error) {
	args, err := FormatArgs(tokens)
	if err != nil {
		return nil, err
	}

	dst = append(dst, SymArray)
	dst = strconv.AppendInt(dst, int64(len(args)), 10)
	dst = append(dst, CRLF...)
	for _, arg := range args {
		dst = appendBulkBytes(dst, arg)
	}
	return dst, nil
}

// FormatArgs converts every token into the payload of its bulk string.
// Clients that do their own framing send these bytes unchanged, so a command
// reaches the server exactly as MarshalCommand encodes it.
func FormatArgs(tokens []any) ([][]byte, error) {
	args := make([][]byte, len(tokens))
	for idx, token := range tokens {
		arg, err := FormatArg(token)
		if err != nil {
			return nil, newMarshalError(SymArray, fmt.Sprintf("write argument %d", idx), err)
		}
		args[idx] = arg
	}
	return args, nil
}

// FormatArg converts one command argument into the payload of its bulk string.
// Integers are written in decimal, floats in the shortest representation that
// round-trips, bools as 1 or 0.
func FormatArg(arg any) ([]byte, error) {
	switch v := arg.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case int:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int8:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(nil, v, 10), nil
	case uint:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint8:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint16:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint32:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint64:
		return strconv.AppendUint(nil, v, 10), nil
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case bool:
		if v {
			return []byte("1"), nil
		}
		return []byte("0"), nil
	case encoding.BinaryMarshaler:
		return v.MarshalBinary()
	case fmt.Stringer:
		return []byte(v.String()), nil
	case nil:
		return nil, fmt.Errorf("nil argument")
	default:
		return nil, fmt.Errorf("unsupported argument type %T", arg)
	}
}

func appendBulkBytes(dst []byte, b []byte) []byte {
	dst = append(dst, SymBulkString)
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, CRLF...)
	dst = append(dst, b...)
	return append(dst, CRLF...)
}

func formatFloat(f float64, bitSize int) ([]byte, error) {
	switch {
	case math.IsNaN(f):
		return nil, fmt.Errorf("NaN is not a valid argument")
	case math.IsInf(f, 1):
		return []byte("+inf"), nil
	case math.IsInf(f, -1):
		return []byte("-inf"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, bitSize), nil
}

// --------------------------------------------------------------------------
// Values (server -> client)
// --------------------------------------------------------------------------

// MarshalValue encodes a reply value.
func MarshalValue(v Value) ([]byte, error) {
	return AppendValue(nil, v)
}

// WriteValue encodes v into w. The caller is responsible for flushing.
func WriteValue(w *bufio.Writer, v Value) error {
	b, err := MarshalValue(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return newMarshalError(v.Sym, "write", err)
	}
	return nil
}

// AppendValue appends the encoded reply value to dst.
func AppendValue(dst []byte, v Value) ([]byte, error) {
	switch v.Sym {
	case SymString, SymError:
		for i := 0; i < len(v.Str); i++ {
			if v.Str[i] == '\r' || v.Str[i] == '\n' {
				return nil, newMarshalError(v.Sym, "write string", fmt.Errorf("simple strings must not contain CR or LF"))
			}
		}
		dst = append(dst, v.Sym)
		dst = append(dst, v.Str...)
		return append(dst, CRLF...), nil
	case SymInteger:
		dst = append(dst, SymInteger)
		dst = strconv.AppendInt(dst, v.Integer, 10)
		return append(dst, CRLF...), nil
	case SymBulkString:
		if v.Null {
			return append(dst, "$-1\r\n"...), nil
		}
		return appendBulkBytes(dst, v.Bulk), nil
	case SymArray:
		if v.Null {
			return append(dst, "*-1\r\n"...), nil
		}
		dst = append(dst, SymArray)
		dst = strconv.AppendInt(dst, int64(len(v.Array)), 10)
		dst = append(dst, CRLF...)
		for idx, elem := range v.Array {
			var err error
			dst, err = AppendValue(dst, elem)
			if err != nil {
				return nil, newMarshalError(SymArray, fmt.Sprintf("write element %d", idx), err)
			}
		}
		return dst, nil
	default:
		return nil, newMarshalError(v.Sym, "write symbol", fmt.Errorf("unknown symbol type %q", v.Sym))
	}
}
