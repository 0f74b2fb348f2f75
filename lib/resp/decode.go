package resp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// maxBulkLength is the largest bulk string accepted (512 MB, as Redis).
	maxBulkLength = 512 * 1024 * 1024
	// maxArrayLength bounds the number of array elements accepted.
	maxArrayLength = 1024 * 1024
	// maxPrealloc bounds capacity reserved from a length header before the data arrived.
	maxPrealloc = 1024
)

var (
	ErrProtocol = errors.New("protocol error")
)

// ReadValue reads exactly one RESP value.
// io.EOF is returned unwrapped if the reader is at the end before the first byte.
func ReadValue(bufReader *bufio.Reader) (Value, error) {
	symByte, err := bufReader.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.EOF
		}
		return Value{}, newUnmarshalError(0, "read symbol", err)
	}
	v, err := parseElement(symByte, bufReader)
	if err != nil {
		return Value{}, newUnmarshalError(symByte, "unmarshal", err)
	}
	return v, nil
}

// ReadCommand reads one command sent by a client: an array of bulk strings.
// Every element must be a bulk string, nested values are rejected before they are parsed.
// io.EOF is returned unwrapped if the client closed the connection between
// commands.
func ReadCommand(bufReader *bufio.Reader) ([][]byte, error) {
	symByte, err := bufReader.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, newUnmarshalError(0, "read symbol", err)
	}
	if symByte != SymArray {
		return nil, newUnmarshalError(symByte, "read command", fmt.Errorf("%w: expected Array, got %s", ErrProtocol, GetSymString(symByte)))
	}

	size, err := readNumUntilCRLF(bufReader)
	if err != nil {
		return nil, newUnmarshalError(symByte, "read command", fmt.Errorf("read array size failed: %w", err))
	}
	if size < 1 || size > maxArrayLength {
		return nil, newUnmarshalError(symByte, "read command", fmt.Errorf("%w: invalid multibulk length %d", ErrProtocol, size))
	}

	args := make([][]byte, 0, min(size, maxPrealloc))
	for i := range size {
		elemSym, err := bufReader.ReadByte()
		if err != nil {
			return nil, newUnmarshalError(symByte, "read command", fmt.Errorf("read symbol of argument %d failed: %w", i, err))
		}
		if elemSym != SymBulkString {
			return nil, newUnmarshalError(elemSym, "read command", fmt.Errorf("%w: expected '$' for argument %d, got %q", ErrProtocol, i, elemSym))
		}
		elem, err := parseBulkString(bufReader)
		if err != nil {
			return nil, newUnmarshalError(elemSym, "read command", err)
		}
		if elem.Null {
			return nil, newUnmarshalError(elemSym, "read command", fmt.Errorf("%w: argument %d is a null bulk string", ErrProtocol, i))
		}
		args = append(args, elem.Bulk)
	}
	return args, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func readUntilCRLF(bufReader *bufio.Reader) ([]byte, error) {
	data, err := bufReader.ReadBytes('\r')
	if err != nil {
		return nil, err
	}
	lastByte, err := bufReader.ReadByte()
	if err != nil {
		return nil, err
	}
	if lastByte != '\n' {
		return nil, fmt.Errorf("%w: expected ending byte to be LF, got %q", ErrProtocol, lastByte)
	}
	return data[:len(data)-1], nil
}

func readNumUntilCRLF(bufReader *bufio.Reader) (int64, error) {
	numBytes, err := readUntilCRLF(bufReader)
	if err != nil {
		return 0, fmt.Errorf("read number bytes failed: %w", err)
	}
	num, err := strconv.ParseInt(string(numBytes), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot convert %q to number", ErrProtocol, numBytes)
	}
	return num, nil
}

func parseBulkString(bufReader *bufio.Reader) (Value, error) {
	size, err := readNumUntilCRLF(bufReader)
	if err != nil {
		return Value{}, fmt.Errorf("read bulk string length failed: %w", err)
	}
	if size == -1 {
		return NewNullBulk(), nil
	}
	if size < 0 || size > maxBulkLength {
		return Value{}, fmt.Errorf("%w: invalid bulk string length %d", ErrProtocol, size)
	}

	var buffer []byte
	if size <= maxPrealloc {
		buffer = make([]byte, size+2)
		if _, err := io.ReadFull(bufReader, buffer); err != nil {
			return Value{}, fmt.Errorf("read bulk string data failed: %w", err)
		}
	} else {
		// large bulks grow with the data actually received
		buffer, err = io.ReadAll(io.LimitReader(bufReader, size+2))
		if err != nil {
			return Value{}, fmt.Errorf("read bulk string data failed: %w", err)
		}
		if int64(len(buffer)) < size+2 {
			return Value{}, fmt.Errorf("read bulk string data failed: %w", io.ErrUnexpectedEOF)
		}
	}
	if buffer[size] != '\r' || buffer[size+1] != '\n' {
		return Value{}, fmt.Errorf("%w: found more data at the end of bulk string", ErrProtocol)
	}
	return NewBulk(buffer[:size]), nil
}

func parseArray(bufReader *bufio.Reader) (Value, error) {
	size, err := readNumUntilCRLF(bufReader)
	if err != nil {
		return Value{}, fmt.Errorf("read array size failed: %w", err)
	}
	if size == -1 {
		return NewNullArray(), nil
	}
	if size < 0 || size > maxArrayLength {
		return Value{}, fmt.Errorf("%w: invalid array length %d", ErrProtocol, size)
	}

	array := make([]Value, 0, min(size, maxPrealloc))
	for i := range size {
		symByte, err := bufReader.ReadByte()
		if err != nil {
			return Value{}, fmt.Errorf("read symbol of element %d failed: %w", i, err)
		}
		elem, err := parseElement(symByte, bufReader)
		if err != nil {
			return Value{}, fmt.Errorf("parse element at position %d failed: %w", i, err)
		}
		array = append(array, elem)
	}
	return NewArray(array), nil
}

func parseElement(symByte byte, bufReader *bufio.Reader) (Value, error) {
	if !IsSymbolValid(symByte) {
		return Value{}, fmt.Errorf("%w: unknown symbol byte %q", ErrProtocol, symByte)
	}

	switch symByte {
	case SymString:
		data, err := readUntilCRLF(bufReader)
		if err != nil {
			return Value{}, fmt.Errorf("read simple string value failed: %w", err)
		}
		return NewSimpleString(string(data)), nil
	case SymError:
		data, err := readUntilCRLF(bufReader)
		if err != nil {
			return Value{}, fmt.Errorf("read simple error value failed: %w", err)
		}
		return NewErrorValue(string(data)), nil
	case SymInteger:
		num, err := readNumUntilCRLF(bufReader)
		if err != nil {
			return Value{}, fmt.Errorf("read integer value failed: %w", err)
		}
		return NewInteger(num), nil
	case SymBulkString:
		return parseBulkString(bufReader)
	case SymArray:
		return parseArray(bufReader)
	default:
		return Value{}, fmt.Errorf("%w: symbol type %q is currently not supported", ErrProtocol, symByte)
	}
}
