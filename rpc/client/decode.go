package client

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ValentinKolb/keyspace/lib/keyspace"
)

var (
	// ErrNil is returned if the reply is nil (e.g. GET of a missing key, TTL of a missing key)
	ErrNil = errors.New("keyspace: nil reply")
	// ErrNoExpiry is returned when decoding the TTL of a key without expiry into a time.Duration
	ErrNoExpiry = errors.New("keyspace: key has no expiry")
	// ErrClosed is returned by Do after Close was called
	ErrClosed = errors.New("keyspace: executor is closed")
)

// decodeReply converts a reply of the redis client into T. name is the name of the
// command that produced the reply, it selects the unit of TTL replies.
// Replies are string, int64, []any or nil (for null elements of arrays)
func decodeReply[T any](name string, v any) (out T, err error) {
	switch dst := any(&out).(type) {
	case *string:
		*dst, err = decodeString(v)
	case *[]byte:
		*dst, err = decodeBytes(v)
	case *int64:
		*dst, err = decodeInt(v)
	case *bool:
		*dst, err = decodeBool(v)
	case *time.Duration:
		*dst, err = decodeDuration(name, v)
	case *[]string:
		*dst, err = decodeArray(v, decodeString)
	case *[][]byte:
		*dst, err = decodeArray(v, func(e any) ([]byte, error) {
			if e == nil {
				return nil, nil
			}
			return decodeBytes(e)
		})
	case *[]*string:
		*dst, err = decodeArray(v, func(e any) (*string, error) {
			if e == nil {
				return nil, nil
			}
			s, err := decodeString(e)
			return &s, err
		})
	default:
		err = fmt.Errorf("unsupported result type %T", out)
	}
	return out, err
}

func unexpected(v any, want string) error {
	return fmt.Errorf("unexpected reply of type %T, expected %s", v, want)
}

func decodeString(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", ErrNil
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	}
	return "", unexpected(v, "string")
}

func decodeBytes(v any) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return nil, ErrNil
	case string:
		return []byte(v), nil
	}
	return nil, unexpected(v, "bulk string")
}

func decodeInt(v any) (int64, error) {
	switch v := v.(type) {
	case nil:
		return 0, ErrNil
	case int64:
		return v, nil
	case string:
		// GET of an integer key
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("reply is not an integer: %w", err)
		}
		return i, nil
	}
	return 0, unexpected(v, "integer")
}

func decodeBool(v any) (bool, error) {
	switch v := v.(type) {
	case int64:
		return v != 0, nil
	case string:
		// status reply of SET
		if v == "OK" {
			return true, nil
		}
	}
	return false, unexpected(v, "integer")
}

// decodeDuration decodes TTL (seconds) and PTTL (milliseconds) replies
func decodeDuration(name string, v any) (time.Duration, error) {
	i, ok := v.(int64)
	if !ok {
		return 0, unexpected(v, "integer")
	}
	switch i {
	case -2:
		return 0, ErrNil
	case -1:
		return 0, ErrNoExpiry
	}
	if name == keyspace.CmdTTL {
		return time.Duration(i) * time.Second, nil
	}
	return time.Duration(i) * time.Millisecond, nil
}

func decodeArray[E any](v any, decode func(any) (E, error)) ([]E, error) {
	if v == nil {
		return nil, ErrNil
	}
	array, ok := v.([]any)
	if !ok {
		return nil, unexpected(v, "array")
	}
	out := make([]E, 0, len(array))
	for i, e := range array {
		elem, err := decode(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, elem)
	}
	return out, nil
}
