package store

import (
	"fmt"
	"strconv"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Values returned by PTTL for keys without a remaining time to live.
const (
	TTLMissing    int64 = -2 // the key does not exist
	TTLPersistent int64 = -1 // the key exists but has no expiry
)

// IStore is the interface of a data-structure store serving the commands built
// by the keyspace package. Keys hold either a string (which may be an integer)
// or a set of members. Operations on a key holding the other kind return an
// *Error with RetCWrongType.
//
// Implementations must be safe for concurrent use.
type IStore interface {

	// --------------------------------------------------------------------------
	// Generic Operations
	// --------------------------------------------------------------------------

	// Del removes the given keys and returns how many of them existed.
	Del(keys ...string) (removed int)
	// PTTL returns the remaining time to live of a key in milliseconds,
	// TTLMissing if the key does not exist and TTLPersistent if it has no expiry.
	PTTL(key string) (ttlMs int64)
	// Expire sets the time to live of an existing key. A ttl <= 0 deletes the key.
	// It returns false if the key does not exist.
	Expire(key string, ttlMs int64) (ok bool)

	// --------------------------------------------------------------------------
	// String Operations
	// --------------------------------------------------------------------------

	// Get returns the value of a key. The boolean return value indicates whether the key was found.
	Get(key string) (value []byte, loaded bool, err error)
	// Set stores a value and clears any expiry, overwriting keys of any kind.
	Set(key string, value []byte)
	// MGet returns the values of all keys in order. Missing keys and keys that
	// do not hold a string are returned as nil.
	MGet(keys ...string) (values [][]byte)
	// IncrBy adds delta to the integer stored at key (0 if missing) and returns the new value.
	IncrBy(key string, delta int64) (value int64, err error)

	// --------------------------------------------------------------------------
	// Set Operations
	// --------------------------------------------------------------------------

	// SAdd adds members to a set and returns how many were not yet present.
	SAdd(key string, members ...[]byte) (added int, err error)
	// SRem removes members from a set and returns how many were present.
	// The key is removed once the set is empty.
	SRem(key string, members ...[]byte) (removed int, err error)
	// SMembers returns all members of a set, sorted. A missing key is an empty set.
	SMembers(key string) (members [][]byte, err error)
	// SUnion returns the union of all given sets, sorted.
	SUnion(keys ...string) (members [][]byte, err error)
	// SInter returns the intersection of all given sets, sorted.
	SInter(keys ...string) (members [][]byte, err error)

	// --------------------------------------------------------------------------
	// Lifecycle
	// --------------------------------------------------------------------------

	// Len returns the number of keys, including expired keys not yet collected.
	Len() int
	// Close stops background work of the store.
	Close()
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// Predefined errors, compare with errors.Is.
var (
	ErrWrongType = NewError(RetCWrongType, "Operation against a key holding the wrong kind of value")
	ErrNotInt    = NewError(RetCNotInteger, "value is not an integer or out of range")
	ErrOverflow  = NewError(RetCOverflow, "increment or decrement would overflow")
)

// ParseInt parses a stored value or command argument as an integer.
// Only the canonical decimal form is accepted, the way Redis does it: no sign
// prefix, no leading zeros, no surrounding whitespace and not empty.
// Anything else returns ErrNotInt.
func ParseInt(value []byte) (int64, error) {
	n, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != string(value) {
		return 0, ErrNotInt
	}
	return n, nil
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Command executed successfully.
	RetCInternalError                // 1: Command failed due to an internal error.
	RetCWrongType                    // 2: The key holds a value of another kind.
	RetCNotInteger                   // 3: The value is not an integer.
	RetCOverflow                     // 4: The result does not fit into int64.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCWrongType:
		return "WrongType"
	case RetCNotInteger:
		return "NotInteger"
	case RetCOverflow:
		return "Overflow"
	default:
		return "Unknown"
	}
}
