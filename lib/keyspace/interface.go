package keyspace

// --------------------------------------------------------------------------
// Key Identity
// --------------------------------------------------------------------------

// Key is implemented by every key shape.
type Key interface {
	// Key returns the raw key name the handle was created with.
	Key() string
	// Del builds `DEL key`. Available for every shape.
	Del() Cmd
}

// --------------------------------------------------------------------------
// Capabilities
// --------------------------------------------------------------------------

// GenericValue holds the operations that are meaningful for any stored value
// regardless of its shape (see https://redis.io/commands/?group=generic).
//
// The interface is sealed: only the shapes of this package implement it, each
// one individually.
type GenericValue interface {
	Key

	// TTL builds `TTL key`, the remaining time to live in seconds.
	TTL() Cmd
	// PTTL builds `PTTL key`, the remaining time to live in milliseconds.
	PTTL() Cmd
	// Expire builds `EXPIRE key ttlSecs`. The value is not validated here,
	// the store interprets it.
	Expire(ttlSecs uint64) Cmd

	genericValue()
}

// SingleValue holds the operations for keys storing exactly one scalar
// (values that can be GET and SET). SetKey does not implement it.
//
// The interface is sealed: only the shapes of this package implement it, each
// one individually.
type SingleValue interface {
	Key

	// Get builds `GET key`. The result type is chosen when the command is
	// executed, e.g. client.Query[string].
	Get() Cmd
	// Set builds `SET key val`, unconditionally overwriting the value.
	Set(val any) Cmd

	singleValue()
}

// compile time checks for the capability sets of each shape
var (
	_ GenericValue = StringKey{}
	_ SingleValue  = StringKey{}
	_ GenericValue = IntKey{}
	_ SingleValue  = IntKey{}
	_ GenericValue = SetKey{}
)
