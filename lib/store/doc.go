// Package store provides the data-structure store that serves the commands
// built by the keyspace package. It is the backend of the RESP server in
// rpc/server and is used as a stand-in for Redis in tests and local setups.
//
// The package focuses on:
//   - A unified interface (IStore) for string, integer and set values with expiry
//   - Redis compatible semantics for the supported operations (TTL states,
//     WRONGTYPE errors, empty sets being removed)
//
// Key Components:
//
//   - IStore Interface: The core abstraction defining the operations of the
//     store. Write and read operations report failures through *Error values.
//
//   - Error System: A structured error reporting mechanism using typed error codes
//     and descriptive messages. The RESP server maps the codes to the error
//     replies a Redis server would send (WRONGTYPE, ERR ...).
//
// Implementations:
//
//   - Local Store (lstore): A non-distributed in-memory implementation built on
//     xsync.MapOf. Expired keys are removed lazily on access and by a background
//     garbage collector driven by an expiry heap.
//     Available in the "github.com/ValentinKolb/keyspace/lib/store/lstore" package.
package store
