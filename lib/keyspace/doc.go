// Package keyspace provides typed key handles for a RESP key-value store
// (Redis and compatible servers). A key is declared with a fixed shape and only
// the operations valid for that shape can be built for it. Every operation
// compiles down to exactly one command value (Cmd) that an executor sends to
// the store.
//
// The package focuses on:
//   - Command values: ordered, immutable token lists [NAME, arg1, ..., argN]
//   - Key shapes: StringKey, IntKey and SetKey
//   - Capabilities: GenericValue (expiry) and SingleValue (GET/SET), implemented
//     individually by each shape and sealed to this package
//   - Multi-key builders: MGet, SUnion and SInter over iter.Seq
//
// Key Components:
//
//   - Cmd: The only artifact of this package. It never performs I/O. Executing
//     it is the job of an executor, e.g. the one in the rpc/client package.
//
//   - Key: Implemented by every shape. Exposes the raw key name and DEL.
//
//   - GenericValue: TTL, PTTL and EXPIRE. Implemented by all three shapes.
//
//   - SingleValue: GET and SET. Implemented by StringKey and IntKey, but not by
//     SetKey, so SetKey can neither be read as a scalar nor passed to MGet.
//
//   - Typed: A command bound to the Go type of its reply. Load reads a key as
//     the type of its shape (string, int64 or []string).
//
// Shape mismatches are compile errors, not runtime errors:
//
//	keyspace.NewSetKey("tags").SAdd("go")      // ok
//	keyspace.NewStringKey("name").SAdd("go")   // does not compile
//	keyspace.MGet(slices.Values(setKeys))      // does not compile
//
// Key handles are plain values. Operation methods take the handle by value and
// return a new Cmd that does not reference the handle, so a handle is
// conventionally built and consumed in one expression:
//
//	cmd := schema.Visits().IncrBy(1)
//
// Usage with an executor:
//
//	exec, _ := client.NewExecutor(config, tcp.NewTCPClientTransport())
//	_, _ = exec.Do(keyspace.NewSetKey("myset1").SAdd("first"))
//	members, _ := client.Query[[]string](exec, keyspace.NewSetKey("myset1").SMembers())
//	visits, _ := client.Fetch(exec, keyspace.NewIntKey("visits").Load()) // int64
package keyspace
