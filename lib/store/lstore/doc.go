// Package lstore provides a local, in-memory implementation of the store.IStore
// interface.
//
// Values are kept in an xsync.MapOf keyed by the raw key name. Every read-modify-write
// operation (INCRBY, SADD, SREM, EXPIRE) runs inside MapOf.Compute, so it is atomic
// per key without a global lock. Sets are copy-on-write, readers never observe a
// set while it is being modified.
//
// Expiry:
//
//	Keys with a time to live are scheduled in a util.MapHeap ordered by deadline.
//	Expired keys are invisible immediately (checked on every access) and are
//	physically removed by a garbage collector goroutine that pops all due keys
//	from the heap at a fixed interval.
//
// Usage:
//
//	s := lstore.NewLocalStore(100 * time.Millisecond)
//	defer s.Close()
//
//	_, _ = s.SAdd("myset1", []byte("first"))
//	members, _ := s.SMembers("myset1")
package lstore
