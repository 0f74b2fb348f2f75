// Package cmd implements the command-line interface of keyspace. It provides a
// hierarchical command structure with operations for running the in-memory
// server and interacting with a server as a client.
//
// The package is organized into several subpackages:
//
//   - kv: Typed key-value commands (get, set, incr, sadd, smembers, etc.) and a benchmark
//   - serve: Commands for starting and configuring the keyspace server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All flags can be set with environment variables of the form KEYSPACE_<FLAG>
// (e.g. KEYSPACE_TRANSPORT_ENDPOINTS=localhost:6379), also read from .env and .env.local.
//
// See keyspace -help for a list of all commands.
package cmd
