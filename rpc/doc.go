// Package rpc provides the communication layer between the executor and a RESP
// server. Commands built with the keyspace package are sent by a go-redis client
// dialing through a pluggable transport, and served by a RESP server on the same
// transports.
//
// The package is organized into several subpackages:
//
//   - common: Configuration structures and logging shared by client and server.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets).
//
//   - client: The executor, running commands with go-redis against any redis
//     compatible server and decoding replies into typed results.
//
//   - server: The in-memory RESP server serving the keyspace commands from a local store.
package rpc
