// Package unix implements the RESP transport over Unix domain sockets. It provides
// low latency communication for processes running on the same machine.
//
// This package extends the base transport layer with Unix socket-specific connectors.
//
// Key Components:
//
//   - clientConnector: Establishes connections using Unix domain sockets
//
//   - serverConnector: Creates Unix socket listeners, an existing socket file at
//     the endpoint path is removed first
package unix
