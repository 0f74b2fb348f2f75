// Package tcp implements the TCP socket transport of the RESP client and server.
// It provides concrete implementations of the base package's connector interfaces.
//
// This package builds on the base package's transport functionality. See the base
// package documentation for details.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// Both connectors apply the TCPConf and SocketConf options (Nagle, keep alive,
// linger, socket buffer sizes) to every connection. The zero value of TCPConf
// keeps the defaults of Go and the OS.
package tcp
