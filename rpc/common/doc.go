// Package common provides configuration structures and utilities shared by the
// RESP client and server.
//
// The package focuses on:
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with Dragonboat's logger package
//
// Key Components:
//
//   - ServerConfig: Configuration of the RESP server, including the listener,
//     socket options, the garbage collection interval of the local store and the
//     optional metrics endpoint.
//
//   - ClientConfig: Configuration of the executor, controlling endpoints,
//     connections per endpoint, timeouts, and retry behavior.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logging system while providing consistent formatting across the application.
package common
