// Package base provides a foundation for the RESP transport layers, implementing
// core functionality for the client and the server independent of the specific
// network protocol (TCP, Unix sockets). It serves as a base layer that can be
// extended with protocol-specific connectors.
//
// The package focuses on:
//   - Protocol-agnostic dialing for the client, the redis client of the executor
//     owns pooling and reply matching
//   - A RESP server reading pipelined commands and answering them in order
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - clientTransport: Dials an endpoint and upgrades the connection with the
//     socket options of the config. Failures are wrapped in transport.ErrDial.
//
//   - serverTransport: Core server implementation that accepts connections, reads
//     commands and passes them to the registered handler. Pipelined commands are
//     answered with a single write. The write deadline is refreshed before every
//     reply, so a long burst is only dropped if a single write stalls.
//
// Thread Safety:
//
//	All public methods are thread-safe. The server creates a dedicated goroutine
//	for each connection.
package base
