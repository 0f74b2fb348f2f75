// Package transport defines the interfaces and abstractions for RESP communication
// between the executor and the server. It provides a common contract that all transport
// implementations must fulfill.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transports that open the
//     connections used by the redis client of the executor. Dial failures are
//     wrapped in ErrDial.
//
//   - IRPCServerTransport: Interface for server-side transport implementations that
//     receives commands and passes them to the registered handler.
//
//   - ServerHandleFunc: Function type for command handling callbacks.
package transport
