package transport

import (
	"context"
	"errors"
	"net"

	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming commands
// This function is called by a server transport layer for every command read from a connection.
// args holds the command name followed by its arguments, the returned value is written back as reply
type ServerHandleFunc func(args [][]byte) resp.Value

// IRPCServerTransport is the interface for the RPC transport layer
// It must accept a ServerConfig as a parameter
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a command is received
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and blocks while serving connections.
	// It returns nil once Close was called
	Listen(config common.ServerConfig) error
	// Close stops the listener and closes all open connections
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// ErrDial wraps every failure to open a connection. No command was written when it is returned
var ErrDial = errors.New("failed to connect")

// IRPCClientTransport opens the connections of a client.
// Pooling, pipelining and reading replies is done by the redis client using the transport
type IRPCClientTransport interface {
	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
	// Dial opens a connection to endpoint and applies the socket options of config.
	// Failures are wrapped in ErrDial
	Dial(ctx context.Context, endpoint string, config common.ClientConfig) (net.Conn, error)
}
