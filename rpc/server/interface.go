package server

import (
	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/lib/store"
)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for translating commands into store calls
type IRPCServerAdapter interface {
	// Handle handles a command and returns the reply.
	// args holds the command name followed by its arguments.
	// If an error occurs, it is returned as RESP error value
	Handle(args [][]byte, store store.IStore) (reply resp.Value)
}
