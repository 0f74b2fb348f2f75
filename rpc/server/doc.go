// Package server implements the RESP server of the keyspace system. It reads
// commands from a transport, executes them against a local in-memory store and
// writes redis compatible replies.
//
// The package focuses on:
//   - Dispatching the keyspace commands (plus PING, ECHO, DBSIZE) to a store.IStore
//   - Adapter pattern to decouple the store from the wire protocol
//   - Redis compatible arity checks and error replies (ERR, WRONGTYPE)
//   - Metrics in the prometheus text format
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for server adapters,
//     with the Handle method that processes one command against a store.IStore.
//
//   - NewIStoreServerAdapter: Factory function creating the adapter for the keyspace
//     commands. Command names are case-insensitive.
//
//   - NewRPCServer: Factory function creating a configured server on top of a transport.
//     Serve blocks until Shutdown is called.
//
// Metrics:
//
//	Every server keeps its own metrics set: the number of keys, the number of
//	processed and failed commands and a duration summary per command. If
//	ServerConfig.MetricsEndpoint is set, they are served on /metrics together
//	with the process metrics.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  TimeoutSecond: 0,
//	  GCIntervalMs:  100,
//	  LogLevel:      "info",
//	  Transport: common.ServerTransportConfig{
//	    Endpoint: "/tmp/keyspace.sock",
//	  },
//	}
//
//	s := server.NewRPCServer(config, unix.NewUnixDefaultServerTransport())
//	go func() {
//	  if err := s.Serve(); err != nil {
//	    log.Fatal(err)
//	  }
//	}()
//	defer s.Shutdown(context.Background())
package server
