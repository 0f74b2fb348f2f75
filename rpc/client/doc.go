// Package client implements the executor that runs commands built by the keyspace
// package against a RESP server (the keyspace server or any redis compatible server).
//
// The package focuses on:
//   - Sending commands with a go-redis client that dials through a configurable transport
//   - Typed results, chosen by the caller with Query or bound to the key shape with Fetch
//   - Conversion of error replies into *resp.ServerError
//   - Client side latency and error metrics
//
// Key Components:
//
//   - NewExecutor: Factory function that creates the redis client and returns an IExecutor.
//     Commands are only retried when their connection could not be established.
//
//   - Query: Generic function executing a command and decoding the reply into
//     string, []byte, int64, bool, []string, [][]byte, []*string or time.Duration.
//
//   - Fetch: Executes a keyspace.Typed command, the result type follows from the key.
//
//   - Stats: Snapshot of the per command timers and the error meter.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  TimeoutSecond: 5,
//	  Transport: common.ClientTransportConfig{
//	    Endpoints:  []string{"localhost:6379"},
//	    RetryCount: 3,
//	  },
//	}
//
//	exec, _ := client.NewExecutor(config, tcp.NewTCPClientTransport())
//	defer exec.Close()
//
//	set := keyspace.NewSetKey("myset1")
//	_ = client.Exec(exec, set.SAdd("first"))
//	members, _ := client.Fetch(exec, set.Load())
//
// Thread Safety:
//
//	The executor is thread-safe and can be used concurrently from multiple goroutines.
package client
