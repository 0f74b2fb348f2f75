package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/lib/store"
	"github.com/ValentinKolb/keyspace/lib/store/lstore"
	"github.com/ValentinKolb/keyspace/rpc/common"
	"github.com/ValentinKolb/keyspace/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// RPCServer serves the keyspace commands over RESP from a local in-memory store
type RPCServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	adapter   IRPCServerAdapter
	store     store.IStore
	metrics   *serverMetrics

	mu            sync.Mutex
	metricsServer *http.Server
}

// NewRPCServer creates a new RPC server
// It takes a config and a transport as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		unix.NewUnixDefaultServerTransport(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(config common.ServerConfig, transport transport.IRPCServerTransport) *RPCServer {
	gcInterval := lstore.DefaultGCInterval
	if config.GCIntervalMs > 0 {
		gcInterval = time.Duration(config.GCIntervalMs) * time.Millisecond
	}

	s := lstore.NewLocalStore(gcInterval)

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return &RPCServer{
		config:    config,
		transport: transport,
		adapter:   NewIStoreServerAdapter(),
		store:     s,
		metrics:   newServerMetrics(s),
	}
}

// Handle executes one command and records its metrics
func (s *RPCServer) Handle(args [][]byte) resp.Value {
	start := time.Now()
	reply := s.adapter.Handle(args, s.store)

	name := ""
	if len(args) > 0 {
		name = strings.ToUpper(string(args[0]))
	}
	s.metrics.observe(name, start, reply)

	if reply.Sym == resp.SymError {
		Logger.Debugf("Command %q failed: %s", name, reply.Str)
	}
	return reply
}

// Serve starts the RPC server and blocks until Shutdown is called
// This function will also start the metrics endpoint (if configured) and the transport layer
func (s *RPCServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// Shutdown stops the transport, the metrics endpoint and the store
func (s *RPCServer) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.transport.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close transport: %w", err))
	}

	s.mu.Lock()
	metricsServer := s.metricsServer
	s.mu.Unlock()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop metrics endpoint: %w", err))
		}
	}

	s.store.Close()
	Logger.Infof("RPC Server stopped")
	return errors.Join(errs...)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (s *RPCServer) init() error {
	if s.config.Transport.Endpoint == "" {
		return fmt.Errorf("no endpoint configured")
	}

	// Configure the transport layer
	s.transport.RegisterHandler(s.Handle)

	if s.config.MetricsEndpoint != "" {
		s.startMetricsEndpoint()
	}
	return nil
}

// startMetricsEndpoint serves the metrics in the prometheus text format on /metrics
func (s *RPCServer) startMetricsEndpoint() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		s.metrics.writePrometheus(w)
	})

	srv := &http.Server{
		Addr:              s.config.MetricsEndpoint,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	s.metricsServer = srv
	s.mu.Unlock()

	go func() {
		Logger.Infof("Serving metrics on http://%s/metrics", s.config.MetricsEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("Metrics endpoint failed: %v", err)
		}
	}()
}
