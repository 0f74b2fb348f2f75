package base

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/rpc/common"
	"github.com/ValentinKolb/keyspace/rpc/transport"
	"github.com/puzpuzpuz/xsync/v3"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	bufferSize int

	listenerMu sync.Mutex
	listener   net.Listener
	closed     atomic.Bool
	conns      *xsync.MapOf[net.Conn, struct{}]
	wg         sync.WaitGroup
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport.
// bufferSize is the size of the read and write buffer of every connection
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IRPCServerTransport {
	if bufferSize <= 0 {
		bufferSize = 4096
	}
	return &serverTransport{
		connector:  connector,
		bufferSize: bufferSize,
		conns:      xsync.NewMapOf[net.Conn, struct{}](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	t.listenerMu.Lock()
	if t.closed.Load() {
		t.listenerMu.Unlock()
		listener.Close()
		return nil
	}
	t.listener = listener
	t.listenerMu.Unlock()

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), config.Transport.Endpoint)

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.closed.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			continue
		}

		// Handle the connection in a goroutine
		t.conns.Store(conn, struct{}{})
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			defer t.conns.Delete(conn)
			t.handleConnection(conn)
		}()
	}
}

func (t *serverTransport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}

	var err error
	t.listenerMu.Lock()
	if t.listener != nil {
		err = t.listener.Close()
	}
	t.listenerMu.Unlock()

	// Unblock all connection handlers
	t.conns.Range(func(conn net.Conn, _ struct{}) bool {
		conn.Close()
		return true
	})
	t.wg.Wait()
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection handles incoming commands for one connection.
// Commands are processed sequentially, so replies are written in request order.
// The write buffer is flushed once no further pipelined command is buffered
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()

	// Timeout in seconds
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	reader := bufio.NewReaderSize(conn, t.bufferSize)
	writer := bufio.NewWriterSize(conn, t.bufferSize)

	// bufio flushes on its own once the buffer is full, so the deadline is
	// refreshed before every write and not only before the explicit flush
	refreshWriteDeadline := func() error {
		if timeout <= 0 {
			return nil
		}
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
		return nil
	}

	// Function to handle one incoming command
	handleRequest := func() error {
		if timeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				return fmt.Errorf("failed to set read deadline: %w", err)
			}
		}

		args, err := resp.ReadCommand(reader)
		if err != nil {
			if errors.Is(err, resp.ErrProtocol) {
				// tell the client before closing the connection, like redis does
				_ = refreshWriteDeadline()
				_ = resp.WriteValue(writer, resp.NewErrorValue(fmt.Sprintf("ERR Protocol error: %v", err)))
				_ = writer.Flush()
			}
			return err
		}

		// Process the request
		start := time.Now()
		reply := t.handler(args)
		Logger.Debugf("Processed %q took %s", args[0], time.Since(start))

		if err := refreshWriteDeadline(); err != nil {
			return err
		}
		if err := resp.WriteValue(writer, reply); err != nil {
			Logger.Errorf("Failed to encode reply: %v", err)
			if err := resp.WriteValue(writer, resp.NewErrorValue("ERR failed to encode reply")); err != nil {
				return err
			}
		}

		// more pipelined commands are waiting, reply to them in one write
		if reader.Buffered() > 0 {
			return nil
		}

		if err := refreshWriteDeadline(); err != nil {
			return err
		}
		return writer.Flush()
	}

	// Handle requests in a loop
	for {
		err := handleRequest()

		// Case EOF: Connection closed by client
		if err == io.EOF {
			Logger.Debugf("Connection closed by client")
			return
		}

		// Case error: log and close connection
		if err != nil {
			if !t.closed.Load() {
				Logger.Warningf("Error handling request: %v", err)
			}
			return
		}
	}
}
