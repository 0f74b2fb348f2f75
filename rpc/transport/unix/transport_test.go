package unix

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/rpc/common"
	"github.com/ValentinKolb/keyspace/rpc/transport"
)

// echoHandler replies with the last argument of every command
func echoHandler(args [][]byte) resp.Value {
	return resp.NewBulk(args[len(args)-1])
}

// startEchoServer listens on sock and returns the server transport
func startEchoServer(t *testing.T, sock string, srv transport.IRPCServerTransport, timeoutSecond int64) {
	t.Helper()

	srv.RegisterHandler(echoHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(common.ServerConfig{
			TimeoutSecond: timeoutSecond,
			Transport:     common.ServerTransportConfig{Endpoint: sock},
		})
	}()
	t.Cleanup(func() { srv.Close() })

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(sock); err == nil {
			return
		}
		select {
		case err := <-errCh:
			t.Fatalf("listen: %v", err)
		default:
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// dial opens a raw connection through the client transport
func dial(t *testing.T, sock string) net.Conn {
	t.Helper()

	conn, err := NewUnixClientTransport().Dial(context.Background(), sock, common.ClientConfig{})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func echoCommand(t *testing.T, msg string) []byte {
	t.Helper()

	req, err := resp.MarshalCommand([]any{"ECHO", msg})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return req
}

// TestPipelinedRepliesInOrder writes many commands at once and expects the replies in request order
func TestPipelinedRepliesInOrder(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "t.sock")
	startEchoServer(t, sock, NewUnixDefaultServerTransport(), 5)
	conn := dial(t, sock)

	const n = 500
	var batch []byte
	for i := 0; i < n; i++ {
		batch = append(batch, echoCommand(t, fmt.Sprintf("msg-%d", i))...)
	}
	if _, err := conn.Write(batch); err != nil {
		t.Fatalf("write: %v", err)
	}

	reader := bufio.NewReader(conn)
	for i := 0; i < n; i++ {
		v, err := resp.ReadValue(reader)
		if err != nil {
			t.Fatalf("reply %d: %v", i, err)
		}
		if want := fmt.Sprintf("msg-%d", i); string(v.Bulk) != want {
			t.Fatalf("reply %d = %q, want %q", i, v.Bulk, want)
		}
	}
}

// TestLongPipelinedBurst tests a burst whose replies take longer than the timeout to drain
// while every single write finishes well within it
func TestLongPipelinedBurst(t *testing.T) {
	if testing.Short() {
		t.Skip("takes a few seconds")
	}

	sock := filepath.Join(t.TempDir(), "t.sock")
	startEchoServer(t, sock, NewUnixServerTransport(4096), 1)
	conn := dial(t, sock)
	reader := bufio.NewReader(conn)

	// a first round trip, so the server flushed once before the burst
	if _, err := conn.Write(echoCommand(t, "warmup")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := resp.ReadValue(reader); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	const n = 64
	payload := strings.Repeat("x", 64*1024)
	req := echoCommand(t, payload)
	writeErr := make(chan error, 1)
	go func() {
		var err error
		for i := 0; i < n && err == nil; i++ {
			_, err = conn.Write(req)
		}
		writeErr <- err
	}()

	// drain slowly: about two seconds in total, never pausing longer than the timeout
	for i := 0; i < n; i++ {
		time.Sleep(30 * time.Millisecond)
		v, err := resp.ReadValue(reader)
		if err != nil {
			t.Fatalf("reply %d: %v", i, err)
		}
		if len(v.Bulk) != len(payload) {
			t.Fatalf("reply %d has %d bytes, want %d", i, len(v.Bulk), len(payload))
		}
	}
	if err := <-writeErr; err != nil {
		t.Fatalf("write: %v", err)
	}
}

// TestProtocolErrorClosesConnection tests that malformed input is answered and closes the connection
func TestProtocolErrorClosesConnection(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "t.sock")
	startEchoServer(t, sock, NewUnixDefaultServerTransport(), 5)
	conn := dial(t, sock)
	reader := bufio.NewReader(conn)

	// inline commands are not supported
	if _, err := conn.Write([]byte("PING\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err := resp.ReadValue(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v.Sym != resp.SymError || !strings.HasPrefix(v.Str, "ERR Protocol error") {
		t.Errorf("expected protocol error reply, got %s", v)
	}

	if _, err := resp.ReadValue(reader); err != io.EOF {
		t.Errorf("expected the connection to be closed, got %v", err)
	}
}

// TestCloseDropsConnections tests that Close ends open connections
func TestCloseDropsConnections(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "t.sock")
	srv := NewUnixDefaultServerTransport()
	startEchoServer(t, sock, srv, 0)
	conn := dial(t, sock)

	if _, err := conn.Write(echoCommand(t, "x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	reader := bufio.NewReader(conn)
	if _, err := resp.ReadValue(reader); err != nil {
		t.Fatalf("read: %v", err)
	}

	if err := srv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := resp.ReadValue(reader); err != io.EOF {
		t.Errorf("expected io.EOF after close, got %v", err)
	}
}

func TestDialError(t *testing.T) {
	_, err := NewUnixClientTransport().Dial(context.Background(), filepath.Join(t.TempDir(), "missing.sock"), common.ClientConfig{})
	if !errors.Is(err, transport.ErrDial) {
		t.Errorf("expected ErrDial, got %v", err)
	}
}
