package tcp

import (
	"net"
	"time"

	"github.com/ValentinKolb/keyspace/rpc/common"
)

// applyOptions applies performance optimizations to a TCP connection
// using configuration values from TCPConf and SocketConf
func applyOptions(conn net.Conn, sockConf common.SocketConf, tcpConf common.TCPConf) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil // Not a TCP connection, nothing to upgrade
	}

	// Go disables Nagle's algorithm on every TCP connection, only enable it on request
	if tcpConf.TCPDelay {
		if err := tcpConn.SetNoDelay(false); err != nil {
			return err
		}
	}

	// Set socket write buffer size if configured
	if sockConf.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(sockConf.WriteBufferSize); err != nil {
			return err
		}
	}

	// Set socket read buffer size if configured
	if sockConf.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(sockConf.ReadBufferSize); err != nil {
			return err
		}
	}

	// Enable TCP keep-alive if configured
	if tcpConf.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}

		keepAlivePeriod := time.Duration(tcpConf.TCPKeepAliveSec) * time.Second
		if err := tcpConn.SetKeepAlivePeriod(keepAlivePeriod); err != nil {
			return err
		}
	}

	// Set TCP linger option if configured, a linger of 0 would reset every closed connection
	if tcpConf.TCPLingerSec > 0 {
		if err := tcpConn.SetLinger(tcpConf.TCPLingerSec); err != nil {
			return err
		}
	}

	return nil
}
