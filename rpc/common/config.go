package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Transport configuration structs
// --------------------------------------------------------------------------

// SocketConf holds socket buffer sizes (in bytes, 0 keeps the OS default)
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific socket options.
// The zero value keeps the defaults of Go (Nagle's algorithm disabled) and of the OS
type TCPConf struct {
	TCPDelay        bool // enables Nagle's algorithm
	TCPKeepAliveSec int  // 0 keeps the OS default
	TCPLingerSec    int  // > 0 sets SO_LINGER, 0 and negative keep the OS default
}

// ServerTransportConfig holds the listener configuration of the server
type ServerTransportConfig struct {
	// Endpoint is the address to listen on (host:port for tcp, a path for unix)
	Endpoint string
	SocketConf
	TCPConf
}

// ClientTransportConfig holds the connection configuration of the client
type ClientTransportConfig struct {
	// Endpoints holds one address, or the seed nodes of a Redis Cluster
	Endpoints []string
	// RetryCount is the number of attempts for a command whose connection could not be established
	RetryCount int
	// ConnectionsPerEndpoint is the pool size per endpoint, 0 uses the default of the redis client
	ConnectionsPerEndpoint int
	SocketConf
	TCPConf
}

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the RESP server.
type ServerConfig struct {
	// read and write timeout per command, 0 disables the timeout
	TimeoutSecond int64

	// interval of the expiry garbage collector of the local store
	GCIntervalMs int64

	// optional address of the prometheus metrics endpoint (e.g. :9100), empty disables it
	MetricsEndpoint string

	// Logging configuration
	LogLevel string

	Transport ServerTransportConfig
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RESP settings
	addSection("RESP Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("TCP Delay", strconv.FormatBool(c.Transport.TCPDelay))
	addField("TCP Keep Alive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))

	// Store
	addSection("Store")
	addField("GC Interval", fmt.Sprintf("%d ms", c.GCIntervalMs))

	// Metrics
	addSection("Metrics")
	if c.MetricsEndpoint == "" {
		addField("Endpoint", "disabled")
	} else {
		addField("Endpoint", c.MetricsEndpoint)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters of the executor
type ClientConfig struct {
	// timeout per command, 0 disables the timeout
	TimeoutSecond int

	Transport ClientTransportConfig
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	if c.Transport.ConnectionsPerEndpoint > 0 {
		addField("Connections Per Endpoint", strconv.Itoa(c.Transport.ConnectionsPerEndpoint))
	} else {
		addField("Connections Per Endpoint", "default")
	}

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
