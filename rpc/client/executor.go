package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/keyspace/lib/keyspace"
	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/rpc/common"
	"github.com/ValentinKolb/keyspace/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/rcrowley/go-metrics"
	"github.com/redis/go-redis/v9"
)

var (
	Logger = logger.GetLogger("client")
)

// defaultDialTimeout is used when the config has no timeout
const defaultDialTimeout = 5 * time.Second

// IExecutor executes commands built by the keyspace package against a server
type IExecutor interface {
	// Do sends the command and returns the reply as read by the redis client:
	// string for (bulk) strings, int64 for integers and []any for arrays, with nil
	// for null elements. A nil reply is returned as ErrNil, error replies as *resp.ServerError
	Do(cmd keyspace.Cmd) (any, error)
	// Stats returns a snapshot of the client side metrics
	Stats() Stats
	// Close closes all connections and releases the metrics
	Close() error
}

// NewExecutor creates a redis client dialing through transport and checks the
// connection with a PING.
// A single endpoint is used as a standalone server, several endpoints as the seed
// nodes of a Redis Cluster.
//
// Usage:
//
//	exec, err := client.NewExecutor(config, tcp.NewTCPClientTransport())
//	if err != nil {
//		return err
//	}
//	defer exec.Close()
//
//	counter := keyspace.NewIntKey("visits")
//	n, err := client.Fetch(exec, counter.Load())
func NewExecutor(config common.ClientConfig, transport transport.IRPCClientTransport) (IExecutor, error) {
	if len(config.Transport.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints provided")
	}

	// go-redis: 0 selects its default timeout, -1 disables it
	timeout := time.Duration(config.TimeoutSecond) * time.Second
	dialTimeout := timeout
	if timeout <= 0 {
		timeout = -1
		dialTimeout = defaultDialTimeout
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: config.Transport.Endpoints,
		Dialer: func(ctx context.Context, _, addr string) (net.Conn, error) {
			ctx, cancel := context.WithTimeout(ctx, dialTimeout)
			defer cancel()
			return transport.Dial(ctx, addr, config)
		},
		// RESP2 and no CLIENT SETINFO, the keyspace server rejects HELLO and CLIENT
		Protocol:         2,
		DisableIndentity: true,
		// retries are done by the executor, only for commands that were never written
		MaxRetries:   -1,
		PoolSize:     config.Transport.ConnectionsPerEndpoint,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	registry := metrics.NewRegistry()
	e := &executor{
		rdb:      rdb,
		config:   config,
		registry: registry,
		errors:   metrics.GetOrRegisterMeter(errorsMetric, registry),
	}

	if err := e.retry(func() error { return rdb.Ping(context.Background()).Err() }); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to reach %v: %w", config.Transport.Endpoints, err)
	}

	Logger.Infof("Connected to %d endpoints using %s transport", len(config.Transport.Endpoints), transport.GetName())
	return e, nil
}

type executor struct {
	rdb      redis.UniversalClient
	config   common.ClientConfig
	registry metrics.Registry
	errors   metrics.Meter
	closed   atomic.Bool
}

// --------------------------------------------------------------------------
// Interface Methods (docu see IExecutor)
// --------------------------------------------------------------------------

func (e *executor) Do(cmd keyspace.Cmd) (any, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	args, err := commandArgs(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", cmd.Name(), err)
	}

	start := time.Now()
	var reply any
	err = e.retry(func() error {
		var err error
		reply, err = e.rdb.Do(context.Background(), args...).Result()
		return err
	})
	metrics.GetOrRegisterTimer(timerPrefix+cmd.Name(), e.registry).UpdateSince(start)

	switch {
	case err == nil:
		return reply, nil
	case errors.Is(err, redis.Nil):
		return nil, ErrNil
	}

	e.errors.Mark(1)
	Logger.Debugf("Command %s failed: %v", cmd, err)
	return nil, convertError(err)
}

func (e *executor) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	// stops the meters of the registry
	e.registry.UnregisterAll()
	return e.rdb.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// retry runs op up to RetryCount times with exponential backoff.
// Only failed dials are retried: the command was never written, so even INCR is safe to repeat
func (e *executor) retry(op func() error) error {
	attempts := max(e.config.Transport.RetryCount, 1)

	// Initial backoff duration in milliseconds
	backoffMs := 50

	var err error
	for i := 0; i < attempts; i++ {
		err = op()
		if err == nil || !errors.Is(err, transport.ErrDial) {
			return err
		}
		Logger.Debugf("Attempt %d/%d failed: %v", i+1, attempts, err)

		if i < attempts-1 {
			// Exponential backoff with a small random jitter (+-10%)
			jitter := float64(backoffMs) * (0.9 + 0.2*rand.Float64())
			time.Sleep(time.Duration(jitter) * time.Millisecond)
			backoffMs *= 2
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

// commandArgs converts the tokens of cmd the way resp.MarshalCommand does.
// Arguments are handed to go-redis as strings so cluster routing reads the key
func commandArgs(cmd keyspace.Cmd) ([]any, error) {
	formatted, err := resp.FormatArgs(cmd.Tokens())
	if err != nil {
		return nil, err
	}
	args := make([]any, len(formatted))
	for i, arg := range formatted {
		args[i] = string(arg)
	}
	return args, nil
}

// convertError maps errors of the redis client to the errors of this package
func convertError(err error) error {
	var redisErr redis.Error
	switch {
	case errors.As(err, &redisErr):
		return resp.NewServerError(redisErr.Error())
	case errors.Is(err, redis.ErrClosed):
		return ErrClosed
	}
	return err
}

// --------------------------------------------------------------------------
// Typed execution
// --------------------------------------------------------------------------

// Query executes cmd and decodes the reply into T.
// Supported types are string, []byte, int64, bool, []string, [][]byte, []*string and time.Duration.
// A nil reply is returned as ErrNil
func Query[T any](e IExecutor, cmd keyspace.Cmd) (T, error) {
	var zero T
	reply, err := e.Do(cmd)
	if err != nil {
		return zero, err
	}
	return decodeReply[T](cmd.Name(), reply)
}

// Fetch executes a typed command and decodes the reply into the type bound to it,
// so the result type follows from the shape of the key:
//
//	visits, err := client.Fetch(exec, keyspace.NewIntKey("visits").Load()) // int64
func Fetch[T any](e IExecutor, cmd keyspace.Typed[T]) (T, error) {
	return Query[T](e, cmd.Cmd())
}

// Exec executes cmd and only reports errors
func Exec(e IExecutor, cmd keyspace.Cmd) error {
	_, err := e.Do(cmd)
	return err
}
