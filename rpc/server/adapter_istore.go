package server

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ValentinKolb/keyspace/lib/keyspace"
	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/lib/store"
)

// commandHandler executes one command against the store.
// args holds the arguments without the command name, the arity was checked before
type commandHandler func(args [][]byte, s store.IStore) resp.Value

// command describes a supported command.
// arity follows redis: a positive value is the exact number of tokens (name included),
// a negative value is the minimum number of tokens
type command struct {
	arity   int
	handler commandHandler
}

const (
	cmdPing    = "PING"
	cmdEcho    = "ECHO"
	cmdDBSize  = "DBSIZE"
	cmdCommand = "COMMAND"
)

// commands is the dispatch table of the adapter, keyed by the upper case command name
var commands = map[string]command{
	cmdPing:    {-1, handlePing},
	cmdEcho:    {2, handleEcho},
	cmdDBSize:  {1, handleDBSize},
	cmdCommand: {-1, handleCommand},

	keyspace.CmdDel:    {-2, handleDel},
	keyspace.CmdTTL:    {2, handleTTL},
	keyspace.CmdPTTL:   {2, handlePTTL},
	keyspace.CmdExpire: {3, handleExpire},

	keyspace.CmdGet:    {2, handleGet},
	keyspace.CmdSet:    {-3, handleSet},
	keyspace.CmdMGet:   {-2, handleMGet},
	keyspace.CmdIncr:   {2, handleIncr},
	keyspace.CmdIncrBy: {3, handleIncrBy},

	keyspace.CmdSAdd:     {-3, handleSAdd},
	keyspace.CmdSRem:     {-3, handleSRem},
	keyspace.CmdSMembers: {2, handleSMembers},
	keyspace.CmdSUnion:   {-2, handleSUnion},
	keyspace.CmdSInter:   {-2, handleSInter},
}

// NewIStoreServerAdapter returns the adapter serving the keyspace commands
func NewIStoreServerAdapter() IRPCServerAdapter {
	return &iStoreServerAdapterImpl{}
}

type iStoreServerAdapterImpl struct{}

func (adapter *iStoreServerAdapterImpl) Handle(args [][]byte, s store.IStore) resp.Value {
	// Check for nil store
	if s == nil {
		return resp.NewErrorValue("ERR handler: store is nil")
	}
	if len(args) == 0 {
		return resp.NewErrorValue("ERR empty command")
	}

	name := strings.ToUpper(string(args[0]))
	cmd, ok := commands[name]
	if !ok {
		return resp.NewErrorValue(fmt.Sprintf("ERR unknown command '%s'", args[0]))
	}

	if (cmd.arity > 0 && len(args) != cmd.arity) || (cmd.arity < 0 && len(args) < -cmd.arity) {
		return errWrongArity(name)
	}

	return cmd.handler(args[1:], s)
}

// --------------------------------------------------------------------------
// Connection commands
// --------------------------------------------------------------------------

func handlePing(args [][]byte, _ store.IStore) resp.Value {
	switch len(args) {
	case 0:
		return resp.NewSimpleString("PONG")
	case 1:
		return resp.NewBulk(args[0])
	default:
		return errWrongArity(cmdPing)
	}
}

func handleEcho(args [][]byte, _ store.IStore) resp.Value {
	return resp.NewBulk(args[0])
}

func handleDBSize(_ [][]byte, s store.IStore) resp.Value {
	return resp.NewInteger(int64(s.Len()))
}

// handleCommand answers the COMMAND introspection sent by redis-cli on startup
func handleCommand(_ [][]byte, _ store.IStore) resp.Value {
	return resp.NewArray([]resp.Value{})
}

// --------------------------------------------------------------------------
// Generic commands
// --------------------------------------------------------------------------

func handleDel(args [][]byte, s store.IStore) resp.Value {
	return resp.NewInteger(int64(s.Del(keys(args)...)))
}

func handleTTL(args [][]byte, s store.IStore) resp.Value {
	ttlMs := s.PTTL(string(args[0]))
	if ttlMs < 0 {
		return resp.NewInteger(ttlMs)
	}
	// round to the nearest second, like redis
	return resp.NewInteger((ttlMs + 500) / 1000)
}

func handlePTTL(args [][]byte, s store.IStore) resp.Value {
	return resp.NewInteger(s.PTTL(string(args[0])))
}

func handleExpire(args [][]byte, s store.IStore) resp.Value {
	secs, err := store.ParseInt(args[1])
	if err != nil {
		return errNotInteger()
	}
	if secs > math.MaxInt64/1000 || secs < math.MinInt64/1000 {
		return resp.NewErrorValue("ERR invalid expire time in 'expire' command")
	}
	return boolReply(s.Expire(string(args[0]), secs*1000))
}

// --------------------------------------------------------------------------
// String commands
// --------------------------------------------------------------------------

func handleGet(args [][]byte, s store.IStore) resp.Value {
	value, ok, err := s.Get(string(args[0]))
	if err != nil {
		return errReply(err)
	}
	if !ok {
		return resp.NewNullBulk()
	}
	return resp.NewBulk(value)
}

func handleSet(args [][]byte, s store.IStore) resp.Value {
	// SET options (EX, NX, ...) are not supported
	if len(args) != 2 {
		return resp.NewErrorValue("ERR syntax error")
	}
	s.Set(string(args[0]), args[1])
	return resp.NewOK()
}

func handleMGet(args [][]byte, s store.IStore) resp.Value {
	return resp.NewBulkArray(s.MGet(keys(args)...))
}

func handleIncr(args [][]byte, s store.IStore) resp.Value {
	return incrBy(s, args[0], 1)
}

func handleIncrBy(args [][]byte, s store.IStore) resp.Value {
	delta, err := store.ParseInt(args[1])
	if err != nil {
		return errNotInteger()
	}
	return incrBy(s, args[0], delta)
}

func incrBy(s store.IStore, key []byte, delta int64) resp.Value {
	value, err := s.IncrBy(string(key), delta)
	if err != nil {
		return errReply(err)
	}
	return resp.NewInteger(value)
}

// --------------------------------------------------------------------------
// Set commands
// --------------------------------------------------------------------------

func handleSAdd(args [][]byte, s store.IStore) resp.Value {
	return countReply(s.SAdd(string(args[0]), args[1:]...))
}

func handleSRem(args [][]byte, s store.IStore) resp.Value {
	return countReply(s.SRem(string(args[0]), args[1:]...))
}

func handleSMembers(args [][]byte, s store.IStore) resp.Value {
	return membersReply(s.SMembers(string(args[0])))
}

func handleSUnion(args [][]byte, s store.IStore) resp.Value {
	return membersReply(s.SUnion(keys(args)...))
}

func handleSInter(args [][]byte, s store.IStore) resp.Value {
	return membersReply(s.SInter(keys(args)...))
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func keys(args [][]byte) []string {
	keys := make([]string, len(args))
	for i, arg := range args {
		keys[i] = string(arg)
	}
	return keys
}

func boolReply(ok bool) resp.Value {
	if ok {
		return resp.NewInteger(1)
	}
	return resp.NewInteger(0)
}

func countReply(n int, err error) resp.Value {
	if err != nil {
		return errReply(err)
	}
	return resp.NewInteger(int64(n))
}

func membersReply(members [][]byte, err error) resp.Value {
	if err != nil {
		return errReply(err)
	}
	return resp.NewBulkArray(members)
}

func errWrongArity(name string) resp.Value {
	return resp.NewErrorValue(fmt.Sprintf("ERR wrong number of arguments for '%s' command", strings.ToLower(name)))
}

func errNotInteger() resp.Value {
	return errReply(store.ErrNotInt)
}

// errReply converts a store error into a redis compatible error reply
func errReply(err error) resp.Value {
	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		return resp.NewErrorValue("ERR " + err.Error())
	}

	switch storeErr.Code {
	case store.RetCWrongType:
		return resp.NewErrorValue("WRONGTYPE " + storeErr.Msg)
	default:
		return resp.NewErrorValue("ERR " + storeErr.Msg)
	}
}
