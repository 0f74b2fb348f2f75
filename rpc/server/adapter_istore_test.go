package server

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/keyspace/lib/resp"
	"github.com/ValentinKolb/keyspace/lib/store/lstore"
)

func args(parts ...string) [][]byte {
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = []byte(p)
	}
	return out
}

func bulks(parts ...string) resp.Value {
	return resp.NewBulkArray(args(parts...))
}

// TestAdapterSequence runs command sequences against a fresh store and checks every reply
func TestAdapterSequence(t *testing.T) {
	type step struct {
		args []string
		want resp.Value
	}

	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "strings",
			steps: []step{
				{[]string{"GET", "a"}, resp.NewNullBulk()},
				{[]string{"SET", "a", "1"}, resp.NewOK()},
				{[]string{"get", "a"}, resp.NewBulk([]byte("1"))},
				{[]string{"INCR", "a"}, resp.NewInteger(2)},
				{[]string{"INCRBY", "a", "-5"}, resp.NewInteger(-3)},
				{[]string{"INCRBY", "a", "x"}, resp.NewErrorValue("ERR value is not an integer or out of range")},
				{[]string{"INCRBY", "a", "+1"}, resp.NewErrorValue("ERR value is not an integer or out of range")},
				{[]string{"SET", "empty", ""}, resp.NewOK()},
				{[]string{"INCR", "empty"}, resp.NewErrorValue("ERR value is not an integer or out of range")},
				{[]string{"SET", "padded", "007"}, resp.NewOK()},
				{[]string{"INCRBY", "padded", "1"}, resp.NewErrorValue("ERR value is not an integer or out of range")},
				{[]string{"MGET", "a", "missing"}, resp.NewBulkArray([][]byte{[]byte("-3"), nil})},
				{[]string{"SET", "a", "1", "EX"}, resp.NewErrorValue("ERR syntax error")},
			},
		},
		{
			name: "sets",
			steps: []step{
				{[]string{"SADD", "s1", "b", "a", "a"}, resp.NewInteger(2)},
				{[]string{"SADD", "s2", "b", "c"}, resp.NewInteger(2)},
				{[]string{"SMEMBERS", "s1"}, bulks("a", "b")},
				{[]string{"SUNION", "s1", "s2"}, bulks("a", "b", "c")},
				{[]string{"SINTER", "s1", "s2"}, bulks("b")},
				{[]string{"SREM", "s1", "a", "z"}, resp.NewInteger(1)},
				{[]string{"SMEMBERS", "missing"}, bulks()},
			},
		},
		{
			name: "wrong type",
			steps: []step{
				{[]string{"SET", "str", "v"}, resp.NewOK()},
				{[]string{"SADD", "set", "m"}, resp.NewInteger(1)},
				{[]string{"GET", "set"}, resp.NewErrorValue("WRONGTYPE Operation against a key holding the wrong kind of value")},
				{[]string{"SADD", "str", "m"}, resp.NewErrorValue("WRONGTYPE Operation against a key holding the wrong kind of value")},
				{[]string{"INCR", "str"}, resp.NewErrorValue("ERR value is not an integer or out of range")},
				{[]string{"MGET", "str", "set"}, resp.NewBulkArray([][]byte{[]byte("v"), nil})},
			},
		},
		{
			name: "generic",
			steps: []step{
				{[]string{"TTL", "k"}, resp.NewInteger(-2)},
				{[]string{"SET", "k", "v"}, resp.NewOK()},
				{[]string{"TTL", "k"}, resp.NewInteger(-1)},
				{[]string{"PTTL", "k"}, resp.NewInteger(-1)},
				{[]string{"EXPIRE", "k", "100"}, resp.NewInteger(1)},
				{[]string{"TTL", "k"}, resp.NewInteger(100)},
				{[]string{"EXPIRE", "missing", "100"}, resp.NewInteger(0)},
				{[]string{"EXPIRE", "k", "soon"}, resp.NewErrorValue("ERR value is not an integer or out of range")},
				{[]string{"DEL", "k", "missing"}, resp.NewInteger(1)},
				{[]string{"DBSIZE"}, resp.NewInteger(0)},
			},
		},
		{
			name: "connection",
			steps: []step{
				{[]string{"PING"}, resp.NewSimpleString("PONG")},
				{[]string{"ping", "hi"}, resp.NewBulk([]byte("hi"))},
				{[]string{"PING", "a", "b"}, resp.NewErrorValue("ERR wrong number of arguments for 'ping' command")},
				{[]string{"ECHO", "x"}, resp.NewBulk([]byte("x"))},
			},
		},
		{
			name: "arity and unknown",
			steps: []step{
				{[]string{"GET"}, resp.NewErrorValue("ERR wrong number of arguments for 'get' command")},
				{[]string{"GET", "a", "b"}, resp.NewErrorValue("ERR wrong number of arguments for 'get' command")},
				{[]string{"MGET"}, resp.NewErrorValue("ERR wrong number of arguments for 'mget' command")},
				{[]string{"SADD", "s"}, resp.NewErrorValue("ERR wrong number of arguments for 'sadd' command")},
				{[]string{"FLUSHALL"}, resp.NewErrorValue("ERR unknown command 'FLUSHALL'")},
			},
		},
	}

	adapter := NewIStoreServerAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lstore.NewLocalStore(lstore.DefaultGCInterval)
			defer s.Close()

			for i, st := range tt.steps {
				got := adapter.Handle(args(st.args...), s)
				if !reflect.DeepEqual(got, st.want) {
					t.Fatalf("step %d %v: got %s, want %s", i, st.args, got, st.want)
				}
			}
		})
	}
}

func TestAdapterNilStore(t *testing.T) {
	got := NewIStoreServerAdapter().Handle(args("PING"), nil)
	if got.Sym != resp.SymError {
		t.Fatalf("expected error reply, got %s", got)
	}
}

// TestServerHandleMetrics checks that every command is counted and failures are counted as errors
func TestServerHandleMetrics(t *testing.T) {
	s := &RPCServer{
		adapter: NewIStoreServerAdapter(),
		store:   lstore.NewLocalStore(lstore.DefaultGCInterval),
	}
	s.metrics = newServerMetrics(s.store)
	defer s.store.Close()

	s.Handle(args("SET", "a", "1"))
	s.Handle(args("GET", "a"))
	s.Handle(args("NOPE"))
	s.Handle(args("GET"))

	if got := s.metrics.commands.Get(); got != 4 {
		t.Errorf("commands = %d, want 4", got)
	}
	if got := s.metrics.errors.Get(); got != 2 {
		t.Errorf("errors = %d, want 2", got)
	}
}
