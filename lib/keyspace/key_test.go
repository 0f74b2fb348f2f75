package keyspace

import (
	"reflect"
	"testing"
)

// TestKeyRoundTrip tests that every shape returns its key name unchanged
func TestKeyRoundTrip(t *testing.T) {
	names := []string{"", "myset1", "user:42:name", "你好世界", string([]byte{0, 1, 254, 255})}

	for _, name := range names {
		if got := NewStringKey(name).Key(); got != name {
			t.Errorf("StringKey.Key() = %q, want %q", got, name)
		}
		if got := NewIntKey(name).Key(); got != name {
			t.Errorf("IntKey.Key() = %q, want %q", got, name)
		}
		if got := NewSetKey(name).Key(); got != name {
			t.Errorf("SetKey.Key() = %q, want %q", got, name)
		}
	}
}

// TestSingleKeyCommands tests the token list of every single key operation
func TestSingleKeyCommands(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Cmd
		expected []any
	}{
		// Key
		{"StringKey Del", NewStringKey("k").Del(), []any{"DEL", "k"}},
		{"IntKey Del", NewIntKey("k").Del(), []any{"DEL", "k"}},
		{"SetKey Del", NewSetKey("k").Del(), []any{"DEL", "k"}},

		// GenericValue
		{"StringKey TTL", NewStringKey("k").TTL(), []any{"TTL", "k"}},
		{"StringKey PTTL", NewStringKey("k").PTTL(), []any{"PTTL", "k"}},
		{"StringKey Expire", NewStringKey("k").Expire(10), []any{"EXPIRE", "k", uint64(10)}},
		{"IntKey TTL", NewIntKey("k").TTL(), []any{"TTL", "k"}},
		{"IntKey PTTL", NewIntKey("k").PTTL(), []any{"PTTL", "k"}},
		{"IntKey Expire", NewIntKey("k").Expire(0), []any{"EXPIRE", "k", uint64(0)}},
		{"SetKey TTL", NewSetKey("k").TTL(), []any{"TTL", "k"}},
		{"SetKey PTTL", NewSetKey("k").PTTL(), []any{"PTTL", "k"}},
		{"SetKey Expire max", NewSetKey("k").Expire(18446744073709551615), []any{"EXPIRE", "k", uint64(18446744073709551615)}},

		// SingleValue
		{"StringKey Get", NewStringKey("k").Get(), []any{"GET", "k"}},
		{"StringKey Set string", NewStringKey("k").Set("v"), []any{"SET", "k", "v"}},
		{"StringKey Set bytes", NewStringKey("k").Set([]byte{0, 1}), []any{"SET", "k", []byte{0, 1}}},
		{"IntKey Get", NewIntKey("k").Get(), []any{"GET", "k"}},
		{"IntKey Set", NewIntKey("k").Set(42), []any{"SET", "k", 42}},

		// IntKey
		{"IntKey Incr", NewIntKey("k").Incr(), []any{"INCR", "k"}},
		{"IntKey IncrBy", NewIntKey("k").IncrBy(5), []any{"INCRBY", "k", int64(5)}},
		{"IntKey IncrBy negative", NewIntKey("k").IncrBy(-3), []any{"INCRBY", "k", int64(-3)}},

		// SetKey
		{"SetKey SAdd", NewSetKey("myset1").SAdd("first"), []any{"SADD", "myset1", "first"}},
		{"SetKey SRem", NewSetKey("myset1").SRem("first"), []any{"SREM", "myset1", "first"}},
		{"SetKey SMembers", NewSetKey("myset1").SMembers(), []any{"SMEMBERS", "myset1"}},

		// Typed
		{"StringKey Load", NewStringKey("k").Load().Cmd(), []any{"GET", "k"}},
		{"IntKey Load", NewIntKey("k").Load().Cmd(), []any{"GET", "k"}},
		{"SetKey Load", NewSetKey("myset1").Load().Cmd(), []any{"SMEMBERS", "myset1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Tokens(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokens() = %#v, want %#v", got, tt.expected)
			}
			if got := tt.cmd.Name(); got != tt.expected[0] {
				t.Errorf("Name() = %q, want %q", got, tt.expected[0])
			}
			if got := tt.cmd.Len(); got != len(tt.expected) {
				t.Errorf("Len() = %d, want %d", got, len(tt.expected))
			}
		})
	}
}

// TestCapabilities tests which shape satisfies which capability interface
func TestCapabilities(t *testing.T) {
	var (
		genericType = reflect.TypeOf((*GenericValue)(nil)).Elem()
		singleType  = reflect.TypeOf((*SingleValue)(nil)).Elem()
	)

	tests := []struct {
		name    string
		key     Key
		generic bool
		single  bool
	}{
		{"StringKey", NewStringKey("k"), true, true},
		{"IntKey", NewIntKey("k"), true, true},
		{"SetKey", NewSetKey("k"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := reflect.TypeOf(tt.key)
			if got := typ.Implements(genericType); got != tt.generic {
				t.Errorf("implements GenericValue = %v, want %v", got, tt.generic)
			}
			if got := typ.Implements(singleType); got != tt.single {
				t.Errorf("implements SingleValue = %v, want %v", got, tt.single)
			}
		})
	}
}

// TestCapabilityDispatch tests that the commands built through the interfaces
// match the ones built on the concrete shapes
func TestCapabilityDispatch(t *testing.T) {
	var generic GenericValue = NewSetKey("s")
	if got, want := generic.Expire(3).Tokens(), NewSetKey("s").Expire(3).Tokens(); !reflect.DeepEqual(got, want) {
		t.Errorf("GenericValue.Expire() = %#v, want %#v", got, want)
	}

	var single SingleValue = NewIntKey("i")
	if got, want := single.Set(1).Tokens(), NewIntKey("i").Set(1).Tokens(); !reflect.DeepEqual(got, want) {
		t.Errorf("SingleValue.Set() = %#v, want %#v", got, want)
	}
}
