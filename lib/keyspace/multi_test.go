package keyspace

import (
	"iter"
	"reflect"
	"slices"
	"testing"
)

// TestMGet tests that MGET keeps the input order and accepts empty sequences
func TestMGet(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Cmd
		expected []any
	}{
		{
			name:     "string keys",
			cmd:      MGet(slices.Values([]StringKey{NewStringKey("k1"), NewStringKey("k2"), NewStringKey("k3")})),
			expected: []any{"MGET", "k1", "k2", "k3"},
		},
		{
			name:     "int keys",
			cmd:      MGet(slices.Values([]IntKey{NewIntKey("b"), NewIntKey("a")})),
			expected: []any{"MGET", "b", "a"},
		},
		{
			name: "mixed single value keys",
			cmd: MGet(slices.Values([]SingleValue{
				NewStringKey("name"),
				NewIntKey("visits"),
			})),
			expected: []any{"MGET", "name", "visits"},
		},
		{
			name:     "empty",
			cmd:      MGet(slices.Values([]StringKey{})),
			expected: []any{"MGET"},
		},
		{
			name:     "nil sequence",
			cmd:      MGet[StringKey](nil),
			expected: []any{"MGET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Tokens(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokens() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

// TestSetAlgebra tests SUNION and SINTER for several sequence lengths
func TestSetAlgebra(t *testing.T) {
	keys := func(names ...string) iter.Seq[SetKey] {
		sks := make([]SetKey, 0, len(names))
		for _, n := range names {
			sks = append(sks, NewSetKey(n))
		}
		return slices.Values(sks)
	}

	tests := []struct {
		name     string
		cmd      Cmd
		expected []any
	}{
		{"union", SUnion(keys("s1", "s2", "s3")), []any{"SUNION", "s1", "s2", "s3"}},
		{"union order", SUnion(keys("s3", "s1")), []any{"SUNION", "s3", "s1"}},
		{"union single", SUnion(keys("s1")), []any{"SUNION", "s1"}},
		{"union empty", SUnion(keys()), []any{"SUNION"}},
		{"inter", SInter(keys("s1", "s2", "s3")), []any{"SINTER", "s1", "s2", "s3"}},
		{"inter single", SInter(keys("s1")), []any{"SINTER", "s1"}},
		{"inter empty", SInter(keys()), []any{"SINTER"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Tokens(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokens() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

// TestMultiKeySinglePass tests that every builder iterates its input exactly once
func TestMultiKeySinglePass(t *testing.T) {
	counting := func(calls *int, names ...string) iter.Seq[SetKey] {
		return func(yield func(SetKey) bool) {
			*calls++
			for _, n := range names {
				if !yield(NewSetKey(n)) {
					return
				}
			}
		}
	}

	var unionCalls, interCalls int
	SUnion(counting(&unionCalls, "a", "b"))
	SInter(counting(&interCalls, "a", "b"))

	if unionCalls != 1 {
		t.Errorf("SUnion iterated %d times, want 1", unionCalls)
	}
	if interCalls != 1 {
		t.Errorf("SInter iterated %d times, want 1", interCalls)
	}
}
