package keyspace

import (
	"fmt"
	"slices"
	"strings"
)

// Command names produced by this package.
const (
	CmdDel      = "DEL"
	CmdTTL      = "TTL"
	CmdPTTL     = "PTTL"
	CmdExpire   = "EXPIRE"
	CmdGet      = "GET"
	CmdSet      = "SET"
	CmdSAdd     = "SADD"
	CmdSRem     = "SREM"
	CmdSMembers = "SMEMBERS"
	CmdSUnion   = "SUNION"
	CmdSInter   = "SINTER"
	CmdMGet     = "MGET"
	CmdIncr     = "INCR"
	CmdIncrBy   = "INCRBY"
)

// Cmd is a single store request: a command name followed by its ordered
// arguments. Arguments are scalars (string, []byte, integers, floats, bool,
// encoding.BinaryMarshaler or fmt.Stringer); converting them to wire bytes is
// left to the executor.
//
// A Cmd is immutable once returned. All accessors return copies, so a Cmd can
// be shared between goroutines.
type Cmd struct {
	name string
	args []any
}

// NewCmd creates a command with the given name and arguments.
func NewCmd(name string, args ...any) Cmd {
	return Cmd{
		name: name,
		args: slices.Clone(args),
	}
}

// arg appends one argument. Only used while a command is being built.
func (c *Cmd) arg(a any) {
	c.args = append(c.args, a)
}

// Name returns the command name, e.g. "SADD".
func (c Cmd) Name() string {
	return c.name
}

// Args returns a copy of the arguments following the command name.
func (c Cmd) Args() []any {
	return slices.Clone(c.args)
}

// Tokens returns the full token list: the name followed by all arguments.
// This is the exact sequence an executor writes to the wire.
func (c Cmd) Tokens() []any {
	tokens := make([]any, 0, len(c.args)+1)
	tokens = append(tokens, c.name)
	return append(tokens, c.args...)
}

// Len returns the number of tokens including the command name.
func (c Cmd) Len() int {
	return len(c.args) + 1
}

// String renders the command for logs, e.g. `SADD "myset1" "first"`.
func (c Cmd) String() string {
	var sb strings.Builder
	sb.WriteString(c.name)
	for _, a := range c.args {
		sb.WriteByte(' ')
		switch v := a.(type) {
		case string:
			sb.WriteString(fmt.Sprintf("%q", v))
		case []byte:
			sb.WriteString(fmt.Sprintf("%q", v))
		default:
			sb.WriteString(fmt.Sprint(v))
		}
	}
	return sb.String()
}

// singleKeyCmd builds the common `NAME key [args...]` form.
func singleKeyCmd(name, key string, args ...any) Cmd {
	c := Cmd{name: name, args: make([]any, 0, len(args)+1)}
	c.arg(key)
	for _, a := range args {
		c.arg(a)
	}
	return c
}
