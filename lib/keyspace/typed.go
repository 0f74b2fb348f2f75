package keyspace

// Typed is a command bound to the Go type its reply decodes into.
// It is only built by the shapes of this package, so the reply type always
// matches the shape of the key, e.g. IntKey.Load is a Typed[int64].
// Executors infer T from it, see client.Fetch.
type Typed[T any] struct {
	cmd Cmd
}

// Cmd returns the untyped command.
func (t Typed[T]) Cmd() Cmd {
	return t.cmd
}

// String renders the command for logs.
func (t Typed[T]) String() string {
	return t.cmd.String()
}

func typed[T any](cmd Cmd) Typed[T] {
	return Typed[T]{cmd: cmd}
}

// Load builds `GET key`, read back as a string.
func (k StringKey) Load() Typed[string] { return typed[string](k.Get()) }

// Load builds `GET key`, read back as an int64.
func (k IntKey) Load() Typed[int64] { return typed[int64](k.Get()) }

// Load builds `SMEMBERS key`, read back as the sorted members.
func (k SetKey) Load() Typed[[]string] { return typed[[]string](k.SMembers()) }
