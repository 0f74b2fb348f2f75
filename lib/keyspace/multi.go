package keyspace

import "iter"

// MGet builds `MGET key1 ... keyN` for a sequence of single-value keys, with
// the keys in input order. The sequence is iterated exactly once. An empty
// sequence yields a bare `MGET`; how the store answers that is up to the store.
//
// Mixed shapes can be passed as a sequence of SingleValue:
//
//	keyspace.MGet(slices.Values([]keyspace.SingleValue{
//		keyspace.NewStringKey("name"),
//		keyspace.NewIntKey("visits"),
//	}))
func MGet[K SingleValue](keys iter.Seq[K]) Cmd {
	return multiKeyCmd(CmdMGet, keys)
}

// multiKeyCmd appends the raw name of every key after the command name.
func multiKeyCmd[K Key](name string, keys iter.Seq[K]) Cmd {
	c := Cmd{name: name}
	if keys == nil {
		return c
	}
	for k := range keys {
		c.arg(k.Key())
	}
	return c
}
