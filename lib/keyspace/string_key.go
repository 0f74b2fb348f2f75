package keyspace

// StringKey is a key holding a single string value.
// It implements Key, GenericValue and SingleValue.
type StringKey struct {
	key string
}

// NewStringKey creates a string key handle for the given name.
func NewStringKey(key string) StringKey {
	return StringKey{key: key}
}

func (k StringKey) Key() string { return k.key }

func (k StringKey) Del() Cmd { return singleKeyCmd(CmdDel, k.key) }

// --------------------------------------------------------------------------
// GenericValue
// --------------------------------------------------------------------------

func (k StringKey) TTL() Cmd { return singleKeyCmd(CmdTTL, k.key) }

func (k StringKey) PTTL() Cmd { return singleKeyCmd(CmdPTTL, k.key) }

func (k StringKey) Expire(ttlSecs uint64) Cmd { return singleKeyCmd(CmdExpire, k.key, ttlSecs) }

func (StringKey) genericValue() {}

// --------------------------------------------------------------------------
// SingleValue
// --------------------------------------------------------------------------

func (k StringKey) Get() Cmd { return singleKeyCmd(CmdGet, k.key) }

func (k StringKey) Set(val any) Cmd { return singleKeyCmd(CmdSet, k.key, val) }

func (StringKey) singleValue() {}
