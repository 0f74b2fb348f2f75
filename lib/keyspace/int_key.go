package keyspace

// IntKey is a key holding a single integer value.
// It implements Key, GenericValue and SingleValue and adds atomic increments.
type IntKey struct {
	key string
}

// NewIntKey creates an integer key handle for the given name.
func NewIntKey(key string) IntKey {
	return IntKey{key: key}
}

func (k IntKey) Key() string { return k.key }

func (k IntKey) Del() Cmd { return singleKeyCmd(CmdDel, k.key) }

// Incr builds `INCR key`. The store replies with the value after the increment.
func (k IntKey) Incr() Cmd { return singleKeyCmd(CmdIncr, k.key) }

// IncrBy builds `INCRBY key amount`. The store replies with the value after the
// increment. Overflow is reported by the store.
func (k IntKey) IncrBy(amount int64) Cmd { return singleKeyCmd(CmdIncrBy, k.key, amount) }

// --------------------------------------------------------------------------
// GenericValue
// --------------------------------------------------------------------------

func (k IntKey) TTL() Cmd { return singleKeyCmd(CmdTTL, k.key) }

func (k IntKey) PTTL() Cmd { return singleKeyCmd(CmdPTTL, k.key) }

func (k IntKey) Expire(ttlSecs uint64) Cmd { return singleKeyCmd(CmdExpire, k.key, ttlSecs) }

func (IntKey) genericValue() {}

// --------------------------------------------------------------------------
// SingleValue
// --------------------------------------------------------------------------

func (k IntKey) Get() Cmd { return singleKeyCmd(CmdGet, k.key) }

// Set builds `SET key val`. The store accepts any scalar here, INCR/INCRBY
// fail later if the stored value is not an integer.
func (k IntKey) Set(val any) Cmd { return singleKeyCmd(CmdSet, k.key, val) }

func (IntKey) singleValue() {}
