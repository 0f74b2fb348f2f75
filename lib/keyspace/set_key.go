package keyspace

import "iter"

// SetKey is a key holding an unordered set of members.
// It implements Key and GenericValue. It is not a SingleValue, a set can not
// be read or written as one scalar.
type SetKey struct {
	key string
}

// NewSetKey creates a set key handle for the given name.
func NewSetKey(key string) SetKey {
	return SetKey{key: key}
}

func (k SetKey) Key() string { return k.key }

func (k SetKey) Del() Cmd { return singleKeyCmd(CmdDel, k.key) }

// SAdd builds `SADD key member`.
func (k SetKey) SAdd(member any) Cmd { return singleKeyCmd(CmdSAdd, k.key, member) }

// SRem builds `SREM key member`.
func (k SetKey) SRem(member any) Cmd { return singleKeyCmd(CmdSRem, k.key, member) }

// SMembers builds `SMEMBERS key`. The reply is an unordered collection.
func (k SetKey) SMembers() Cmd { return singleKeyCmd(CmdSMembers, k.key) }

// --------------------------------------------------------------------------
// GenericValue
// --------------------------------------------------------------------------

func (k SetKey) TTL() Cmd { return singleKeyCmd(CmdTTL, k.key) }

func (k SetKey) PTTL() Cmd { return singleKeyCmd(CmdPTTL, k.key) }

func (k SetKey) Expire(ttlSecs uint64) Cmd { return singleKeyCmd(CmdExpire, k.key, ttlSecs) }

func (SetKey) genericValue() {}

// --------------------------------------------------------------------------
// Multi-Key Set Operations
// --------------------------------------------------------------------------

// SUnion builds `SUNION key1 ... keyN` with the keys in input order.
// Empty and single-key sequences are passed through as they are.
func SUnion(keys iter.Seq[SetKey]) Cmd {
	return multiKeyCmd(CmdSUnion, keys)
}

// SInter builds `SINTER key1 ... keyN` with the keys in input order.
// Empty and single-key sequences are passed through as they are.
func SInter(keys iter.Seq[SetKey]) Cmd {
	return multiKeyCmd(CmdSInter, keys)
}
