package lstore

import (
	"bytes"
	"maps"
	"math"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/ValentinKolb/keyspace/lib/store"
	"github.com/ValentinKolb/keyspace/lib/store/util"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("store")

// DefaultGCInterval is used when NewLocalStore is called with a non-positive interval.
const DefaultGCInterval = 100 * time.Millisecond

// --------------------------------------------------------------------------
// Entry Type (value with metadata)
// --------------------------------------------------------------------------

type kind uint8

const (
	kindString kind = iota
	kindSet
)

// entry is stored by value in the map. Sets are copy-on-write: a members map
// is never modified after it has been stored, so readers need no locking.
type entry struct {
	kind     kind
	str      []byte
	members  map[string]struct{}
	expireAt int64 // unix milliseconds, 0 means no expiry
}

func (e entry) expired(nowMs int64) bool {
	return e.expireAt != 0 && nowMs >= e.expireAt
}

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

type storeImpl struct {
	data *xsync.MapOf[string, entry]

	expiryMu sync.Mutex
	expiry   *util.MapHeap[string]

	now     func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// NewLocalStore creates a new in-memory store instance.
// This store implementation is not distributed and only works on a single node.
// Expired keys are collected every gcInterval by a background goroutine that
// is stopped by Close.
func NewLocalStore(gcInterval time.Duration) store.IStore {
	return newStore(gcInterval, time.Now)
}

func newStore(gcInterval time.Duration, now func() time.Time) *storeImpl {
	if gcInterval <= 0 {
		gcInterval = DefaultGCInterval
	}

	s := &storeImpl{
		data:   xsync.NewMapOf[string, entry](),
		expiry: util.NewMapHeap[string](),
		now:    now,
		stopCh: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.gcLoop(gcInterval)

	return s
}

func (s *storeImpl) nowMs() int64 {
	return s.now().UnixMilli()
}

// load returns the live entry for a key, removing it if it is expired.
//
// Thread-safety: This method is thread-safe since the removal is done with Compute.
func (s *storeImpl) load(key string) (entry, bool) {
	e, ok := s.data.Load(key)
	if !ok {
		return entry{}, false
	}
	if now := s.nowMs(); e.expired(now) {
		s.removeIfExpired(key, now)
		return entry{}, false
	}
	return e, true
}

// removeIfExpired deletes a key only if the currently stored entry is expired.
func (s *storeImpl) removeIfExpired(key string, nowMs int64) bool {
	removed := false
	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		if loaded && old.expired(nowMs) {
			removed = true
			return entry{}, true
		}
		return old, !loaded
	})
	if removed {
		s.unscheduleExpiry(key)
	}
	return removed
}

func (s *storeImpl) scheduleExpiry(key string, atMs int64) {
	s.expiryMu.Lock()
	s.expiry.AddItem(key, atMs)
	s.expiryMu.Unlock()
}

func (s *storeImpl) unscheduleExpiry(key string) {
	s.expiryMu.Lock()
	s.expiry.RemoveByKey(key)
	s.expiryMu.Unlock()
}

// gcLoop removes expired keys until the store is closed.
func (s *storeImpl) gcLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.collectExpired(); n > 0 {
				Logger.Debugf("collected %d expired keys", n)
			}
		}
	}
}

// collectExpired removes all keys whose deadline has passed and returns their number.
func (s *storeImpl) collectExpired() int {
	now := s.nowMs()

	s.expiryMu.Lock()
	due := s.expiry.PopUntil(now)
	s.expiryMu.Unlock()

	n := 0
	for _, key := range due {
		removed := false
		s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
			if loaded && old.expired(now) {
				removed = true
				return entry{}, true
			}
			return old, !loaded
		})
		if removed {
			n++
		}
	}
	return n
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Del(keys ...string) int {
	now := s.nowMs()
	removed := 0
	for _, key := range keys {
		if old, ok := s.data.LoadAndDelete(key); ok {
			s.unscheduleExpiry(key)
			if !old.expired(now) {
				removed++
			}
		}
	}
	return removed
}

func (s *storeImpl) PTTL(key string) int64 {
	e, ok := s.load(key)
	if !ok {
		return store.TTLMissing
	}
	if e.expireAt == 0 {
		return store.TTLPersistent
	}
	return max(e.expireAt-s.nowMs(), 0)
}

func (s *storeImpl) Expire(key string, ttlMs int64) bool {
	now := s.nowMs()

	// a non positive ttl deletes the key
	if ttlMs <= 0 {
		existed := false
		s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
			existed = loaded && !old.expired(now)
			return entry{}, true
		})
		s.unscheduleExpiry(key)
		return existed
	}

	expireAt := now + ttlMs
	if expireAt < now { // overflow
		expireAt = math.MaxInt64
	}

	ok := false
	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		if !loaded || old.expired(now) {
			return entry{}, true
		}
		ok = true
		old.expireAt = expireAt
		return old, false
	})
	if ok {
		s.scheduleExpiry(key, expireAt)
	}
	return ok
}

func (s *storeImpl) Get(key string) ([]byte, bool, error) {
	e, ok := s.load(key)
	if !ok {
		return nil, false, nil
	}
	if e.kind != kindString {
		return nil, false, store.ErrWrongType
	}
	return slices.Clone(e.str), true, nil
}

func (s *storeImpl) Set(key string, value []byte) {
	s.data.Store(key, entry{
		kind: kindString,
		str:  slices.Clone(value),
	})
	s.unscheduleExpiry(key)
}

func (s *storeImpl) MGet(keys ...string) [][]byte {
	values := make([][]byte, 0, len(keys))
	for _, key := range keys {
		e, ok := s.load(key)
		if !ok || e.kind != kindString {
			values = append(values, nil)
			continue
		}
		values = append(values, slices.Clone(e.str))
	}
	return values
}

func (s *storeImpl) IncrBy(key string, delta int64) (int64, error) {
	now := s.nowMs()

	var (
		result int64
		err    error
	)
	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		live := loaded && !old.expired(now)
		if !live {
			old = entry{kind: kindString}
		}
		if old.kind != kindString {
			err = store.ErrWrongType
			return old, false
		}

		current := int64(0)
		if live {
			current, err = store.ParseInt(old.str)
			if err != nil {
				return old, false
			}
		}

		if (delta > 0 && current > math.MaxInt64-delta) || (delta < 0 && current < math.MinInt64-delta) {
			err = store.ErrOverflow
			return old, !live
		}

		result = current + delta
		old.str = strconv.AppendInt(nil, result, 10)
		return old, false
	})
	return result, err
}

// --------------------------------------------------------------------------
// Set Operations
// --------------------------------------------------------------------------

// loadSet returns the members of a live set, or nil for a missing key.
func (s *storeImpl) loadSet(key string) (map[string]struct{}, error) {
	e, ok := s.load(key)
	if !ok {
		return nil, nil
	}
	if e.kind != kindSet {
		return nil, store.ErrWrongType
	}
	return e.members, nil
}

func (s *storeImpl) SAdd(key string, members ...[]byte) (int, error) {
	now := s.nowMs()

	var (
		added int
		err   error
	)
	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		if !loaded || old.expired(now) {
			old = entry{kind: kindSet}
		}
		if old.kind != kindSet {
			err = store.ErrWrongType
			return old, !loaded
		}

		next := make(map[string]struct{}, len(old.members)+len(members))
		maps.Copy(next, old.members)
		for _, m := range members {
			if _, exists := next[string(m)]; !exists {
				next[string(m)] = struct{}{}
				added++
			}
		}
		old.members = next
		return old, false
	})
	return added, err
}

func (s *storeImpl) SRem(key string, members ...[]byte) (int, error) {
	now := s.nowMs()

	var (
		removed int
		err     error
		deleted bool
	)
	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		if !loaded {
			return old, true
		}
		if old.expired(now) {
			deleted = true
			return entry{}, true
		}
		if old.kind != kindSet {
			err = store.ErrWrongType
			return old, false
		}

		next := maps.Clone(old.members)
		for _, m := range members {
			if _, exists := next[string(m)]; exists {
				delete(next, string(m))
				removed++
			}
		}
		if len(next) == 0 {
			deleted = true
			return entry{}, true
		}
		old.members = next
		return old, false
	})
	if deleted {
		s.unscheduleExpiry(key)
	}
	return removed, err
}

func (s *storeImpl) SMembers(key string) ([][]byte, error) {
	members, err := s.loadSet(key)
	if err != nil {
		return nil, err
	}
	return sortedMembers(members), nil
}

func (s *storeImpl) SUnion(keys ...string) ([][]byte, error) {
	union := make(map[string]struct{})
	for _, key := range keys {
		members, err := s.loadSet(key)
		if err != nil {
			return nil, err
		}
		maps.Copy(union, members)
	}
	return sortedMembers(union), nil
}

func (s *storeImpl) SInter(keys ...string) ([][]byte, error) {
	sets := make([]map[string]struct{}, 0, len(keys))
	for _, key := range keys {
		members, err := s.loadSet(key)
		if err != nil {
			return nil, err
		}
		sets = append(sets, members)
	}
	if len(sets) == 0 {
		return [][]byte{}, nil
	}

	// iterate the smallest set
	slices.SortFunc(sets, func(a, b map[string]struct{}) int { return len(a) - len(b) })

	inter := make(map[string]struct{})
outer:
	for m := range sets[0] {
		for _, other := range sets[1:] {
			if _, ok := other[m]; !ok {
				continue outer
			}
		}
		inter[m] = struct{}{}
	}
	return sortedMembers(inter), nil
}

func sortedMembers(members map[string]struct{}) [][]byte {
	result := make([][]byte, 0, len(members))
	for m := range members {
		result = append(result, []byte(m))
	}
	slices.SortFunc(result, bytes.Compare)
	return result
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

func (s *storeImpl) Len() int {
	return s.data.Size()
}

func (s *storeImpl) Close() {
	s.stopped.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
}
