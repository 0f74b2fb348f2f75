// Package util
//
// This file provides a priority queue used to schedule key expiry.
//
// This implementation combines a binary heap with a hash map to provide both
// efficient priority-based operations and key-based access. The store pushes
// every key that gets a time to live with its deadline as priority, the
// garbage collector pops all items whose deadline has passed, and keys that are
// overwritten or deleted are removed by key.
//
// Time Complexity:
//   - O(log n) for priority operations (Push, Pop, Update)
//   - O(1) for key-based lookups and existence checks
//   - O(log n) for key-based removal
//
// Concurrency Considerations:
//   - This implementation is not thread-safe
//   - For concurrent use, external synchronization should be applied
//
// Example usage:
//
//	// Create a new queue
//	expiry := NewMapHeap[string]()
//
//	// Add keys with their deadlines (unix milliseconds)
//	expiry.AddItem("session:1", deadline1)
//	expiry.AddItem("session:2", deadline2)
//
//	// Remove a key that was deleted
//	expiry.RemoveByKey("session:1")
//
//	// Collect all keys that are due
//	for _, key := range expiry.PopUntil(now) {
//	    // delete key
//	}
package util

import (
	"container/heap"
	"fmt"
)

// item represents an item in the queue with a key for identification and
// an int64 priority (smaller is popped first)
type item[K comparable] struct {
	Key      K     // Unique identifier for the item
	Priority int64 // Priority used for ordering in the heap
	index    int   // Index in the heap, maintained by heap package
}

func (i *item[K]) String() string {
	return fmt.Sprintf("{Key: %v, Priority: %d}", i.Key, i.Priority)
}

// MapHeap implements a min priority queue with both heap operations and key-based access
type MapHeap[K comparable] struct {
	items    []*item[K]     // The actual heap slice
	itemsMap map[K]*item[K] // Map for O(1) access by key
}

// NewMapHeap creates a new, initialized queue
func NewMapHeap[K comparable]() *MapHeap[K] {
	return &MapHeap[K]{
		items:    make([]*item[K], 0),
		itemsMap: make(map[K]*item[K]),
	}
}

// Len returns the number of items in the queue (part of heap.Interface)
func (mh *MapHeap[K]) Len() int { return len(mh.items) }

// Less compares items by priority (part of heap.Interface)
func (mh *MapHeap[K]) Less(i, j int) bool {
	return mh.items[i].Priority < mh.items[j].Priority
}

// Swap exchanges items at positions i and j (part of heap.Interface)
func (mh *MapHeap[K]) Swap(i, j int) {
	mh.items[i], mh.items[j] = mh.items[j], mh.items[i]
	mh.items[i].index = i
	mh.items[j].index = j
}

// Push adds an item to the heap (part of heap.Interface)
func (mh *MapHeap[K]) Push(x any) {
	n := len(mh.items)
	it := x.(*item[K])
	it.index = n
	mh.items = append(mh.items, it)
	mh.itemsMap[it.Key] = it
}

// Pop removes and returns the minimum item (part of heap.Interface)
func (mh *MapHeap[K]) Pop() any {
	old := mh.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil // Avoid memory leak
	it.index = -1  // For safety
	mh.items = old[:n-1]
	delete(mh.itemsMap, it.Key)
	return it
}

// AddItem adds a new item to the queue or updates the priority of an existing one
func (mh *MapHeap[K]) AddItem(key K, priority int64) {
	// Check if item already exists
	if it, exists := mh.itemsMap[key]; exists {
		// Update priority and fix heap
		it.Priority = priority
		heap.Fix(mh, it.index)
		return
	}

	heap.Push(mh, &item[K]{
		Key:      key,
		Priority: priority,
	})
}

// RemoveByKey removes an item by its key and returns its priority
func (mh *MapHeap[K]) RemoveByKey(key K) (int64, bool) {
	it, exists := mh.itemsMap[key]
	if !exists {
		return 0, false
	}

	heap.Remove(mh, it.index)
	return it.Priority, true
}

// Peek returns the key and priority of the minimum item without removing it
func (mh *MapHeap[K]) Peek() (K, int64, bool) {
	if len(mh.items) == 0 {
		var zero K
		return zero, 0, false
	}
	return mh.items[0].Key, mh.items[0].Priority, true
}

// PopUntil removes and returns the keys of all items with a priority <= limit,
// in priority order
func (mh *MapHeap[K]) PopUntil(limit int64) []K {
	var keys []K
	for len(mh.items) > 0 && mh.items[0].Priority <= limit {
		it := heap.Pop(mh).(*item[K])
		keys = append(keys, it.Key)
	}
	return keys
}

// Contains checks if a key exists in the queue
func (mh *MapHeap[K]) Contains(key K) bool {
	_, exists := mh.itemsMap[key]
	return exists
}

// GetPriority returns the priority of a key without removing it
func (mh *MapHeap[K]) GetPriority(key K) (int64, bool) {
	it, exists := mh.itemsMap[key]
	if !exists {
		return 0, false
	}
	return it.Priority, true
}
