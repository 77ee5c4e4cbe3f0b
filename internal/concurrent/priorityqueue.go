// Licensed to LinDB under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. LinDB licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package concurrent

import (
	"container/heap"
	"sync"
)

// Ordering selects whether a PriorityQueue serves the highest or the
// lowest key first.
type Ordering bool

const (
	// MaxFirst serves the highest-priority entry first.
	MaxFirst Ordering = true
	// MinFirst serves the lowest-priority entry first.
	MinFirst Ordering = false
)

// entry is one (key, value) slot inside the heap. seq breaks ties between
// equal keys in push order, giving a deterministic-within-a-push-sequence
// tie-break as required by the priority model.
type entry[K ~uint8 | ~int | ~int64, V any] struct {
	key   K
	value V
	seq   uint64
}

// innerHeap implements container/heap.Interface over entry slices, honoring
// the requested Ordering.
type innerHeap[K ~uint8 | ~int | ~int64, V any] struct {
	entries []entry[K, V]
	order   Ordering
}

func (h *innerHeap[K, V]) Len() int { return len(h.entries) }

func (h *innerHeap[K, V]) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.key != b.key {
		if h.order == MaxFirst {
			return a.key > b.key
		}
		return a.key < b.key
	}
	return a.seq < b.seq
}

func (h *innerHeap[K, V]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *innerHeap[K, V]) Push(x any) {
	h.entries = append(h.entries, x.(entry[K, V]))
}

func (h *innerHeap[K, V]) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// PriorityQueue is a synchronized binary heap keyed by priority. Every
// exported operation holds the queue's mutex for its whole duration, so
// push, try-pop, peek and size are each atomic with respect to one
// another.
type PriorityQueue[K ~uint8 | ~int | ~int64, V any] struct {
	mutex sync.Mutex
	heap  innerHeap[K, V]
	seq   uint64
}

// NewPriorityQueue creates an empty queue with the given ordering.
func NewPriorityQueue[K ~uint8 | ~int | ~int64, V any](order Ordering) *PriorityQueue[K, V] {
	return &PriorityQueue[K, V]{
		heap: innerHeap[K, V]{order: order},
	}
}

// Push inserts a value at the given priority.
func (q *PriorityQueue[K, V]) Push(key K, value V) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.seq++
	heap.Push(&q.heap, entry[K, V]{key: key, value: value, seq: q.seq})
}

// Empty reports whether the queue currently holds no values.
func (q *PriorityQueue[K, V]) Empty() bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return len(q.heap.entries) == 0
}

// Size returns the number of values currently resident.
func (q *PriorityQueue[K, V]) Size() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return len(q.heap.entries)
}

// TryPop removes and returns the extremal-priority value, or false if the
// queue is empty. This is the only pop variant the core scheduler relies
// on — it never blocks and never panics on an empty queue.
func (q *PriorityQueue[K, V]) TryPop() (value V, priority K, ok bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.heap.entries) == 0 {
		return value, priority, false
	}
	e := heap.Pop(&q.heap).(entry[K, V])
	return e.value, e.key, true
}

// Peek returns the extremal-priority value without removing it. The
// caller must ensure the queue is non-empty; like the source this core is
// ported from, Peek has no defined behavior on an empty queue and the
// scheduler never calls it in that state.
func (q *PriorityQueue[K, V]) Peek() V {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return q.heap.entries[0].value
}
