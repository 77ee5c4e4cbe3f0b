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

// Package beehive is a type-safe façade over an internal priority-based
// thread pool: Schedule adapts an arbitrary typed callable to the pool's
// untyped work item and hands back a typed completion handle, while
// ForEach and Transform add fan-out/fan-in convenience on top of it.
package beehive

import (
	"context"
	"sync"
	"time"

	"github.com/lindb/beehive/internal/concurrent"
)

// Priority is an 8-bit dispatch rank; higher values run first.
type Priority = concurrent.Priority

const (
	// MinPriority is the lowest dispatch rank.
	MinPriority = concurrent.MinPriority
	// DefaultPriority is used by Schedule when the caller doesn't specify
	// one.
	DefaultPriority = concurrent.DefaultPriority
	// MaxPriority is the highest dispatch rank.
	MaxPriority = concurrent.MaxPriority
)

// Future is a shareable, multi-consumer completion handle for a value of
// type R.
type Future[R any] = concurrent.Future[R]

// WorkerStats is a point-in-time snapshot of one worker's counters.
type WorkerStats = concurrent.WorkerStats

// WorkerView is a non-owning handle to a worker.
type WorkerView = concurrent.WorkerView

// Beehive wraps a pool of worker threads behind a generic, result-typed
// scheduling API.
type Beehive struct {
	pool *concurrent.Pool
}

// New constructs a Beehive backed by n worker threads. n == 0 substitutes
// the platform's reported processor count.
func New(workers int) *Beehive {
	return &Beehive{pool: concurrent.NewPool(workers)}
}

// NewWithOptions constructs a Beehive the way New does, but also honors
// the control-message wait granularity and CPU-pinning knobs config.Pool
// exposes (wired here, in the library entrypoint, rather than config
// itself, which must stay free of an internal/concurrent dependency).
func NewWithOptions(workers int, waitGranularity time.Duration, pinToCPU bool) *Beehive {
	return &Beehive{pool: concurrent.NewPoolWithConfig(workers, waitGranularity, pinToCPU)}
}

// Close stops accepting new work, joins every worker, and fails any task
// still queued with an abandoned-pool error.
func (b *Beehive) Close() {
	b.pool.Close()
}

// Size returns the number of worker threads.
func (b *Beehive) Size() int {
	return b.pool.Size()
}

// Idle reports whether the task queue is currently empty.
func (b *Beehive) Idle() bool {
	return b.pool.Idle()
}

// Stats snapshots every worker's counters, indexed by worker id.
func (b *Beehive) Stats() []WorkerStats {
	return b.pool.Stats()
}

// Worker returns a view of the worker at index i, or an empty view if i
// is out of range.
func (b *Beehive) Worker(i int) WorkerView {
	return b.pool.Worker(i)
}

// Dump broadcasts a diagnostic snapshot request to every worker; each
// writes its record to stderr and to the structured logger.
func (b *Beehive) Dump() {
	b.pool.Dump()
}

// AddWorker grows the pool by one worker.
func (b *Beehive) AddWorker() WorkerView {
	return b.pool.AddWorker()
}

// Idempotency returns the pool's shared at-most-once effect filter.
func (b *Beehive) Idempotency() *concurrent.IdempotencySet {
	return b.pool.Idempotency()
}

// Schedule submits fn for execution at the given priority (defaulting to
// DefaultPriority when prio is omitted) and returns a future for its
// result. A panic inside fn resolves the future with *concurrent.ErrTaskPanicked
// rather than leaving it pending forever.
func Schedule[R any](b *Beehive, fn func() R, prio ...Priority) *Future[R] {
	priority := DefaultPriority
	if len(prio) > 0 {
		priority = prio[0]
	}

	future := concurrent.NewFuture[R]()
	callable := func() {
		defer func() {
			if r := recover(); r != nil {
				future.Fail(&concurrent.ErrTaskPanicked{Recovered: r})
			}
		}()
		future.Fulfill(fn())
	}

	taskFuture := b.pool.Schedule(callable, priority)
	// If the task is abandoned before callable ever runs (pool closed
	// while queued), taskFuture resolves with an error but callable never
	// fulfilled future; propagate that failure so no caller waits on
	// future forever. If callable did run, future is already resolved by
	// the time taskFuture resolves, and Fail below is a harmless no-op.
	go func() {
		if _, err := taskFuture.Get(context.Background()); err != nil {
			future.Fail(err)
		}
	}()

	return future
}

// ForEach schedules fn(item) for every item in items and blocks until all
// have completed, waiting on each future in input order.
func ForEach[T any](b *Beehive, items []T, fn func(T)) {
	futures := make([]*Future[struct{}], len(items))
	for i, item := range items {
		item := item
		futures[i] = b.pool.Schedule(func() { fn(item) }, DefaultPriority)
	}
	for _, f := range futures {
		_, _ = f.Get(context.Background())
	}
}

// Transform schedules fn(item) for every item in items and returns their
// results. Unlike ForEach, the returned slice is ordered by completion,
// not by input position — a documented semantic choice, not a bug.
func Transform[T, R any](b *Beehive, items []T, fn func(T) R) []R {
	pending := make([]*Future[R], len(items))
	for i, item := range items {
		item := item
		pending[i] = Schedule(b, func() R { return fn(item) })
	}

	results := make(chan R, len(pending))
	var wg sync.WaitGroup
	wg.Add(len(pending))
	for _, f := range pending {
		f := f
		go func() {
			defer wg.Done()
			val, _ := f.Get(context.Background())
			results <- val
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, 0, len(items))
	for val := range results {
		out = append(out, val)
	}
	return out
}
