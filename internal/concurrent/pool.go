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
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/lindb/common/pkg/logger"
)

var poolLog = logger.GetLogger("Concurrent", "Pool")

// Pool owns a set of Workers and a single centralized priority queue of
// Tasks. Scheduling is broadcast-signaled (spec.md §9): every push sends
// a TASK message to every worker, rather than routing the task to one
// chosen worker directly, so any idle worker can pick it up and an
// over-signaled worker's surplus TASK is a cheap no-op.
//
// The workers slice and the task queue are guarded by independent locks
// (RWMutex for the slice, PriorityQueue's own mutex for the queue).
// Schedule takes the queue's mutex while holding the slice's read lock,
// always in that order, so no recursive mutex is needed.
type Pool struct {
	mu       sync.RWMutex
	workers  []*Worker
	platform Platform

	// granularity and pinToCPU are recorded so AddWorker can build later
	// workers with the same settings the pool was constructed with.
	granularity time.Duration
	pinToCPU    bool

	tasks       *PriorityQueue[Priority, *Task]
	idempotency *IdempotencySet

	closed atomic.Bool
}

// NewPool constructs a pool of n workers. n == 0 substitutes the
// platform's reported processor count.
func NewPool(n int) *Pool {
	return newPoolWithOptions(n, defaultPlatform, WaitGranularity, false)
}

// NewPoolWithConfig constructs a pool of n workers using an explicit
// control-message wait granularity and, when pinToCPU is set, pins each
// worker's thread to a distinct logical CPU round-robin (via the affinity
// capability, when the platform supports it).
func NewPoolWithConfig(n int, granularity time.Duration, pinToCPU bool) *Pool {
	return newPoolWithOptions(n, defaultPlatform, granularity, pinToCPU)
}

func newPoolWithPlatform(n int, platform Platform) *Pool {
	return newPoolWithOptions(n, platform, WaitGranularity, false)
}

func newPoolWithOptions(n int, platform Platform, granularity time.Duration, pinToCPU bool) *Pool {
	if n == 0 {
		n = platform.NumProcessors()
	}
	if n < 1 {
		n = 1
	}

	p := &Pool{
		platform:    platform,
		granularity: granularity,
		pinToCPU:    pinToCPU,
		tasks:       NewPriorityQueue[Priority, *Task](MaxFirst),
		idempotency: NewIdempotencySet(),
	}
	p.workers = make([]*Worker, 0, n)
	for i := 0; i < n; i++ {
		p.workers = append(p.workers, newWorker(i, p, platform, granularity, p.pinCPUFor(i)))
	}
	return p
}

// pinCPUFor returns the logical CPU worker index i should be pinned to,
// or -1 if the pool was not configured to pin workers to CPUs.
func (p *Pool) pinCPUFor(index int) int {
	if !p.pinToCPU {
		return -1
	}
	n := p.platform.NumProcessors()
	if n <= 0 {
		return -1
	}
	return index % n
}

// Size returns the number of workers currently in the pool.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.workers)
}

// Schedule wraps callable in a Task, pushes it at the given priority, and
// broadcasts a TASK message to every worker. It returns the task's
// completion future.
//
// The closed check and the push+broadcast happen under the same read
// lock Close takes as a write lock before it drains the queue, so a
// Schedule that observes closed == false is guaranteed to finish pushing
// and broadcasting before Close's drain can run — otherwise a task could
// be queued after Close's one-shot drain had already completed, and its
// future would never resolve.
func (p *Pool) Schedule(callable func(), priority Priority) *Future[struct{}] {
	task := NewTask(callable)

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed.Load() {
		task.future.Fail(ErrPoolClosed)
		return task.future
	}

	p.tasks.Push(priority, task)
	for _, w := range p.workers {
		w.SignalTask()
	}

	return task.future
}

// Task is the non-blocking try-pop workers use to claim one unit of work.
// It returns false if the queue was already drained by a peer.
func (p *Pool) Task() (*Task, bool) {
	task, _, ok := p.tasks.TryPop()
	return task, ok
}

// nextTask is the name Worker calls internally; kept distinct from the
// exported Task method so the public surface reads like spec.md's
// Pool::task() while internal callers aren't tempted to read it as
// "get the Task type".
func (p *Pool) nextTask() (*Task, bool) {
	return p.Task()
}

// Idle reports whether the task queue is currently empty. It says
// nothing about whether workers are themselves busy running a task they
// already popped.
func (p *Pool) Idle() bool {
	return p.tasks.Empty()
}

// Stats snapshots every worker's counters, indexed by worker id.
func (p *Pool) Stats() []WorkerStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		out[i] = w.Stats()
	}
	return out
}

// Worker returns a view of the worker at index i, or an empty view if i
// is out of range.
func (p *Pool) Worker(i int) WorkerView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i < 0 || i >= len(p.workers) {
		return WorkerView{}
	}
	return p.workers[i].View()
}

// Idempotency returns the pool's shared idempotency set, usable from
// within scheduled tasks to enforce at-most-once effects.
func (p *Pool) Idempotency() *IdempotencySet {
	return p.idempotency
}

// Dump broadcasts a DUMP message to every worker.
func (p *Pool) Dump() {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, w := range p.workers {
		w.SignalDump()
	}
}

// AddWorker appends a new worker at index Size(). Safe to call
// concurrently with Schedule. The new worker participates in subsequent
// broadcasts but does not retroactively receive TASK signals for work
// already queued; it will still drain that work on its next TASK signal,
// since the queue itself is shared and not partitioned per worker. A
// no-op, returning an empty view, once the pool is closed — otherwise a
// worker started after Close had already joined everyone would never be
// joined itself and would leak its goroutine and locked OS thread.
func (p *Pool) AddWorker() WorkerView {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed.Load() {
		return WorkerView{}
	}

	id := len(p.workers)
	w := newWorker(id, p, p.platform, p.granularity, p.pinCPUFor(id))
	p.workers = append(p.workers, w)
	return w.View()
}

// Close stops accepting new work, closes every worker (EXIT is delivered
// after any messages already queued for that worker), and fails every
// task still resident in the queue with ErrPoolClosed so no caller waits
// on an abandoned future forever.
//
// Marking closed happens under a write lock, which waits for every
// Schedule/AddWorker call already holding the read/write lock to finish
// first; any call that acquires the lock afterward observes closed == true
// and is therefore guaranteed not to race the drain below.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed.Load() {
		p.mu.Unlock()
		return
	}
	p.closed.Store(true)
	workers := append([]*Worker(nil), p.workers...)
	p.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(len(workers))
	for _, w := range workers {
		w := w
		go func() {
			defer wg.Done()
			w.Close()
		}()
	}
	wg.Wait()

	dropped := 0
	for {
		task, ok := p.tasks.TryPop()
		if !ok {
			break
		}
		task.future.Fail(ErrPoolClosed)
		dropped++
	}
	if dropped > 0 {
		poolLog.Warn("pool closed with tasks still queued; futures abandoned",
			logger.Int("dropped", dropped))
	}
}
