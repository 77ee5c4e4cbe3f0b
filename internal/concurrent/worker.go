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
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/lindb/common/pkg/logger"
)

// dumpMu serializes stderr dump output across all workers in the process,
// so concurrent DUMP messages interleave at worker granularity rather
// than at line granularity. A per-pool sink could replace this, but the
// source's dump format is a process-wide stderr contract (spec.md §6),
// so the lock is process-wide too.
var dumpMu sync.Mutex

var workerLog = logger.GetLogger("Concurrent", "Worker")

// Worker owns one goroutine locked to its own OS thread. It consumes
// control messages from its own signaling queue and, on TASK, pulls at
// most one Task from the owning Pool's priority queue and runs it.
type Worker struct {
	DefaultHandler

	id       int
	pool     *Pool
	platform Platform
	queue    *SignalingQueue
	stats    atomicStats

	// pinCPU is the logical CPU this worker's thread should be pinned to
	// at startup, or -1 to leave affinity untouched.
	pinCPU int

	nameMu sync.RWMutex
	name   string

	// handle identifies this worker's own OS thread, captured once in
	// workLoop after runtime.LockOSThread. It is read by Affinity/Name
	// calls issued from any other goroutine, so it must be set through
	// an atomic and guarded by ready rather than read directly.
	handle atomic.Int64
	ready  chan struct{}

	done chan struct{}
}

// newWorker registers a worker at a stable id and spawns its goroutine.
// granularity is the bounded wait the worker's signaling queue uses per
// receive cycle; pinCPU, if >= 0, is the logical CPU the worker's thread
// is pinned to once its own handle is available.
func newWorker(id int, pool *Pool, platform Platform, granularity time.Duration, pinCPU int) *Worker {
	w := &Worker{
		id:       id,
		pool:     pool,
		platform: platform,
		queue:    NewSignalingQueueWithGranularity(granularity),
		pinCPU:   pinCPU,
		name:     fmt.Sprintf("worker[%d]", id),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.workLoop()
	return w
}

// workLoop is the goroutine body: lock to one OS thread so Platform's
// affinity/naming calls are stable, capture this thread's handle, apply
// the default name and optional CPU pin, start the idle counter, and
// drive the signaling-queue loop with this worker as its own handler.
func (w *Worker) workLoop() {
	defer close(w.done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w.handle.Store(int64(w.platform.CurrentThread()))
	close(w.ready)

	if err := w.platform.SetName(w.threadHandle(), w.Name()); err != nil {
		workerLog.Debug("set worker thread name failed",
			logger.Int("worker", w.id), logger.Error(err))
	}

	if w.pinCPU >= 0 {
		n := w.platform.NumProcessors()
		if n <= w.pinCPU {
			n = w.pinCPU + 1
		}
		mask := make([]bool, n)
		mask[w.pinCPU] = true
		if err := w.platform.SetAffinity(w.threadHandle(), mask); err != nil {
			workerLog.Debug("pin worker thread to cpu failed",
				logger.Int("worker", w.id), logger.Int("cpu", w.pinCPU), logger.Error(err))
		}
	}

	w.stats.idle.Start()
	w.queue.Loop(w)
}

// threadHandle blocks until workLoop has captured this worker's own OS
// thread handle, then returns it. Callers are any goroutine invoking
// Affinity/Name/SetAffinity/SetName, which may run well before or after
// workLoop reaches that point.
func (w *Worker) threadHandle() ThreadHandle {
	<-w.ready
	return ThreadHandle(w.handle.Load())
}

// Send enqueues a control message for this worker.
func (w *Worker) Send(m Message) {
	w.queue.Send(m)
}

// SignalTask sends a TASK control message.
func (w *Worker) SignalTask() {
	w.Send(NewMessage(TASK))
}

// SignalDump sends a DUMP control message.
func (w *Worker) SignalDump() {
	w.Send(NewMessage(DUMP))
}

// Close sends EXIT and waits for the goroutine to finish. Any already
// queued NOP/TASK/DUMP messages are drained first since EXIT is FIFO
// behind them; the pool's task queue is not drained by this call.
func (w *Worker) Close() {
	w.Send(NewMessage(EXIT))
	<-w.done
}

// ID returns the worker's stable index within its pool.
func (w *Worker) ID() int {
	return w.id
}

// Name returns the worker's logical name (distinct from the OS thread
// name Platform tracks, though SetName keeps both in sync).
func (w *Worker) Name() string {
	w.nameMu.RLock()
	defer w.nameMu.RUnlock()

	return w.name
}

// SetName updates the worker's logical name and, best-effort, the
// backing OS thread's name. Blocks until the worker's own thread handle
// is available (briefly, at worst until workLoop starts).
func (w *Worker) SetName(name string) error {
	w.nameMu.Lock()
	w.name = name
	w.nameMu.Unlock()

	return w.platform.SetName(w.threadHandle(), name)
}

// Affinity returns the worker thread's current CPU affinity mask.
func (w *Worker) Affinity() ([]bool, error) {
	return w.platform.Affinity(w.threadHandle())
}

// SetAffinity pins the worker thread to the given CPU mask.
func (w *Worker) SetAffinity(mask []bool) error {
	return w.platform.SetAffinity(w.threadHandle(), mask)
}

// Stats returns a snapshot of this worker's counters.
func (w *Worker) Stats() WorkerStats {
	return w.stats.load()
}

// View returns a non-owning handle to this worker.
func (w *Worker) View() WorkerView {
	return WorkerView{worker: w}
}

// OnBeforeMessage stops the idle counter, starts the active counter, and
// counts the message — run before every dispatch regardless of kind.
func (w *Worker) OnBeforeMessage() {
	w.stats.idle.Stop()
	w.stats.active.Start()
	w.stats.message()
}

// OnAfterMessage stops the active counter and resumes idling — run after
// every dispatch regardless of the handler's result.
func (w *Worker) OnAfterMessage() {
	w.stats.active.Stop()
	w.stats.idle.Start()
}

// OnTask asks the pool for one task. If the queue was already drained by
// a peer worker, this TASK message is surplus and is legally a no-op.
func (w *Worker) OnTask(Message) HandlerResult {
	task, ok := w.pool.nextTask()
	if !ok {
		return Continue
	}
	w.stats.run()
	task.Run()
	return Continue
}

// OnDump emits a diagnostic snapshot in the format spec.md §6 documents,
// serialized process-wide, and additionally logs it through the ambient
// structured logger.
func (w *Worker) OnDump(Message) HandlerResult {
	snapshot := w.Stats()
	name := w.Name()

	dumpMu.Lock()
	fmt.Fprintf(os.Stderr, "Thread: %s\n", name)
	fmt.Fprintf(os.Stderr, "Number of tasks ran: %d\n", snapshot.Runs)
	fmt.Fprintf(os.Stderr, "Number of messages processed: %d\n", snapshot.Messages)
	fmt.Fprintf(os.Stderr, "Time active: %d milliseconds\n", snapshot.Active.Milliseconds())
	fmt.Fprintf(os.Stderr, "Time idle: %d milliseconds\n", snapshot.Idle.Milliseconds())
	dumpMu.Unlock()

	workerLog.Info("worker dump",
		logger.String("name", name),
		logger.Int("worker", w.id),
		logger.Any("stats", snapshot))

	return Continue
}
