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
	"time"

	"go.uber.org/atomic"
)

// WorkerStats is a point-in-time snapshot of a worker's counters. The
// integer fields are monotonically non-decreasing for the worker's
// lifetime; runs never exceeds the number of TASK messages processed,
// which never exceeds messages.
type WorkerStats struct {
	Messages uint64
	Runs     uint64
	Idle     time.Duration
	Active   time.Duration
}

// atomicStats is the mutable counter set a Worker updates from its own
// goroutine and any reader snapshots concurrently via Load. Messages and
// Runs use lock-free atomics (grounded on internal/concurrent's own
// go.uber.org/atomic usage in the pack); Idle and Active are backed by
// TimeCounter's mutex since they represent open/close interval pairs
// rather than simple counters.
type atomicStats struct {
	messages atomic.Uint64
	runs     atomic.Uint64
	idle     TimeCounter
	active   TimeCounter
}

func (s *atomicStats) load() WorkerStats {
	return WorkerStats{
		Messages: s.messages.Load(),
		Runs:     s.runs.Load(),
		Idle:     s.idle.Value(),
		Active:   s.active.Value(),
	}
}

func (s *atomicStats) message() {
	s.messages.Inc()
}

func (s *atomicStats) run() {
	s.runs.Inc()
}
