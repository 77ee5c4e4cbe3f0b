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
)

// TimeCounter accumulates elapsed wall-clock intervals between paired
// Start/Stop calls. Redundant Start or Stop calls are no-ops: the counter
// only ever measures one open interval at a time.
type TimeCounter struct {
	mutex       sync.Mutex
	running     bool
	startedAt   time.Time
	accumulated time.Duration
}

// Start begins a new interval if one isn't already open.
func (t *TimeCounter) Start() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.running {
		return
	}
	t.running = true
	t.startedAt = time.Now()
}

// Stop closes the open interval, if any, folding its duration into the
// accumulated total.
func (t *TimeCounter) Stop() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.running {
		return
	}
	t.accumulated += time.Since(t.startedAt)
	t.running = false
}

// Value returns the accumulated duration across all closed intervals. An
// interval still in progress is not included.
func (t *TimeCounter) Value() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.accumulated
}
