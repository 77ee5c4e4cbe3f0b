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

// WorkerView is a non-owning handle to a Worker, safe to copy, valid only
// while the owning Pool is alive. An empty WorkerView (Valid() == false)
// is returned for an out-of-range worker index instead of panicking,
// mirroring the source's Worker::View::empty() sentinel.
type WorkerView struct {
	worker *Worker
}

// Valid reports whether this view refers to an actual worker.
func (v WorkerView) Valid() bool {
	return v.worker != nil
}

// ID returns the worker's stable index, or -1 for an empty view.
func (v WorkerView) ID() int {
	if !v.Valid() {
		return -1
	}
	return v.worker.ID()
}

// Name returns the worker's logical name, or "" for an empty view.
func (v WorkerView) Name() string {
	if !v.Valid() {
		return ""
	}
	return v.worker.Name()
}

// SetName updates the worker's logical and OS thread name. On an empty
// view it changes nothing and returns ErrNoSuchWorker.
func (v WorkerView) SetName(name string) error {
	if !v.Valid() {
		return ErrNoSuchWorker
	}
	return v.worker.SetName(name)
}

// Affinity returns the worker's CPU affinity mask, or an error for an
// empty view.
func (v WorkerView) Affinity() ([]bool, error) {
	if !v.Valid() {
		return nil, ErrNoSuchWorker
	}
	return v.worker.Affinity()
}

// SetAffinity pins the worker to the given CPU mask.
func (v WorkerView) SetAffinity(mask []bool) error {
	if !v.Valid() {
		return ErrNoSuchWorker
	}
	return v.worker.SetAffinity(mask)
}

// Stats returns the worker's current counters, or a zero value for an
// empty view.
func (v WorkerView) Stats() WorkerStats {
	if !v.Valid() {
		return WorkerStats{}
	}
	return v.worker.Stats()
}
