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

// ThreadHandle identifies a specific OS thread that a Platform operation
// should target. It is opaque outside this package: on Linux it is a tid
// (as returned by gettid(2)); on platforms with no addressable-by-other-
// threads support it carries no meaning and every ThreadHandle is
// equally unsupported.
type ThreadHandle int64

// Platform is the capability port spec.md §1 and §6 carve out as external
// glue: CPU affinity and thread naming for a specific OS thread, named by
// ThreadHandle rather than implicitly "whichever thread is calling this
// method". A Worker locks its goroutine to one OS thread for its lifetime
// (runtime.LockOSThread) and captures that thread's handle once at
// startup via CurrentThread, specifically so that later Affinity/Name
// calls made from any other goroutine (e.g. Pool.Worker(i).SetAffinity)
// still target worker i's own thread rather than the caller's.
type Platform interface {
	// NumProcessors returns the number of processors available to the
	// process, the Go analogue of Platform::num_processors().
	NumProcessors() int

	// CurrentThread returns a handle to the calling thread. It must be
	// called from the goroutine that is locked (runtime.LockOSThread) to
	// the OS thread being named, since a handle captured from any other
	// goroutine would identify the wrong thread.
	CurrentThread() ThreadHandle

	// Affinity returns handle's CPU affinity mask as a bitset, one bool
	// per logical CPU.
	Affinity(handle ThreadHandle) ([]bool, error)
	// SetAffinity pins handle's thread to the logical CPUs set in mask.
	SetAffinity(handle ThreadHandle, mask []bool) error

	// Name returns handle's thread name.
	Name(handle ThreadHandle) (string, error)
	// SetName sets handle's thread name, truncated to whatever length
	// the OS allows (15 bytes plus a NUL terminator on Linux).
	SetName(handle ThreadHandle, name string) error
}

// defaultPlatform is the process-wide Platform, the real OS implementation
// selected by build tag, that NewPool and NewPoolWithConfig hand to every
// worker (tests pass their own Platform through newPoolWithPlatform or
// newPoolWithOptions instead).
var defaultPlatform Platform = newPlatform()
