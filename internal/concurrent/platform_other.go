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

//go:build !linux

package concurrent

import (
	"errors"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// ErrUnsupportedPlatform is returned by affinity/naming operations on a
// GOOS that has no native thread-affinity or thread-naming API wired up.
var ErrUnsupportedPlatform = errors.New("beehive: operation not supported on this platform")

// portablePlatform backs NumProcessors with gopsutil (the same portable
// host-introspection dependency lindb itself carries) and reports
// affinity/naming as unsupported, rather than silently lying about
// per-thread state it has no way to change.
type portablePlatform struct{}

func newPlatform() Platform {
	return portablePlatform{}
}

func (portablePlatform) NumProcessors() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// CurrentThread returns the zero ThreadHandle: every handle is equally
// meaningless here since Affinity/Name are unsupported regardless of
// which thread they'd target.
func (portablePlatform) CurrentThread() ThreadHandle {
	return 0
}

func (portablePlatform) Affinity(ThreadHandle) ([]bool, error) {
	return nil, ErrUnsupportedPlatform
}

func (portablePlatform) SetAffinity(ThreadHandle, []bool) error {
	return ErrUnsupportedPlatform
}

func (portablePlatform) Name(ThreadHandle) (string, error) {
	return "", ErrUnsupportedPlatform
}

func (portablePlatform) SetName(ThreadHandle, string) error {
	return ErrUnsupportedPlatform
}
