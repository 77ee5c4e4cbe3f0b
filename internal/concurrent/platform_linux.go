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

//go:build linux

package concurrent

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// linuxPlatform is the Go analogue of
// original_source/src/platform_linux.cpp: pthread_getaffinity_np/
// pthread_setaffinity_np become unix.SchedGetaffinity/SchedSetaffinity
// against an explicit tid, and pthread_setname_np/getname_np become reads
// and writes of /proc/self/task/<tid>/comm. prctl(PR_SET_NAME/PR_GET_NAME)
// only ever affects the calling thread, which is no good for naming a
// worker's thread from outside it, so naming goes through procfs instead
// (the same mechanism glibc's own pthread_setname_np falls back to for a
// thread other than the caller).
type linuxPlatform struct{}

func newPlatform() Platform {
	return linuxPlatform{}
}

func (linuxPlatform) NumProcessors() int {
	return runtime.NumCPU()
}

func (linuxPlatform) CurrentThread() ThreadHandle {
	return ThreadHandle(unix.Gettid())
}

func (linuxPlatform) Affinity(handle ThreadHandle) ([]bool, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(int(handle), &set); err != nil {
		return nil, err
	}
	mask := make([]bool, runtime.NumCPU())
	for cpu := range mask {
		mask[cpu] = set.IsSet(cpu)
	}
	return mask, nil
}

func (linuxPlatform) SetAffinity(handle ThreadHandle, mask []bool) error {
	var set unix.CPUSet
	for cpu, on := range mask {
		if on {
			set.Set(cpu)
		}
	}
	return unix.SchedSetaffinity(int(handle), &set)
}

func commPath(handle ThreadHandle) string {
	return fmt.Sprintf("/proc/self/task/%d/comm", handle)
}

func (linuxPlatform) Name(handle ThreadHandle) (string, error) {
	data, err := os.ReadFile(commPath(handle))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func (linuxPlatform) SetName(handle ThreadHandle, name string) error {
	if len(name) > 15 {
		name = name[:15]
	}
	return os.WriteFile(commPath(handle), []byte(name), 0)
}
