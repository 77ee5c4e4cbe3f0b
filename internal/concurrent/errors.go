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

import "errors"

var (
	// ErrNoSuchWorker is returned by operations against an out-of-range
	// worker index or an empty WorkerView.
	ErrNoSuchWorker = errors.New("beehive: no such worker")

	// ErrPoolClosed is returned by Schedule after Close, and is the
	// failure every task still queued at Close time resolves with.
	ErrPoolClosed = errors.New("beehive: pool is closed")
)
