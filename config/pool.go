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

package config

import (
	"fmt"
	"time"

	"github.com/lindb/common/pkg/ltoml"
)

// defaultWaitGranularity mirrors internal/concurrent.WaitGranularity; kept
// as a separate constant so config has no dependency on the internal
// package it configures.
const defaultWaitGranularity = 100 * time.Millisecond

// Pool represents the configuration for a beehive worker pool.
type Pool struct {
	Workers       int            `env:"WORKERS" toml:"workers"`
	WaitGranular  ltoml.Duration `env:"WAIT_GRANULARITY" toml:"wait-granularity"`
	DumpInterval  ltoml.Duration `env:"DUMP_INTERVAL" toml:"dump-interval"`
	PinToCPU      bool           `env:"PIN_TO_CPU" toml:"pin-to-cpu"`
}

// TOML returns Pool's toml config.
func (p *Pool) TOML() string {
	return fmt.Sprintf(`
## Config for the beehive worker pool
[pool]
## number of worker threads, 0 substitutes the host's processor count
## Default: %d
## Env: BEEHIVE_POOL_WORKERS
workers = %d
## bounded wait per control-message receive cycle
## Default: %s
## Env: BEEHIVE_POOL_WAIT_GRANULARITY
wait-granularity = "%s"
## interval between automatic worker stats dumps, 0 disables it
## Default: %s
## Env: BEEHIVE_POOL_DUMP_INTERVAL
dump-interval = "%s"
## pin each worker thread to a distinct CPU, round-robin, when supported
## Default: %v
## Env: BEEHIVE_POOL_PIN_TO_CPU
pin-to-cpu = %v`,
		p.Workers,
		p.Workers,
		p.WaitGranular.String(),
		p.WaitGranular.String(),
		p.DumpInterval.String(),
		p.DumpInterval.String(),
		p.PinToCPU,
		p.PinToCPU,
	)
}

// NewDefaultPool returns the default pool configuration: auto-sized
// worker count, the spec's 100ms wait granularity, dumps disabled, and
// no CPU pinning.
func NewDefaultPool() *Pool {
	return &Pool{
		Workers:      0,
		WaitGranular: ltoml.Duration(defaultWaitGranularity),
		DumpInterval: 0,
		PinToCPU:     false,
	}
}
