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

package beehive

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workerMessagesDesc = prometheus.NewDesc(
		"beehive_worker_messages_total",
		"Control messages processed by a worker.",
		[]string{"worker", "name"}, nil)
	workerRunsDesc = prometheus.NewDesc(
		"beehive_worker_runs_total",
		"Tasks actually executed by a worker.",
		[]string{"worker", "name"}, nil)
	workerActiveSecondsDesc = prometheus.NewDesc(
		"beehive_worker_active_seconds_total",
		"Cumulative time a worker spent inside its message handler.",
		[]string{"worker", "name"}, nil)
	workerIdleSecondsDesc = prometheus.NewDesc(
		"beehive_worker_idle_seconds_total",
		"Cumulative time a worker spent blocked waiting for a message.",
		[]string{"worker", "name"}, nil)
	poolQueueDepthDesc = prometheus.NewDesc(
		"beehive_pool_queue_depth",
		"Whether the pool's task queue currently holds work (0 or 1).",
		nil, nil)
	poolSizeDesc = prometheus.NewDesc(
		"beehive_pool_size",
		"Number of worker threads in the pool.",
		nil, nil)
)

// Collector adapts a Beehive's live worker stats to the prometheus
// pull model: every scrape snapshots Stats() rather than pushing counter
// updates from the hot task-dispatch path.
type Collector struct {
	hive *Beehive
}

// NewCollector wraps hive for Prometheus registration.
func NewCollector(hive *Beehive) *Collector {
	return &Collector{hive: hive}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- workerMessagesDesc
	ch <- workerRunsDesc
	ch <- workerActiveSecondsDesc
	ch <- workerIdleSecondsDesc
	ch <- poolQueueDepthDesc
	ch <- poolSizeDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.hive.Stats()
	for i, s := range stats {
		id := strconv.Itoa(i)
		name := c.hive.Worker(i).Name()

		ch <- prometheus.MustNewConstMetric(workerMessagesDesc, prometheus.CounterValue, float64(s.Messages), id, name)
		ch <- prometheus.MustNewConstMetric(workerRunsDesc, prometheus.CounterValue, float64(s.Runs), id, name)
		ch <- prometheus.MustNewConstMetric(workerActiveSecondsDesc, prometheus.CounterValue, s.Active.Seconds(), id, name)
		ch <- prometheus.MustNewConstMetric(workerIdleSecondsDesc, prometheus.CounterValue, s.Idle.Seconds(), id, name)
	}

	depth := 0.0
	if !c.hive.Idle() {
		depth = 1.0
	}
	ch <- prometheus.MustNewConstMetric(poolQueueDepthDesc, prometheus.GaugeValue, depth)
	ch <- prometheus.MustNewConstMetric(poolSizeDesc, prometheus.GaugeValue, float64(c.hive.Size()))
}
