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
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindb/beehive/internal/concurrent"
)

func TestSchedule_BasicResult(t *testing.T) {
	hive := New(1)
	defer hive.Close()

	f := Schedule(hive, func() int { return 7 })

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestSchedule_PanicResolvesFutureWithError(t *testing.T) {
	hive := New(1)
	defer hive.Close()

	f := Schedule(hive, func() int { panic("nope") })

	_, err := f.Get(context.Background())
	require.Error(t, err)

	var panicked *concurrent.ErrTaskPanicked
	require.ErrorAs(t, err, &panicked)
}

func TestSchedule_AcceptsExplicitPriority(t *testing.T) {
	hive := New(1)
	defer hive.Close()

	low := Schedule(hive, func() string { return "low" }, MinPriority)
	_, err := low.Get(context.Background())
	require.NoError(t, err)
}

func TestForEach_RunsEveryItem(t *testing.T) {
	hive := New(3)
	defer hive.Close()

	var mu sync.Mutex
	var seen []string

	ForEach(hive, []int{1, 2, 3, 4, 5}, func(i int) {
		mu.Lock()
		seen = append(seen, strconv.Itoa(i*2))
		mu.Unlock()
	})

	sort.Strings(seen)
	assert.Equal(t, []string{"10", "2", "4", "6", "8"}, seen)
}

func TestTransform_OutputIsCompleteAndCorrect(t *testing.T) {
	hive := New(4)
	defer hive.Close()

	type pair struct{ k, v int }
	results := Transform(hive, []int{1, 2, 3, 4, 5}, func(x int) pair {
		return pair{k: x, v: x + 1}
	})

	require.Len(t, results, 5)
	byKey := make(map[int]int, len(results))
	for _, p := range results {
		byKey[p.k] = p.v
	}
	assert.Len(t, byKey, 5)
	for k, v := range byKey {
		assert.Equal(t, k+1, v)
	}
}

func TestBeehive_SizeAndWorker(t *testing.T) {
	hive := New(2)
	defer hive.Close()

	assert.Equal(t, 2, hive.Size())
	assert.True(t, hive.Worker(0).Valid())
	assert.False(t, hive.Worker(99).Valid())
}

func TestBeehive_AddWorker(t *testing.T) {
	hive := New(1)
	defer hive.Close()

	hive.AddWorker()
	assert.Equal(t, 2, hive.Size())
}

func TestBeehive_Idempotency(t *testing.T) {
	hive := New(4)
	defer hive.Close()

	assert.True(t, hive.Idempotency().NeedsRun("k"))
	assert.False(t, hive.Idempotency().NeedsRun("k"))
}
