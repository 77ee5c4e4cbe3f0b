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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue_MaxFirst(t *testing.T) {
	q := NewPriorityQueue[Priority, string](MaxFirst)

	q.Push(10, "low")
	q.Push(255, "highest")
	q.Push(127, "mid")

	v, p, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, "highest", v)
	assert.Equal(t, Priority(255), p)

	v, _, ok = q.TryPop()
	require.True(t, ok)
	assert.Equal(t, "mid", v)

	v, _, ok = q.TryPop()
	require.True(t, ok)
	assert.Equal(t, "low", v)

	assert.True(t, q.Empty())
}

func TestPriorityQueue_MinFirst(t *testing.T) {
	q := NewPriorityQueue[int, string](MinFirst)

	q.Push(10, "a")
	q.Push(1, "b")
	q.Push(5, "c")

	_, p, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, 1, p)
}

func TestPriorityQueue_TiesBreakFIFO(t *testing.T) {
	q := NewPriorityQueue[Priority, int](MaxFirst)

	for i := 0; i < 5; i++ {
		q.Push(DefaultPriority, i)
	}

	for i := 0; i < 5; i++ {
		v, _, ok := q.TryPop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestPriorityQueue_TryPopOnEmpty(t *testing.T) {
	q := NewPriorityQueue[Priority, int](MaxFirst)

	_, _, ok := q.TryPop()
	assert.False(t, ok)
}

func TestPriorityQueue_SizeAndEmpty(t *testing.T) {
	q := NewPriorityQueue[Priority, int](MaxFirst)
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Size())

	q.Push(1, 1)
	q.Push(2, 2)
	assert.False(t, q.Empty())
	assert.Equal(t, 2, q.Size())
}

func TestPriorityQueue_ConcurrentPushPop(t *testing.T) {
	q := NewPriorityQueue[Priority, int](MaxFirst)

	var wg sync.WaitGroup
	const n = 500
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			q.Push(Priority(i%256), i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, q.Size())

	popped := 0
	for {
		if _, _, ok := q.TryPop(); !ok {
			break
		}
		popped++
	}
	assert.Equal(t, n, popped)
}
