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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageQueue_FIFO(t *testing.T) {
	var q MessageQueue

	assert.True(t, q.Empty())

	q.Send(NewMessage(NOP))
	q.Send(NewMessage(TASK))

	m, ok := q.Receive()
	require.True(t, ok)
	assert.Equal(t, NOP, m.Kind())

	m, ok = q.Receive()
	require.True(t, ok)
	assert.Equal(t, TASK, m.Kind())

	_, ok = q.Receive()
	assert.False(t, ok)
}

func TestSignalingQueue_ReceiveBlocksUntilSend(t *testing.T) {
	sq := NewSignalingQueue()

	received := make(chan Message, 1)
	go func() { received <- sq.Receive() }()

	time.Sleep(20 * time.Millisecond)
	sq.Send(NewMessage(TASK))

	select {
	case m := <-received:
		assert.Equal(t, TASK, m.Kind())
	case <-time.After(time.Second):
		t.Fatal("Receive did not return after Send")
	}
}

func TestSignalingQueue_ReceiveSurvivesWaitGranularity(t *testing.T) {
	sq := NewSignalingQueue()

	received := make(chan Message, 1)
	go func() { received <- sq.Receive() }()

	// No Send at all within one wait cycle: Receive must wake on its own
	// timeout and retry rather than blocking forever.
	time.Sleep(WaitGranularity + 50*time.Millisecond)
	sq.Send(NewMessage(DUMP))

	select {
	case m := <-received:
		assert.Equal(t, DUMP, m.Kind())
	case <-time.After(time.Second):
		t.Fatal("Receive never woke up to observe the send")
	}
}

func TestSignalingQueue_ConstructorStoresConfiguredGranularity(t *testing.T) {
	sq := NewSignalingQueueWithGranularity(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, sq.granularity)

	def := NewSignalingQueue()
	assert.Equal(t, WaitGranularity, def.granularity)
}

func TestSignalingQueue_Loop(t *testing.T) {
	sq := NewSignalingQueue()
	h := &recordingHandler{exitResult: Finish}

	done := make(chan HandlerResult, 1)
	go func() { done <- sq.Loop(h) }()

	sq.Send(NewMessage(NOP))
	sq.Send(NewMessage(NOP))
	sq.Send(NewMessage(EXIT))

	select {
	case r := <-done:
		assert.Equal(t, Finish, r)
	case <-time.After(time.Second):
		t.Fatal("loop did not terminate on EXIT")
	}
	assert.Equal(t, []Kind{NOP, NOP, EXIT}, h.seen)
}
