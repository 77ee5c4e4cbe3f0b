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

	"github.com/stretchr/testify/assert"
)

func TestMessage_Equal(t *testing.T) {
	a := NewMessage(TASK)
	b := NewMessage(TASK)
	c := NewMessage(EXIT)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "NOP", NOP.String())
	assert.Equal(t, "EXIT", EXIT.String())
	assert.Equal(t, "TASK", TASK.String())
	assert.Equal(t, "DUMP", DUMP.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}

// recordingHandler counts every hook invocation so the dispatch cycle's
// ordering can be asserted precisely.
type recordingHandler struct {
	DefaultHandler
	before, after int
	seen          []Kind
	exitResult    HandlerResult
}

func (h *recordingHandler) OnBeforeMessage() { h.before++ }
func (h *recordingHandler) OnAfterMessage()  { h.after++ }

func (h *recordingHandler) OnNop(m Message) HandlerResult {
	h.seen = append(h.seen, m.Kind())
	return Continue
}

func (h *recordingHandler) OnExit(m Message) HandlerResult {
	h.seen = append(h.seen, m.Kind())
	return h.exitResult
}

func TestDispatch_DefaultHandlerBehavior(t *testing.T) {
	var h DefaultHandler

	assert.Equal(t, Continue, Dispatch(h, NewMessage(NOP)))
	assert.Equal(t, Continue, Dispatch(h, NewMessage(TASK)))
	assert.Equal(t, Continue, Dispatch(h, NewMessage(DUMP)))
	assert.Equal(t, Finish, Dispatch(h, NewMessage(EXIT)))
}

func TestDispatch_HooksAlwaysRun(t *testing.T) {
	h := &recordingHandler{exitResult: Finish}

	Dispatch(h, NewMessage(NOP))
	Dispatch(h, NewMessage(EXIT))

	assert.Equal(t, 2, h.before)
	assert.Equal(t, 2, h.after)
	assert.Equal(t, []Kind{NOP, EXIT}, h.seen)
}
