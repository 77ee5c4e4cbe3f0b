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

import "reflect"

// Kind tags the closed set of control messages a worker's signaling queue
// carries.
type Kind int

const (
	// NOP asks the handler to do nothing beyond the before/after hooks.
	NOP Kind = iota
	// EXIT asks the handler to terminate its loop.
	EXIT
	// TASK asks the handler to pull one task from the pool and run it.
	TASK
	// DUMP asks the handler to emit a diagnostic snapshot.
	DUMP
)

func (k Kind) String() string {
	switch k {
	case NOP:
		return "NOP"
	case EXIT:
		return "EXIT"
	case TASK:
		return "TASK"
	case DUMP:
		return "DUMP"
	default:
		return "UNKNOWN"
	}
}

// Message is a tagged control message. Every Kind in the present closed
// set carries no payload; Payload is kept so a future Kind can carry one
// without another variant-introspection layer.
type Message struct {
	kind    Kind
	Payload any
}

// NewMessage builds a Message of the given kind.
func NewMessage(k Kind) Message {
	return Message{kind: k}
}

// Kind returns the message's tag.
func (m Message) Kind() Kind {
	return m.kind
}

// Equal reports structural equality: same tag and equal payloads. Payload
// is compared with reflect.DeepEqual rather than ==, since a future Kind's
// payload is not guaranteed to be a comparable type (a slice or map would
// panic under ==).
func (m Message) Equal(rhs Message) bool {
	return m.kind == rhs.kind && reflect.DeepEqual(m.Payload, rhs.Payload)
}

// HandlerResult is the outcome of processing a single message.
type HandlerResult int

const (
	// Continue keeps the owning loop running.
	Continue HandlerResult = iota
	// Finish ends the loop normally.
	Finish
	// HandlerError ends the loop because the handler failed.
	HandlerError
)

// Handler implements the message-dispatch state machine described in
// spec.md §4.4: a before-hook, a dispatch on Kind, an after-hook that
// always runs, and a terminal HandlerResult that ends the owning loop.
//
// DefaultHandler gives every method a base implementation matching the
// source's defaults (NOP/TASK/DUMP continue, EXIT finishes); embed it and
// override only what differs.
type Handler interface {
	OnBeforeMessage()
	OnAfterMessage()

	OnNop(Message) HandlerResult
	OnExit(Message) HandlerResult
	OnTask(Message) HandlerResult
	OnDump(Message) HandlerResult
}

// DefaultHandler implements Handler with the source's default behavior.
// Embed it in a concrete handler to only override the hooks that need
// custom behavior.
type DefaultHandler struct{}

func (DefaultHandler) OnBeforeMessage() {}
func (DefaultHandler) OnAfterMessage()  {}

func (DefaultHandler) OnNop(Message) HandlerResult  { return Continue }
func (DefaultHandler) OnExit(Message) HandlerResult { return Finish }
func (DefaultHandler) OnTask(Message) HandlerResult { return Continue }
func (DefaultHandler) OnDump(Message) HandlerResult { return Continue }

// Dispatch runs the full before/dispatch/after cycle for one message
// against a Handler, the Go equivalent of Message::Handler::handle and
// SignalingQueue::loop's inlined switch in the source.
func Dispatch(h Handler, m Message) HandlerResult {
	h.OnBeforeMessage()
	defer h.OnAfterMessage()

	switch m.Kind() {
	case NOP:
		return h.OnNop(m)
	case EXIT:
		return h.OnExit(m)
	case TASK:
		return h.OnTask(m)
	case DUMP:
		return h.OnDump(m)
	default:
		return h.OnNop(m)
	}
}
