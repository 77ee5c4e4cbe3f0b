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
	"context"
	"sync"
)

// Future is the Go stand-in for std::shared_future<R>: a shareable,
// multi-consumer completion handle. Any number of goroutines may call
// Wait/Get/TryGet concurrently; the value becomes visible to all of them
// the moment Fulfill or Fail closes the done channel.
type Future[R any] struct {
	once  sync.Once
	done  chan struct{}
	value R
	err   error
}

// NewFuture returns an unresolved future.
func NewFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// Fulfill resolves the future with a value. Only the first call (Fulfill
// or Fail) has an effect, matching a promise's single-set-value contract.
func (f *Future[R]) Fulfill(value R) {
	f.once.Do(func() {
		f.value = value
		close(f.done)
	})
}

// Fail resolves the future with an error.
func (f *Future[R]) Fail(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed once the future is resolved, for use in a
// select statement alongside other events.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the future has already resolved, without
// blocking.
func (f *Future[R]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// TryGet returns the resolved value without blocking, if it is already
// available.
func (f *Future[R]) TryGet() (value R, ok bool, err error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		return value, false, nil
	}
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future[R]) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get blocks until the future resolves or ctx is done, then returns the
// value (and any error the task failed with).
func (f *Future[R]) Get(ctx context.Context) (value R, err error) {
	if waitErr := f.Wait(ctx); waitErr != nil {
		return value, waitErr
	}
	return f.value, f.err
}
