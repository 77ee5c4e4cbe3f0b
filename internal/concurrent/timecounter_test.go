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
)

func TestTimeCounter_DoubleStartIsNoop(t *testing.T) {
	var tc TimeCounter

	tc.Start()
	time.Sleep(100 * time.Millisecond)
	tc.Start() // second start must not reset the interval
	time.Sleep(100 * time.Millisecond)
	tc.Stop()

	assert.GreaterOrEqual(t, tc.Value(), 200*time.Millisecond)
}

func TestTimeCounter_DoubleStopIsNoop(t *testing.T) {
	var tc TimeCounter

	tc.Start()
	time.Sleep(100 * time.Millisecond)
	tc.Stop()
	v := tc.Value()

	time.Sleep(100 * time.Millisecond)
	tc.Stop() // already stopped: must not change the accumulated value

	assert.Equal(t, v, tc.Value())
}

func TestTimeCounter_ValueExcludesInProgressInterval(t *testing.T) {
	var tc TimeCounter

	tc.Start()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, time.Duration(0), tc.Value())
}

func TestTimeCounter_ConcurrentAccess(t *testing.T) {
	var tc TimeCounter
	tc.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			tc.Value()
		}
	}()
	for i := 0; i < 1000; i++ {
		tc.Start()
		tc.Stop()
	}
	<-done
}
