// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmapSplitInternals(t *testing.T) {
	// an unaligned split shares the boundary byte between both halves
	b := NewBitmap([]byte{0xFF, 0x01}, 9)
	head, tail := b.SplitAt(3)
	assert.Equal(t, uint8(0), head.headerLen)
	assert.Equal(t, uint8(5), head.trailerLen)
	assert.Equal(t, 1, len(head.raw))
	assert.Equal(t, uint8(3), tail.headerLen)
	assert.Equal(t, uint8(7), tail.trailerLen)
	assert.Equal(t, 2, len(tail.raw))

	// an aligned split shares nothing
	head, tail = b.SplitAt(8)
	assert.Equal(t, uint8(0), head.trailerLen)
	assert.Equal(t, uint8(0), tail.headerLen)
	assert.Equal(t, uint8(7), tail.trailerLen)
	assert.Equal(t, 1, len(tail.raw))
}
