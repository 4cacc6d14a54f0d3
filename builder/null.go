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

package builder

import (
	"sync/atomic"

	"github.com/gocolumnar/columnar"
	"github.com/gocolumnar/columnar/internal/debug"
	"github.com/gocolumnar/columnar/memory"
)

// A NullBuilder counts appended nulls for a column that stores no values at
// all. It needs no buffers, only length and null accounting.
type NullBuilder struct {
	builder
}

// NewNullBuilder returns a builder, using the provided memory allocator.
func NewNullBuilder(mem memory.Allocator) *NullBuilder {
	return &NullBuilder{builder: builder{refCount: 1, mem: mem}}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *NullBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
	}
}

// AppendNull adds a new null value to the slice being built.
func (b *NullBuilder) AppendNull() {
	b.length++
	b.nulls++
}

// AppendNulls adds n null values to the slice being built.
func (b *NullBuilder) AppendNulls(n int) {
	b.length += n
	b.nulls += n
}

func (b *NullBuilder) Reserve(n int) {}

func (b *NullBuilder) Resize(n int) {}

// ValiditySlice returns an all-false validity of the accumulated length.
func (b *NullBuilder) ValiditySlice() columnar.Validity {
	if b.length == 0 {
		return columnar.AllValid(0)
	}
	raw := make([]byte, (b.length+7)/8)
	return columnar.NewValidity(columnar.NewBitmap(raw, b.length))
}

var _ Builder = (*NullBuilder)(nil)
