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

	"golang.org/x/exp/constraints"

	"github.com/gocolumnar/columnar"
	"github.com/gocolumnar/columnar/bitutil"
	"github.com/gocolumnar/columnar/internal/debug"
	"github.com/gocolumnar/columnar/memory"
)

// Number is the set of fixed-width numeric element types.
type Number interface {
	constraints.Integer | constraints.Float
}

// A PrimitiveBuilder accumulates fixed-width numeric values into a flat
// buffer and exposes the result as a Flat slice.
type PrimitiveBuilder[T Number] struct {
	builder

	data *numericBufferBuilder[T]
}

// NewPrimitiveBuilder returns a builder, using the provided memory allocator.
func NewPrimitiveBuilder[T Number](mem memory.Allocator) *PrimitiveBuilder[T] {
	return &PrimitiveBuilder[T]{
		builder: builder{refCount: 1, mem: mem},
		data:    newNumericBufferBuilder[T](mem),
	}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *PrimitiveBuilder[T]) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		if b.data != nil {
			b.data.Release()
			b.data = nil
		}
	}
}

// Append adds a valid value to the slice being built.
func (b *PrimitiveBuilder[T]) Append(v T) {
	b.Reserve(1)
	b.UnsafeAppend(v)
}

// AppendNull adds a new null value to the slice being built. The value
// buffer still receives a zero placeholder so that indices stay aligned.
func (b *PrimitiveBuilder[T]) AppendNull() {
	b.Reserve(1)
	var zero T
	b.data.AppendValue(zero)
	b.UnsafeAppendBoolToBitmap(false)
}

// AppendNulls adds n null values to the slice being built.
func (b *PrimitiveBuilder[T]) AppendNulls(n int) {
	for i := 0; i < n; i++ {
		b.AppendNull()
	}
}

// UnsafeAppend appends v without reserving space first. Callers must
// Reserve beforehand.
func (b *PrimitiveBuilder[T]) UnsafeAppend(v T) {
	b.data.AppendValue(v)
	b.UnsafeAppendBoolToBitmap(true)
}

// AppendValues will append the values in the v slice. The valid slice
// determines which values in v are valid (not null). The valid slice must
// either be empty or be equal in length to v. If empty, all values in v
// are appended and considered valid.
func (b *PrimitiveBuilder[T]) AppendValues(v []T, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}
	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	b.data.AppendValues(v)
	b.builder.unsafeAppendBoolsToBitmap(valid, len(v))
}

// Value returns the i-th appended value, regardless of validity.
func (b *PrimitiveBuilder[T]) Value(i int) T { return b.data.Value(i) }

func (b *PrimitiveBuilder[T]) init(capacity int) {
	b.builder.init(capacity)
	b.data.resize(capacity * sizeOf[T]())
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *PrimitiveBuilder[T]) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// Resize adjusts the space allocated by b to n elements. If n is greater
// than b.Cap(), additional memory will be allocated. If n is smaller, the
// allocated memory may be reduced.
func (b *PrimitiveBuilder[T]) Resize(n int) {
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(n, b.init)
		b.data.resize(n * sizeOf[T]())
	}
}

// ValuesSlice returns the appended values as a Flat slice. The view aliases
// the builder's buffer and is only valid until the next modifying operation.
func (b *PrimitiveBuilder[T]) ValuesSlice() columnar.Flat[T] {
	return columnar.Flat[T](b.data.Values())
}

// ValiditySlice returns the validity of the appended values. When no null
// has been appended it returns the buffer-less all-valid form.
func (b *PrimitiveBuilder[T]) ValiditySlice() columnar.Validity {
	if b.nulls == 0 {
		return columnar.AllValid(b.length)
	}
	n := int(bitutil.BytesForBits(int64(b.length)))
	return columnar.NewValidity(columnar.NewBitmap(b.nullBitmap.Bytes()[:n], b.length))
}

// OptionSlice returns the appended values paired with their validity.
func (b *PrimitiveBuilder[T]) OptionSlice() columnar.OptionSlice[columnar.Flat[T], columnar.Validity, T] {
	return columnar.OptionSlice[columnar.Flat[T], columnar.Validity, T]{
		Values:  b.ValuesSlice(),
		IsValid: b.ValiditySlice(),
	}
}

var _ ValueAppender[int64] = (*PrimitiveBuilder[int64])(nil)
