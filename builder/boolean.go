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
	"github.com/gocolumnar/columnar/bitutil"
	"github.com/gocolumnar/columnar/internal/debug"
	"github.com/gocolumnar/columnar/memory"
)

// A BooleanBuilder accumulates booleans into a bit-packed buffer and exposes
// the result as a Bitmap.
type BooleanBuilder struct {
	builder

	data    *memory.Buffer
	rawData []byte
}

// NewBooleanBuilder returns a builder, using the provided memory allocator.
func NewBooleanBuilder(mem memory.Allocator) *BooleanBuilder {
	return &BooleanBuilder{builder: builder{refCount: 1, mem: mem}}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *BooleanBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		if b.data != nil {
			b.data.Release()
			b.data = nil
			b.rawData = nil
		}
	}
}

// Append adds a valid value to the slice being built.
func (b *BooleanBuilder) Append(v bool) {
	b.Reserve(1)
	b.UnsafeAppend(v)
}

// AppendNull adds a new null value to the slice being built.
func (b *BooleanBuilder) AppendNull() {
	b.Reserve(1)
	b.UnsafeAppendBoolToBitmap(false)
}

// AppendNulls adds n null values to the slice being built.
func (b *BooleanBuilder) AppendNulls(n int) {
	for i := 0; i < n; i++ {
		b.AppendNull()
	}
}

// UnsafeAppend appends v without reserving space first. Callers must
// Reserve beforehand.
func (b *BooleanBuilder) UnsafeAppend(v bool) {
	bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	if v {
		bitutil.SetBit(b.rawData, b.length)
	} else {
		bitutil.ClearBit(b.rawData, b.length)
	}
	b.length++
}

// AppendValues will append the values in the v slice. The valid slice
// determines which values in v are valid (not null). The valid slice must
// either be empty or be equal in length to v. If empty, all values in v
// are appended and considered valid.
func (b *BooleanBuilder) AppendValues(v []bool, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}
	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	for i, vv := range v {
		bitutil.SetBitTo(b.rawData, b.length+i, vv)
	}
	b.builder.unsafeAppendBoolsToBitmap(valid, len(v))
}

// Value returns the i-th appended value, regardless of validity.
func (b *BooleanBuilder) Value(i int) bool {
	return bitutil.BitIsSet(b.rawData, i)
}

func (b *BooleanBuilder) init(capacity int) {
	b.builder.init(capacity)

	b.data = memory.NewResizableBuffer(b.mem)
	byteN := int(bitutil.BytesForBits(int64(capacity)))
	b.data.Resize(byteN)
	b.rawData = b.data.Bytes()
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *BooleanBuilder) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// Resize adjusts the space allocated by b to n elements. If n is greater
// than b.Cap(), additional memory will be allocated. If n is smaller, the
// allocated memory may be reduced.
func (b *BooleanBuilder) Resize(n int) {
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(n, b.init)
		b.data.Resize(int(bitutil.BytesForBits(int64(n))))
		b.rawData = b.data.Bytes()
	}
}

// ValuesSlice returns the appended values as a bit-packed Bitmap. The view
// aliases the builder's buffer and is only valid until the next modifying
// operation.
func (b *BooleanBuilder) ValuesSlice() columnar.Bitmap {
	n := int(bitutil.BytesForBits(int64(b.length)))
	return columnar.NewBitmap(b.rawData[:n], b.length)
}

// ValiditySlice returns the validity of the appended values. When no null
// has been appended it returns the buffer-less all-valid form.
func (b *BooleanBuilder) ValiditySlice() columnar.Validity {
	if b.nulls == 0 {
		return columnar.AllValid(b.length)
	}
	n := int(bitutil.BytesForBits(int64(b.length)))
	return columnar.NewValidity(columnar.NewBitmap(b.nullBitmap.Bytes()[:n], b.length))
}

// OptionSlice returns the appended values paired with their validity.
func (b *BooleanBuilder) OptionSlice() columnar.OptionSlice[columnar.Bitmap, columnar.Validity, bool] {
	return columnar.OptionSlice[columnar.Bitmap, columnar.Validity, bool]{
		Values:  b.ValuesSlice(),
		IsValid: b.ValiditySlice(),
	}
}

var _ ValueAppender[bool] = (*BooleanBuilder)(nil)
