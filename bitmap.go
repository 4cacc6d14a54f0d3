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
	"encoding/binary"
	"iter"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/zeebo/xxh3"

	"github.com/gocolumnar/columnar/bitutil"
	"github.com/gocolumnar/columnar/internal/debug"
)

// Bitmap is a bit-packed slice of booleans.
//
// It is logically equivalent to a []bool, but implemented over a bit-packed
// byte buffer using the LSB-first convention of Arrow-compatible columnar
// formats: bit i lives at byte i/8, bit position i%8. It is notably used to
// provide in-place access to the validity (null) buffer of columnar arrays.
//
// Splitting at positions that do not fall on a byte boundary is handled by
// header/trailer accounting: a Bitmap may ignore up to 7 leading bits of its
// first byte and up to 7 trailing bits of its last byte.
type Bitmap struct {
	// raw bitmap, possibly containing superfluous bits
	raw []byte

	// number of leading bits of raw[0] with no associated element, in 0..=7
	headerLen uint8

	// number of trailing bits of the last byte of raw with no associated
	// element, in 0..=7
	trailerLen uint8
}

// NewBitmap decodes a bit-packed buffer holding arrayLen booleans.
//
// The buffer must hold exactly BytesForBits(arrayLen) bytes, i.e.
// len(raw)*8 - arrayLen must be in [0,8). NewBitmap panics otherwise: the
// buffer/length pair always originates from trusted collaborator code, so a
// mismatch is a programming error rather than recoverable input.
func NewBitmap(raw []byte, arrayLen int) Bitmap {
	trailer := len(raw)*8 - arrayLen
	if trailer < 0 || trailer >= 8 {
		panic("bitmap and array length don't match")
	}
	return Bitmap{raw: raw, trailerLen: uint8(trailer)}
}

func (b Bitmap) IsConsistent() bool { return true }

func (b Bitmap) Len() int {
	return len(b.raw)*8 - int(b.headerLen) - int(b.trailerLen)
}

func (b Bitmap) IsEmpty() bool { return b.Len() == 0 }

// Value returns the index-th boolean without logical bounds checking.
// Callers must ensure i < Len().
func (b Bitmap) Value(i int) bool {
	return bitutil.BitIsSet(b.raw, i+int(b.headerLen))
}

func (b Bitmap) Get(i int) (bool, bool) {
	if i < 0 || i >= b.Len() {
		return false, false
	}
	return b.Value(i), true
}

func (b Bitmap) At(i int) bool { return sliceAt[Bitmap, bool](b, i) }

func (b Bitmap) First() (bool, bool) { return b.Get(0) }

func (b Bitmap) Last() (bool, bool) { return b.Get(b.Len() - 1) }

// Iterator walks the packed bits one at a time, starting at bit headerLen
// of the first byte and truncating to Len() elements so that header and
// trailer bits never surface.
func (b Bitmap) Iterator() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		rdr := bitutil.NewBitmapReader(b.raw, int(b.headerLen), b.Len())
		for i := 0; i < rdr.Len(); i++ {
			if !yield(rdr.Set()) {
				return
			}
			rdr.Next()
		}
	}
}

// SplitAt splits the bitmap into [0,mid) and [mid,Len()) without copying.
//
// When mid does not fall on a byte boundary the two halves share one
// boundary byte; each half masks out the other's bits through its
// header/trailer accounting.
func (b Bitmap) SplitAt(mid int) (Bitmap, Bitmap) {
	if mid < 0 || mid > b.Len() {
		panic(splitOutOfBounds)
	}

	midBit := mid + int(b.headerLen)
	numHeadBytes := (midBit + 7) / 8
	head := Bitmap{
		raw:        b.raw[:numHeadBytes],
		headerLen:  b.headerLen,
		trailerLen: uint8(numHeadBytes*8 - midBit),
	}
	debug.Assert(head.Len() == mid, "bitmap head has wrong length")

	firstTailByte := midBit / 8
	var headerLen uint8
	if midBit%8 != 0 {
		headerLen = 8 - head.trailerLen
	}
	tail := Bitmap{
		raw:        b.raw[firstTailByte:],
		headerLen:  headerLen,
		trailerLen: b.trailerLen,
	}
	debug.Assert(tail.Len() == b.Len()-mid, "bitmap tail has wrong length")

	return head, tail
}

// CountSet returns the number of true elements.
func (b Bitmap) CountSet() int {
	if b.Len() == 0 {
		return 0
	}
	return bitutil.CountSetBits(b.raw, int(b.headerLen), b.Len())
}

// Equal reports element-wise equality: two bitmaps with different byte
// alignments are equal as long as their iterated booleans match.
func (b Bitmap) Equal(other Bitmap) bool {
	return Equal[Bitmap, Bitmap, bool](b, other)
}

// Compare orders two bitmaps lexicographically over their booleans, with
// false ordered before true.
func (b Bitmap) Compare(other Bitmap) int {
	next, stop := iter.Pull(other.Iterator())
	defer stop()
	for va := range b.Iterator() {
		vb, ok := next()
		if !ok {
			return +1
		}
		if va != vb {
			if vb {
				return -1
			}
			return +1
		}
	}
	if _, ok := next(); ok {
		return -1
	}
	return 0
}

// Hash returns a seeded xxh3 digest of the logical length followed by the
// elements, normalized so that equal sequences hash equal regardless of
// their byte alignment, and bitmaps of different lengths never collide
// trivially.
func (b Bitmap) Hash(seed uint64) uint64 {
	h := xxh3.NewSeed(seed)

	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(b.Len()))
	h.Write(scratch[:])

	var packed byte
	var nbits uint
	for v := range b.Iterator() {
		if v {
			packed |= 1 << nbits
		}
		nbits++
		if nbits == 8 {
			h.Write([]byte{packed})
			packed, nbits = 0, 0
		}
	}
	if nbits > 0 {
		h.Write([]byte{packed})
	}
	return h.Sum64()
}

func (b Bitmap) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	i := 0
	for v := range b.Iterator() {
		if i > 0 {
			o.WriteString(" ")
		}
		o.WriteString(strconv.FormatBool(v))
		i++
	}
	o.WriteString("]")
	return o.String()
}

func (b Bitmap) MarshalJSON() ([]byte, error) {
	return json.Marshal(Collect[Bitmap, bool](b))
}

var _ Slice[Bitmap, bool] = Bitmap{}
