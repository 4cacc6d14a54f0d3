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

/*
Package columnar provides strongly typed, zero-copy views over columnar
(Arrow-style) data layouts.

The package is built around two ideas:

  - Bitmap, a bit-packed read-only view over a byte buffer representing a
    sequence of booleans, such as an array's validity (null) buffer. Bitmaps
    track sub-byte alignment so they can be split at arbitrary positions
    without copying.

  - Slice, a generalized contract that lets composite columnar structures
    (optional values, lists, nested lists) be random-accessed, iterated and
    split with the same guarantees as a flat Go slice, again without
    copying.

All views borrow their backing buffers: they are cheap to copy, immutable,
and safe to read from any number of goroutines as long as no writer is
concurrently appending to the buffers being viewed.
*/
package columnar
