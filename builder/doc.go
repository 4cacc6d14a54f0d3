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

// Package builder provides incremental construction of columnar slices.
//
// Builders accumulate values into allocator-backed buffers and expose the
// accumulated data as zero-copy read views (Bitmap, Flat, Validity,
// OffsetSublists and their option/list compositions). Unlike the read views,
// which trust their inputs, builders sit at the boundary where external data
// enters columnar form: the batch append entry points validate consistency
// up front and report violations as errors, leaving the builder untouched on
// failure.
package builder
