// Copyright 2025 flexstr Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flexstr

import "github.com/nu11ptr/flexstr-sub000/internal/hack"

// tryEncode stores s into v if it fits the inline capacity.
// It reports false without touching v when s is too long, so the caller
// can fall back to heap storage with the input unchanged.
func tryEncode(v *inlineView, s string) bool {
	if len(s) > MaxInline {
		return false
	}
	v.tag = storageInline
	v.size = uint8(len(s))
	copy(v.data[:len(s)], s)
	return true
}

// bytes returns the encoded content bounded by the stored length.
// data[size:] may hold stale bytes and is never exposed.
func (v *inlineView) bytes() []byte {
	return v.data[:v.size]
}

func (v *inlineView) str() string {
	return hack.ByteSliceToString(v.data[:v.size])
}

// tryAppend extends the encoded content in place when the result still
// fits, keeping small concatenations allocation-free. It reports false
// without touching v otherwise.
func (v *inlineView) tryAppend(s string) bool {
	if int(v.size)+len(s) > MaxInline {
		return false
	}
	copy(v.data[v.size:], s)
	v.size += uint8(len(s))
	return true
}
