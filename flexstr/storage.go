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

import "unsafe"

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

const (
	// variantSize is the footprint shared by every storage variant:
	// four machine words (32 bytes on 64-bit targets).
	variantSize = 4 * ptrSize

	// MaxInline is the inline capacity: the variant footprint minus the
	// pointer word, the length byte and the tag byte. 22 bytes on 64-bit
	// targets, 10 on 32-bit.
	MaxInline = variantSize - ptrSize - 2
)

// storageType discriminates the active physical form of a FlexStr.
// It is stored at the same offset in every variant layout, so it can be
// read before knowing which variant is active.
type storageType uint8

const (
	// storageStatic must be zero so that the zero FlexStr is the
	// canonical static empty string.
	storageStatic storageType = iota
	storageInline
	storageHeap
	storageBorrow
)

func (t storageType) String() string {
	switch t {
	case storageStatic:
		return "static"
	case storageInline:
		return "inline"
	case storageHeap:
		return "heap"
	case storageBorrow:
		return "borrow"
	}
	return "unknown"
}

// The three layouts below are overlaid views of the same variantSize
// bytes. Word 0 is pointer-typed in all of them so the GC always sees
// the payload pointer, whichever variant is active; everything after it
// is plain bytes. Only the view matching the current tag may be read,
// except for `tag` itself which sits at the same offset everywhere.

// borrowView is the layout of the Static and Borrow variants: a nocopy
// reference to string data owned elsewhere.
type borrowView struct {
	ptr  unsafe.Pointer // string data, nil iff len == 0
	len  uintptr
	pad  [MaxInline - ptrSize]byte
	size uint8
	tag  storageType
}

// inlineView is the layout of the Inline variant: content stored by
// value inside the FlexStr itself. data[size:] is stale and must never
// be read.
type inlineView struct {
	ptr  unsafe.Pointer // always nil, keeps the GC word well-typed
	data [MaxInline]byte
	size uint8
	tag  storageType
}

// heapView is the layout of the Heap variant: a refcounted payload.
type heapView struct {
	ptr  unsafe.Pointer // *heapStr
	pad  [MaxInline]byte
	size uint8
	tag  storageType
}

// Compile-time proof that all variant layouts occupy variantSize bytes.
var (
	_ [variantSize]byte = [unsafe.Sizeof(borrowView{})]byte{}
	_ [variantSize]byte = [unsafe.Sizeof(inlineView{})]byte{}
	_ [variantSize]byte = [unsafe.Sizeof(heapView{})]byte{}
)

const errBadLayout = "flexstr: storage variant layouts differ in size, alignment or tag offset"

func init() {
	if !layoutValid() {
		panic(errBadLayout)
	}
}

// layoutValid verifies the overlay contract once, before any value can
// be constructed. A mismatch is a configuration error, never a runtime
// data error, so failure aborts the process.
func layoutValid() bool {
	return unsafe.Sizeof(borrowView{}) == unsafe.Sizeof(inlineView{}) &&
		unsafe.Sizeof(heapView{}) == unsafe.Sizeof(inlineView{}) &&
		unsafe.Alignof(borrowView{}) == unsafe.Alignof(inlineView{}) &&
		unsafe.Alignof(heapView{}) == unsafe.Alignof(inlineView{}) &&
		unsafe.Offsetof(borrowView{}.tag) == unsafe.Offsetof(inlineView{}.tag) &&
		unsafe.Offsetof(heapView{}.tag) == unsafe.Offsetof(inlineView{}.tag) &&
		unsafe.Offsetof(borrowView{}.size) == unsafe.Offsetof(inlineView{}.size) &&
		unsafe.Offsetof(heapView{}.size) == unsafe.Offsetof(inlineView{}.size) &&
		unsafe.Sizeof(LocalStr{}) == unsafe.Sizeof(inlineView{}) &&
		unsafe.Sizeof(SharedStr{}) == unsafe.Sizeof(inlineView{}) &&
		unsafe.Sizeof(BoxedStr{}) == unsafe.Sizeof(inlineView{}) &&
		unsafe.Alignof(LocalStr{}) == unsafe.Alignof(inlineView{})
}

// set stores a nocopy string reference, used by both the Static and
// Borrow constructors. The tag is written before any other field.
func (v *borrowView) set(tag storageType, s string) {
	v.tag = tag
	v.len = uintptr(len(s))
	if len(s) > 0 {
		v.ptr = unsafe.Pointer(unsafe.StringData(s))
	}
}

func (v *borrowView) str() string {
	if v.len == 0 {
		return ""
	}
	return unsafe.String((*byte)(v.ptr), int(v.len))
}

func (v *borrowView) bytes() []byte {
	if v.len == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(v.ptr), int(v.len))
}
