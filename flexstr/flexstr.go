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

// Package flexstr provides a compact, clone-cheap, immutable string
// representation that transparently stores its content in one of four
// physical forms behind a single logical type: a program-lifetime
// string (Static), a small buffer inside the value itself (Inline), a
// refcounted pooled allocation (Heap), or a caller-owned string
// (Borrow). Every variant occupies the same fixed footprint, so values
// embed and copy like plain structs regardless of content length.
//
// Thread-safety is parametric on the refcount kind: LocalStr must stay
// on one goroutine, SharedStr may be cloned and freed from any
// goroutine, BoxedStr never shares and deep-copies on Clone.
package flexstr

import (
	"unsafe"

	"github.com/bytedance/gopkg/util/xxhash3"

	"github.com/nu11ptr/flexstr-sub000/internal/hack"
)

// FlexStr is the tagged overlay of the four storage variants. The zero
// value is the empty string in Static form and is ready to use.
//
// Values are logically immutable: operations like Concat construct new
// values. A plain struct copy of a Heap-backed value does not acquire a
// reference; use Clone when the copy will be freed independently.
type FlexStr[C any, PC RefCount[C]] struct {
	ptr  unsafe.Pointer
	data [MaxInline]byte
	size uint8
	tag  storageType
}

// LocalStr is a FlexStr with a non-atomic refcount; single-goroutine.
type LocalStr = FlexStr[Local, *Local]

// SharedStr is a FlexStr with an atomic refcount; safe to clone and
// free across goroutines.
type SharedStr = FlexStr[Shared, *Shared]

// BoxedStr is a FlexStr whose heap storage is exclusively owned; Clone
// deep-copies heap content.
type BoxedStr = FlexStr[Boxed, *Boxed]

// view accessors; only the one matching the current tag may be used,
// except that all views agree on the tag and size offsets.

func (f *FlexStr[C, PC]) asBorrow() *borrowView { return (*borrowView)(unsafe.Pointer(f)) }
func (f *FlexStr[C, PC]) asInline() *inlineView { return (*inlineView)(unsafe.Pointer(f)) }
func (f *FlexStr[C, PC]) heap() *heapStr[C]     { return (*heapStr[C])(f.ptr) }

// FromStatic wraps a string with program lifetime, typically a literal,
// without copying. The caller guarantees s outlives every clone.
func FromStatic[C any, PC RefCount[C]](s string) FlexStr[C, PC] {
	var f FlexStr[C, PC]
	f.asBorrow().set(storageStatic, s)
	return f
}

// FromBorrow wraps a caller-owned string without copying. Unlike
// FromStatic it makes no lifetime claim beyond what the GC provides;
// the variant exists so callers can distinguish borrowed content from
// literals.
func FromBorrow[C any, PC RefCount[C]](s string) FlexStr[C, PC] {
	var f FlexStr[C, PC]
	f.asBorrow().set(storageBorrow, s)
	return f
}

// TryInline encodes s into the inline form. It reports false when s
// exceeds MaxInline bytes, leaving the caller to pick other storage.
func TryInline[C any, PC RefCount[C]](s string) (FlexStr[C, PC], bool) {
	var f FlexStr[C, PC]
	if !tryEncode(f.asInline(), s) {
		return FlexStr[C, PC]{}, false
	}
	return f, true
}

// FromRef copies s into the cheapest storage that fits: the canonical
// static empty value for empty input, inline for anything up to
// MaxInline bytes, and a refcounted heap allocation beyond that. The
// boundary is exact: len == MaxInline inlines, len == MaxInline+1
// heap-allocates.
func FromRef[C any, PC RefCount[C]](s string) FlexStr[C, PC] {
	if len(s) == 0 {
		return FlexStr[C, PC]{}
	}
	if f, ok := TryInline[C, PC](s); ok {
		return f
	}
	return fromHeapPtr[C, PC](heapFromRef[C, PC](s))
}

// FromOwnedBytes takes ownership of buf as heap storage without
// copying. buf must not be modified afterwards. Used when the caller
// already holds an allocation and a FromRef copy would be redundant.
func FromOwnedBytes[C any, PC RefCount[C]](buf []byte) FlexStr[C, PC] {
	if len(buf) == 0 {
		return FlexStr[C, PC]{}
	}
	return fromHeapPtr[C, PC](newHeapStr[C, PC](buf, false))
}

// TryFromBytes validates b as UTF-8 and copies it into the cheapest
// fitting storage. On failure it returns an *InvalidUTF8Error locating
// the first offending byte.
func TryFromBytes[C any, PC RefCount[C]](b []byte) (FlexStr[C, PC], error) {
	if off := invalidUTF8Offset(b); off >= 0 {
		return FlexStr[C, PC]{}, &InvalidUTF8Error{Offset: off}
	}
	return FromRef[C, PC](hack.ByteSliceToString(b)), nil
}

func fromHeapPtr[C any, PC RefCount[C]](h *heapStr[C]) FlexStr[C, PC] {
	var f FlexStr[C, PC]
	f.tag = storageHeap
	f.ptr = unsafe.Pointer(h)
	return f
}

// NewLocal builds a LocalStr from s via FromRef.
func NewLocal(s string) LocalStr { return FromRef[Local, *Local](s) }

// NewShared builds a SharedStr from s via FromRef.
func NewShared(s string) SharedStr { return FromRef[Shared, *Shared](s) }

// NewBoxed builds a BoxedStr from s via FromRef.
func NewBoxed(s string) BoxedStr { return FromRef[Boxed, *Boxed](s) }

// Clone returns a value equal to f. Static, Inline and Borrow variants
// are plain fixed-cost copies; the Heap variant acquires a reference
// and rebuilds the variant directly from the retained payload, which
// avoids the slower copy-then-redispatch path.
func (f *FlexStr[C, PC]) Clone() FlexStr[C, PC] {
	if f.tag == storageHeap {
		return fromHeapPtr[C, PC](retainHeap[C, PC](f.heap()))
	}
	return *f
}

// Free releases heap storage; all other variants are no-ops. Freeing is
// optional: an unfreed value is reclaimed by the GC, the pool just
// misses a reuse. f is reset to the empty value, so a second Free is
// harmless, but content obtained from f before the last release of a
// payload must no longer be used.
func (f *FlexStr[C, PC]) Free() {
	if f.tag == storageHeap {
		releaseHeap[C, PC](f.heap())
	}
	*f = FlexStr[C, PC]{}
}

// Len returns the content length in bytes.
func (f *FlexStr[C, PC]) Len() int {
	switch f.tag {
	case storageInline:
		return int(f.size)
	case storageHeap:
		return len(f.heap().buf)
	default:
		return int(f.asBorrow().len)
	}
}

// IsEmpty reports whether the content has zero length.
func (f *FlexStr[C, PC]) IsEmpty() bool { return f.Len() == 0 }

// IsStatic reports whether the Static variant is active.
func (f *FlexStr[C, PC]) IsStatic() bool { return f.tag == storageStatic }

// IsInline reports whether the Inline variant is active.
func (f *FlexStr[C, PC]) IsInline() bool { return f.tag == storageInline }

// IsHeap reports whether the Heap variant is active.
func (f *FlexStr[C, PC]) IsHeap() bool { return f.tag == storageHeap }

// IsBorrow reports whether the Borrow variant is active.
func (f *FlexStr[C, PC]) IsBorrow() bool { return f.tag == storageBorrow }

// String returns the logical content without copying. For Heap-backed
// values the result is valid only until the payload's last reference is
// freed.
func (f *FlexStr[C, PC]) String() string {
	switch f.tag {
	case storageInline:
		return f.asInline().str()
	case storageHeap:
		return f.heap().str()
	default:
		return f.asBorrow().str()
	}
}

// Bytes returns the content as a nocopy byte slice. The result must be
// treated as read-only and follows the same lifetime rule as String.
func (f *FlexStr[C, PC]) Bytes() []byte {
	switch f.tag {
	case storageInline:
		return f.asInline().bytes()
	case storageHeap:
		return f.heap().buf
	default:
		return f.asBorrow().bytes()
	}
}

// Concat returns a new value holding f's content followed by s. When f
// is inline and the result still fits, the append happens in the
// returned copy's inline buffer with no allocation; otherwise the
// result is assembled through a capacity-hinted Builder.
func (f *FlexStr[C, PC]) Concat(s string) FlexStr[C, PC] {
	if len(s) == 0 {
		return f.Clone()
	}
	if f.tag == storageInline {
		out := *f
		if out.asInline().tryAppend(s) {
			return out
		}
	}
	b := WithCapacity[C, PC](f.Len() + len(s))
	b.WriteString(f.String())
	b.WriteString(s)
	return b.Finalize()
}

// Repeat returns f's content repeated n times. n <= 0 yields the empty
// value.
func (f *FlexStr[C, PC]) Repeat(n int) FlexStr[C, PC] {
	switch {
	case n <= 0 || f.Len() == 0:
		return FlexStr[C, PC]{}
	case n == 1:
		return f.Clone()
	}
	s := f.String()
	b := WithCapacity[C, PC](len(s) * n)
	for i := 0; i < n; i++ {
		b.WriteString(s)
	}
	return b.Finalize()
}

// Hash returns a content hash independent of the active variant.
//
// DO NOT STORE the return value, it is not stable across processes.
func (f *FlexStr[C, PC]) Hash() uint64 {
	return xxhash3.HashString(f.String())
}
