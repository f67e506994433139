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

import (
	"sync/atomic"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/nu11ptr/flexstr-sub000/internal/hack"
)

// RefCount is the sharing discipline for heap-backed payloads. The
// storage variant code is written once against this contract and
// instantiated per kind; see Local, Shared and Boxed.
type RefCount[C any] interface {
	*C
	init()
	// retain reports whether the payload may be shared. A false return
	// means the caller must deep-copy instead.
	retain() bool
	// release reports whether this was the last reference.
	release() bool
}

// Local is the non-atomic refcount kind. Values instantiated with it
// are cheap to clone but must stay on a single goroutine: cloning from
// two goroutines concurrently is a data race.
type Local struct{ refs int32 }

func (c *Local) init()         { c.refs = 1 }
func (c *Local) retain() bool  { c.refs++; return true }
func (c *Local) release() bool { c.refs--; return c.refs == 0 }

// Shared is the atomic refcount kind. Values instantiated with it may
// be cloned and freed from any goroutine without locking.
type Shared struct{ refs atomic.Int32 }

func (c *Shared) init()         { c.refs.Store(1) }
func (c *Shared) retain() bool  { c.refs.Add(1); return true }
func (c *Shared) release() bool { return c.refs.Add(-1) == 0 }

// Boxed is the exclusive-ownership kind: payloads are never shared, so
// cloning deep-copies the content.
type Boxed struct{}

func (*Boxed) init()         {}
func (*Boxed) retain() bool  { return false }
func (*Boxed) release() bool { return true }

// heapStr is the heap payload behind the Heap variant: the content
// bytes plus the refcount governing them.
type heapStr[C any] struct {
	buf []byte
	// pooled marks buf as mcache-backed; the final release returns it
	// to the pool. Caller-owned buffers are left to the GC.
	pooled bool
	rc     C
}

func newHeapStr[C any, PC RefCount[C]](buf []byte, pooled bool) *heapStr[C] {
	h := &heapStr[C]{buf: buf, pooled: pooled}
	PC(&h.rc).init()
	return h
}

// heapFromRef copies s into a pooled buffer and wraps it.
func heapFromRef[C any, PC RefCount[C]](s string) *heapStr[C] {
	buf := mcache.Malloc(len(s))
	copy(buf, s)
	return newHeapStr[C, PC](buf, true)
}

// retainHeap acquires another reference to h, or a deep copy for kinds
// that do not share.
func retainHeap[C any, PC RefCount[C]](h *heapStr[C]) *heapStr[C] {
	if PC(&h.rc).retain() {
		return h
	}
	buf := dirtmake.Bytes(len(h.buf), len(h.buf))
	copy(buf, h.buf)
	return newHeapStr[C, PC](buf, false)
}

// releaseHeap drops one reference; the last one returns pooled buffers
// to mcache. h.buf must not be used after the final release.
func releaseHeap[C any, PC RefCount[C]](h *heapStr[C]) {
	if PC(&h.rc).release() {
		buf := h.buf
		h.buf = nil
		if h.pooled {
			mcache.Free(buf)
		}
	}
}

func (h *heapStr[C]) str() string {
	return hack.ByteSliceToString(h.buf)
}
