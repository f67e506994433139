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
	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/nu11ptr/flexstr-sub000/internal/hack"
)

// bufferSize is the capacity of the regular tier.
const bufferSize = 1024

const errBuilderConsumed = "flexstr: builder used after Finalize"

type builderTier uint8

const (
	tierSmall builderTier = iota
	tierRegular
	tierLarge
	tierDone
)

// Builder assembles a FlexStr from written fragments while keeping
// allocations off the common path. Content grows through three tiers:
// a small buffer matching the inline capacity, a regular fixed buffer,
// and finally an mcache-backed growable buffer. Promotion is
// one-directional and preserves all bytes written so far.
//
// A Builder is a transient, exclusively-owned scratchpad: it must not
// be shared between goroutines and is consumed exactly once by
// Finalize. Writes never fail; the error results exist only to satisfy
// io.Writer and friends.
type Builder[C any, PC RefCount[C]] struct {
	tier    builderTier
	n       int
	small   [MaxInline]byte
	regular [bufferSize]byte
	large   []byte // mcache-backed; len(large) == n while in tierLarge
}

// NewBuilder returns an empty Builder starting in the small tier.
func NewBuilder[C any, PC RefCount[C]]() *Builder[C, PC] {
	return &Builder[C, PC]{}
}

// WithCapacity returns an empty Builder started directly in the
// cheapest tier able to hold hint bytes, skipping tiers already known
// to be too small.
func WithCapacity[C any, PC RefCount[C]](hint int) *Builder[C, PC] {
	b := &Builder[C, PC]{}
	switch {
	case hint <= MaxInline:
	case hint <= bufferSize:
		b.tier = tierRegular
	default:
		b.tier = tierLarge
		b.large = mcache.Malloc(0, hint)
	}
	return b
}

// Len returns the number of bytes written so far.
func (b *Builder[C, PC]) Len() int { return b.n }

// grow promotes b until the current tier can take need more bytes. The
// large tier always succeeds, so writes are infallible.
func (b *Builder[C, PC]) grow(need int) {
	total := b.n + need
	switch b.tier {
	case tierSmall:
		if total <= MaxInline {
			return
		}
		if total <= bufferSize {
			copy(b.regular[:b.n], b.small[:b.n])
			b.tier = tierRegular
			return
		}
		b.large = mcache.Malloc(0, 2*total)
		b.large = append(b.large, b.small[:b.n]...)
		b.tier = tierLarge
	case tierRegular:
		if total <= bufferSize {
			return
		}
		b.large = mcache.Malloc(0, 2*total)
		b.large = append(b.large, b.regular[:b.n]...)
		b.tier = tierLarge
	case tierLarge:
		if total <= cap(b.large) {
			return
		}
		old := b.large
		b.large = mcache.Malloc(0, 2*total)
		b.large = append(b.large, old...)
		mcache.Free(old)
	default:
		panic(errBuilderConsumed)
	}
}

// WriteString appends s. The returned error is always nil.
func (b *Builder[C, PC]) WriteString(s string) (int, error) {
	b.grow(len(s))
	switch b.tier {
	case tierSmall:
		copy(b.small[b.n:], s)
	case tierRegular:
		copy(b.regular[b.n:], s)
	default:
		b.large = append(b.large, s...)
	}
	b.n += len(s)
	return len(s), nil
}

// Write appends p. The returned error is always nil.
func (b *Builder[C, PC]) Write(p []byte) (int, error) {
	return b.WriteString(hack.ByteSliceToString(p))
}

// WriteByte appends a single byte. The returned error is always nil.
func (b *Builder[C, PC]) WriteByte(c byte) error {
	b.grow(1)
	switch b.tier {
	case tierSmall:
		b.small[b.n] = c
	case tierRegular:
		b.regular[b.n] = c
	default:
		b.large = append(b.large, c)
	}
	b.n++
	return nil
}

// Finalize consumes the builder into the cheapest variant that fits:
// small-tier content becomes Inline, regular and large tier content
// becomes Heap (the large tier hands its buffer over without copying).
// The builder must not be used afterwards; further writes panic.
func (b *Builder[C, PC]) Finalize() FlexStr[C, PC] {
	if b.tier == tierDone {
		panic(errBuilderConsumed)
	}
	if b.n == 0 {
		if b.large != nil {
			mcache.Free(b.large)
			b.large = nil
		}
		b.tier = tierDone
		return FlexStr[C, PC]{}
	}
	var f FlexStr[C, PC]
	switch b.tier {
	case tierSmall:
		v := f.asInline()
		v.tag = storageInline
		v.size = uint8(b.n)
		copy(v.data[:b.n], b.small[:b.n])
	case tierRegular:
		buf := mcache.Malloc(b.n)
		copy(buf, b.regular[:b.n])
		f = fromHeapPtr[C, PC](newHeapStr[C, PC](buf, true))
	case tierLarge:
		buf := b.large
		b.large = nil
		f = fromHeapPtr[C, PC](newHeapStr[C, PC](buf, true))
	}
	b.tier = tierDone
	return f
}
