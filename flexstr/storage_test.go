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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestLayoutInvariant(t *testing.T) {
	require.True(t, layoutValid())

	require.Equal(t, uintptr(variantSize), unsafe.Sizeof(borrowView{}))
	require.Equal(t, uintptr(variantSize), unsafe.Sizeof(inlineView{}))
	require.Equal(t, uintptr(variantSize), unsafe.Sizeof(heapView{}))
	require.Equal(t, uintptr(variantSize), unsafe.Sizeof(LocalStr{}))
	require.Equal(t, uintptr(variantSize), unsafe.Sizeof(SharedStr{}))
	require.Equal(t, uintptr(variantSize), unsafe.Sizeof(BoxedStr{}))

	// the tag must be readable from any view
	require.Equal(t, unsafe.Offsetof(borrowView{}.tag), unsafe.Offsetof(inlineView{}.tag))
	require.Equal(t, unsafe.Offsetof(heapView{}.tag), unsafe.Offsetof(inlineView{}.tag))

	if ptrSize == 8 {
		require.Equal(t, 22, MaxInline)
		require.Equal(t, 32, variantSize)
	}
}

func TestZeroValue(t *testing.T) {
	var f LocalStr
	require.True(t, f.IsStatic())
	require.True(t, f.IsEmpty())
	require.Equal(t, 0, f.Len())
	require.Equal(t, "", f.String())
	require.Nil(t, f.Bytes())
	f.Free() // no-op
	require.Equal(t, "", f.String())
}

func TestStorageTypeString(t *testing.T) {
	require.Equal(t, "static", storageStatic.String())
	require.Equal(t, "inline", storageInline.String())
	require.Equal(t, "heap", storageHeap.String())
	require.Equal(t, "borrow", storageBorrow.String())
	require.Equal(t, "unknown", storageType(9).String())
}
