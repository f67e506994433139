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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryEncodeBoundary(t *testing.T) {
	var v inlineView

	fits := strings.Repeat("a", MaxInline)
	require.True(t, tryEncode(&v, fits))
	require.Equal(t, fits, v.str())
	require.Equal(t, MaxInline, len(v.bytes()))

	// one byte over never inlines and must leave v untouched
	before := v
	require.False(t, tryEncode(&v, fits+"a"))
	require.Equal(t, before, v)
}

func TestTryAppend(t *testing.T) {
	var v inlineView
	require.True(t, tryEncode(&v, strings.Repeat("x", MaxInline-2)))

	require.True(t, v.tryAppend("yz"))
	require.Equal(t, strings.Repeat("x", MaxInline-2)+"yz", v.str())

	// full buffer: any further append fails and changes nothing
	before := v
	require.False(t, v.tryAppend("a"))
	require.Equal(t, before, v)

	// empty append always succeeds
	require.True(t, v.tryAppend(""))
	require.Equal(t, before, v)
}

func TestInlineStaleTailNotRead(t *testing.T) {
	f := NewLocal("abc")
	require.True(t, f.IsInline())

	// poison the bytes past the recorded length; decode must not see them
	v := f.asInline()
	for i := 3; i < MaxInline; i++ {
		v.data[i] = 0xAA
	}
	require.Equal(t, "abc", f.String())
	require.Equal(t, []byte("abc"), f.Bytes())
	require.Equal(t, 3, f.Len())

	c := f.Clone()
	require.Equal(t, "abc", c.String())
}
