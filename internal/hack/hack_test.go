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

package hack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteSliceToString(t *testing.T) {
	b := []byte("hello")
	s := ByteSliceToString(b)
	require.Equal(t, "hello", s)
	require.Same(t, &b[0], &StringToByteSlice(s)[0])

	require.Equal(t, "", ByteSliceToString(nil))
}

func TestStringToByteSlice(t *testing.T) {
	s := "world"
	b := StringToByteSlice(s)
	require.Equal(t, []byte("world"), b)
	require.Equal(t, len(s), len(b))

	require.Empty(t, StringToByteSlice(""))
}
