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
	"strconv"
	"unicode/utf8"
)

// InvalidUTF8Error reports a byte sequence rejected by TryFromBytes.
type InvalidUTF8Error struct {
	// Offset is the index of the first invalid byte.
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return "flexstr: invalid UTF-8 sequence at byte offset " + strconv.Itoa(e.Offset)
}

// invalidUTF8Offset returns the index of the first invalid byte, or -1
// if b is valid UTF-8.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		i += n
	}
	return -1
}
