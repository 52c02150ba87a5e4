// Copyright 2025 cons0leweb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package renamer

import (
	"math/rand"
	"time"
)

// tokenLength is the width of a {r} expansion.
const tokenLength = 4

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ⏰ Clock abstracts time retrieval so template expansion is deterministic
// in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// 🎲 TokenSource abstracts random token generation so template expansion is
// deterministic in tests.
type TokenSource interface {
	Token(length int) string
}

// RandomTokens produces random alphanumeric tokens.
type RandomTokens struct{}

func (RandomTokens) Token(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}

// FixedTokens always returns the same token, truncated or repeated to the
// requested length. Intended for tests and previews.
type FixedTokens struct {
	Value string
}

func (f FixedTokens) Token(length int) string {
	if f.Value == "" {
		return ""
	}
	out := f.Value
	for len(out) < length {
		out += f.Value
	}
	return out[:length]
}
