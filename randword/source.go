// Copyright © 2023-2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package randword generates 64-bit words by concatenating 15-bit chunks
// drawn from a bounded, explicitly seeded pseudo-random source.
package randword

import (
	"fmt"
	"math/rand"
	"strings"
)

// Source is a seeded generator of non-negative 31-bit integers.
// *rand.Rand satisfies it.
type Source interface {
	Seed(seed int64)
	Int31() int32
}

// SourceKind names a Source implementation.
type SourceKind uint8

const (
	// SourceGlibc reproduces srand()/rand() of glibc.
	SourceGlibc SourceKind = iota
	// SourceGo uses math/rand.
	SourceGo
)

func (k SourceKind) String() string {
	switch k {
	case SourceGlibc:
		return "glibc"
	case SourceGo:
		return "go"
	}
	return fmt.Sprintf("SourceKind(%d)", k)
}

// ParseSourceKind returns the source kind of the given name.
func ParseSourceKind(name string) (SourceKind, error) {
	switch strings.ToLower(name) {
	case "glibc", "libc":
		return SourceGlibc, nil
	case "go", "math/rand":
		return SourceGo, nil
	}
	return 0, fmt.Errorf("randword: unknown source: %s", name)
}

// NewSource returns a seeded source of the given kind.
func NewSource(kind SourceKind, seed int64) Source {
	if kind == SourceGo {
		return NewGoSource(seed)
	}
	return NewGlibc(seed)
}

// NewGoSource returns a math/rand generator.
func NewGoSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
