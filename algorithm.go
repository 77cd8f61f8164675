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

package bitindex

import (
	"fmt"
	"strings"
)

// Algorithm identifies a method for computing the lowest set bit index.
type Algorithm uint8

const (
	DeBruijn Algorithm = iota // multiply and lookup
	BitShift                  // linear scan from the LSB
	Tzcnt                     // hardware trailing zero count
)

// Algorithms lists all the supported algorithms.
var Algorithms = []Algorithm{DeBruijn, BitShift, Tzcnt}

var algorithmNames = [...]string{"debruijn", "bitshift", "tzcnt"}

var algorithmFuncs = [...]func(uint64) int{
	RightmostIndexDeBruijn,
	RightmostIndexBitShift,
	RightmostIndexTzcnt,
}

func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", a)
}

// Func returns the function of the algorithm.
// It panics for an unknown algorithm.
func (a Algorithm) Func() func(uint64) int {
	return algorithmFuncs[a]
}

// ParseAlgorithm returns the algorithm of the given name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "debruijn", "multiply":
		return DeBruijn, nil
	case "bitshift", "linear-scan":
		return BitShift, nil
	case "tzcnt":
		return Tzcnt, nil
	}
	return 0, fmt.Errorf("bitindex: unknown algorithm: %s", name)
}
