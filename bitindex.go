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

// Package bitindex computes the 1-based position of the lowest set bit of
// an uint64, i.e., the run length used to update a HyperLogLog register.
//
// All the functions require a non-zero word: the De Bruijn method would
// return a misleading 1 and the bit-shift method would never return,
// so both panic with ErrZeroWord instead.
package bitindex

import (
	"errors"

	"github.com/shenwei356/bitindex/tzcnt"
)

// ErrZeroWord means the input word has no set bit.
var ErrZeroWord = errors.New("bitindex: zero word has no set bit")

// RightmostIndexDeBruijn returns the 1-based position of the lowest set bit,
// in constant time, with a De Bruijn multiplication and a table lookup.
func RightmostIndexDeBruijn(w uint64) int {
	if w == 0 {
		panic(ErrZeroWord)
	}
	w &= -w // isolate the lowest set bit
	return int(DeBruijn64Table[w*DeBruijn64>>DeBruijnShift]) + 1
}

// RightmostIndexBitShift returns the 1-based position of the lowest set bit,
// by shifting a single-bit mask from the LSB until it hits a set bit.
// It takes up to 64 iterations.
func RightmostIndexBitShift(w uint64) int {
	if w == 0 {
		panic(ErrZeroWord)
	}
	var bit uint64 = 1
	count := 1 // the pattern "...0001" counts as 1
	for w&bit == 0 {
		count++
		bit <<= 1
	}
	return count
}

// RightmostIndexTzcnt returns the 1-based position of the lowest set bit,
// using the TZCNT instruction if the CPU supports it.
func RightmostIndexTzcnt(w uint64) int {
	if w == 0 {
		panic(ErrZeroWord)
	}
	return tzcnt.Tzcnt64(w) + 1
}
