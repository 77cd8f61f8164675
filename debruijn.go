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
	"errors"
	"fmt"
)

// DeBruijn64 is a 64-bit De Bruijn constant B(2, 6). Multiplying it by a
// word with a single set bit and keeping the top 6 bits of the product gives
// a distinct index for each of the 64 bit positions.
const DeBruijn64 uint64 = 0x03f79d71b4ca8b09

// DeBruijnShift is the right shift that keeps the top 6 bits of a product.
const DeBruijnShift = 58

// DeBruijn64Table maps the 6-bit index computed from DeBruijn64 to the
// 0-based bit position.
var DeBruijn64Table = [64]uint8{
	0, 1, 56, 2, 57, 49, 28, 3, 61, 58, 42, 50, 38, 29, 17, 4,
	62, 47, 59, 36, 45, 43, 51, 22, 53, 39, 33, 30, 24, 18, 12, 5,
	63, 55, 48, 27, 60, 41, 37, 16, 46, 35, 44, 21, 52, 32, 23, 11,
	54, 26, 40, 15, 34, 20, 31, 10, 25, 14, 19, 9, 13, 8, 7, 6,
}

// ErrNotDeBruijn means two bit positions share the same index,
// i.e., the constant is not a De Bruijn sequence.
var ErrNotDeBruijn = errors.New("bitindex: the constant is not a 64-bit De Bruijn sequence")

// ErrTableMismatch means the literal table disagrees with the derived one.
var ErrTableMismatch = errors.New("bitindex: De Bruijn lookup table mismatch")

// NewDeBruijnTable derives the lookup table of a 64-bit De Bruijn constant,
// by recording table[((1<<b)*magic)>>58] = b for every bit position b.
func NewDeBruijnTable(magic uint64) (*[64]uint8, error) {
	var table [64]uint8
	var seen uint64 // bit i is set once index i is assigned
	var idx uint64
	for b := 0; b < 64; b++ {
		idx = (uint64(1) << b) * magic >> DeBruijnShift
		if seen&(1<<idx) != 0 {
			return nil, ErrNotDeBruijn
		}
		seen |= 1 << idx
		table[idx] = uint8(b)
	}
	return &table, nil
}

// VerifyTable checks DeBruijn64Table against the table derived from DeBruijn64.
func VerifyTable() error {
	table, err := NewDeBruijnTable(DeBruijn64)
	if err != nil {
		return err
	}
	for i, b := range table {
		if DeBruijn64Table[i] != b {
			return fmt.Errorf("%w: index %d, expected %d, found %d",
				ErrTableMismatch, i, b, DeBruijn64Table[i])
		}
	}
	return nil
}
