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

package randword

const int32max = 1<<31 - 1

// EffectiveSeed returns the seed a source of the given kind actually uses.
// Different seeds with the same effective seed produce the same sequence:
// glibc keeps the low 32 bits and treats 0 as 1, math/rand reduces the seed
// modulo 2^31-1 and replaces 0 with 89482311.
func EffectiveSeed(kind SourceKind, seed int64) int64 {
	if kind == SourceGo {
		seed %= int32max
		if seed < 0 {
			seed += int32max
		}
		if seed == 0 {
			seed = 89482311
		}
		return seed
	}

	s := uint32(seed)
	if s == 0 {
		s = 1
	}
	return int64(s)
}

// Seeds returns n seeds of independent streams, starting from seed and
// counting up, skipping any seed whose stream equals one already taken.
// The first one is always seed itself.
func Seeds(kind SourceKind, seed int64, n int) []int64 {
	if n <= 0 {
		return nil
	}

	seeds := make([]int64, 0, n)
	used := make(map[int64]struct{}, n)
	var e int64
	for s := seed; len(seeds) < n; s++ {
		e = EffectiveSeed(kind, s)
		if _, ok := used[e]; ok {
			continue
		}
		used[e] = struct{}{}
		seeds = append(seeds, s)
	}
	return seeds
}
