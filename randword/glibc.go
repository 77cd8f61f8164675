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

const (
	glibcDeg = 31 // degree of the TYPE_3 polynomial
	glibcSep = 3  // separation between the front and rear pointers
)

// Glibc is the TYPE_3 additive feedback generator behind glibc's
// random() and rand(). The same seed gives the same sequence as
// srand(seed) followed by calls of rand().
type Glibc struct {
	state [glibcDeg]uint32
	f, r  int
}

// NewGlibc returns a seeded Glibc generator.
func NewGlibc(seed int64) *Glibc {
	g := &Glibc{}
	g.Seed(seed)
	return g
}

// Seed resets the state. Only the low 32 bits of seed are used,
// like the unsigned int argument of srand(), and 0 is treated as 1.
func (g *Glibc) Seed(seed int64) {
	s := uint32(seed)
	if s == 0 {
		s = 1
	}

	word := int64(int32(s))
	g.state[0] = uint32(word)
	var hi, lo int64
	for i := 1; i < glibcDeg; i++ {
		// word = 16807 * word % 2147483647, without overflowing 31 bits
		hi = word / 127773
		lo = word % 127773
		word = 16807*lo - 2836*hi
		if word < 0 {
			word += 2147483647
		}
		g.state[i] = uint32(word)
	}

	g.f, g.r = glibcSep, 0
	for i := 0; i < glibcDeg*10; i++ {
		g.Int31()
	}
}

// Int31 returns a non-negative pseudo-random 31-bit integer.
func (g *Glibc) Int31() int32 {
	g.state[g.f] += g.state[g.r]
	v := g.state[g.f] >> 1

	g.f++
	if g.f == glibcDeg {
		g.f = 0
	}
	g.r++
	if g.r == glibcDeg {
		g.r = 0
	}
	return int32(v)
}
