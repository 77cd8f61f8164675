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
	// ChunkBits is the number of bits taken from each draw.
	ChunkBits = 15
	// Chunks is the number of draws per word.
	Chunks = 4

	chunkMask = 1<<ChunkBits - 1
)

// Generator composes 64-bit words from a bounded Source.
// Only the low Chunks*ChunkBits bits of a word can be set.
type Generator struct {
	src Source
}

// New returns a Generator owning the given source.
func New(src Source) *Generator {
	return &Generator{src: src}
}

// NewWithSeed returns a Generator with a new source of the given kind.
func NewWithSeed(kind SourceKind, seed int64) *Generator {
	return &Generator{src: NewSource(kind, seed)}
}

// Seed reseeds the underlying source.
func (g *Generator) Seed(seed int64) {
	g.src.Seed(seed)
}

// Uint64 concatenates the low 15 bits of 4 successive draws,
// the first draw being the most significant chunk.
func (g *Generator) Uint64() uint64 {
	var v uint64
	for i := 0; i < Chunks; i++ {
		v = v<<ChunkBits | uint64(g.src.Int31())&chunkMask
	}
	return v
}
