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

// Package harness runs the bit index algorithms over a large number of
// pseudo-random words, for benchmarking them or checking that they agree.
package harness

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/shenwei356/bitindex"
	"github.com/shenwei356/bitindex/randword"
)

const (
	// DefaultSamples is the number of words of a full run.
	DefaultSamples = 400000000
	// DefaultP is the number of hash bits used as the register index.
	DefaultP = 14

	// HistSize is the number of histogram bins reported in Check mode.
	HistSize = 53
	// MaxCheckIndex is the largest index a word can have in Check mode.
	MaxCheckIndex = CheckBit + 1

	// CheckShift bounds the left shift applied to the n-th word in Check mode,
	// n % CheckShift.
	CheckShift = 50
	// CheckBit is always set after the shift, so the word is never zero.
	CheckBit = 50

	// ChunkSize is the number of samples between two progress updates.
	ChunkSize = 1 << 20
)

// ErrInvalidSamples means the number of samples is not positive.
var ErrInvalidSamples = errors.New("harness: the number of samples should be > 0")

// ErrInvalidP means the register index bits is out of range.
var ErrInvalidP = errors.New("harness: p should be in range of [4, 63]")

// ErrHistOverflow means an index beyond the histogram is found in Check mode.
var ErrHistOverflow = errors.New("harness: index out of histogram range")

// Options contains the parameters of a run.
type Options struct {
	Mode    Mode
	Seed    int64
	Samples int64
	P       int // bits of the hash used as the register index
	Source  randword.SourceKind

	// Threads is the number of workers. The samples are split into Threads
	// contiguous blocks, and the blocks use generators seeded by
	// randword.Seeds(Source, Seed, Threads), so the first block starts from
	// Seed and no two blocks draw the same stream.
	// Values <= 0 mean runtime.NumCPU().
	//
	// In Check mode, all workers stop at their next chunk boundary once one of
	// them finds a mismatch. The reported mismatch has the smallest sample
	// index among the blocks that failed; a block that stopped early may hold
	// a smaller one it never reached.
	Threads int

	// Progress, if not nil, is called with the number of finished samples
	// after every ChunkSize samples. It must be safe for concurrent use
	// if Threads > 1.
	Progress func(n int)
}

// DefaultOptions returns the options of the reference run, except the mode.
func DefaultOptions(mode Mode) Options {
	return Options{
		Mode:    mode,
		Samples: DefaultSamples,
		P:       DefaultP,
		Source:  randword.SourceGlibc,
		Threads: 1,
	}
}

// Workers returns the number of workers a run uses.
func (opt *Options) Workers() int {
	threads := opt.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if opt.Samples > 0 && int64(threads) > opt.Samples {
		threads = int(opt.Samples)
	}
	return threads
}

// Validate checks the options.
func (opt *Options) Validate() error {
	if !opt.Mode.Valid() {
		return errors.Wrapf(ErrUnknownMode, "%d", opt.Mode)
	}
	if opt.Samples <= 0 {
		return errors.Wrapf(ErrInvalidSamples, "n=%d", opt.Samples)
	}
	if opt.P < 4 || opt.P > 63 {
		return errors.Wrapf(ErrInvalidP, "p=%d", opt.P)
	}
	if opt.Source != randword.SourceGlibc && opt.Source != randword.SourceGo {
		return errors.Errorf("harness: unknown source: %s", opt.Source)
	}
	return nil
}

// MismatchError means the algorithms return different indexes for a word.
type MismatchError struct {
	Index    int64  // sample index
	Word     uint64 // the word after the shift
	BitShift int
	DeBruijn int
	Tzcnt    int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("harness: algorithms disagree at sample %d: 0x%x, bitshift: %d, debruijn: %d, tzcnt: %d",
		e.Index, e.Word, e.BitShift, e.DeBruijn, e.Tzcnt)
}

// Split splits a hash into the register index (the low p bits) and the word
// for computing the run length (the other bits, with bit 64-p set as a
// sentinel).
func Split(hash uint64, p int) (uint64, uint64) {
	return hash & (1<<p - 1), hash>>p | 1<<(64-p)
}

// Run creates generators of opt.Source and runs the sampling loop.
func Run(opt Options) (*Result, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	threads := opt.Workers()
	if threads == 1 {
		return RunWith(opt, randword.NewWithSeed(opt.Source, opt.Seed))
	}

	res := newResult(&opt)
	seeds := randword.Seeds(opt.Source, opt.Seed, threads)
	workers := make([]*worker, threads)
	for i := range workers {
		workers[i] = newWorker(&opt, randword.NewWithSeed(opt.Source, seeds[i]))
	}

	var wg sync.WaitGroup
	var stop atomic.Bool
	errs := make([]error, threads)
	n := opt.Samples / int64(threads)
	r := opt.Samples % int64(threads)

	sTime := time.Now()
	var start, end int64
	for i, w := range workers {
		end = start + n
		if int64(i) < r {
			end++
		}

		wg.Add(1)
		go func(i int, w *worker, start, end int64) {
			defer wg.Done()
			w.stop = &stop
			if err := w.run(start, end); err != nil {
				errs[i] = err
				stop.Store(true)
			}
		}(i, w, start, end)

		start = end
	}
	wg.Wait()
	res.Elapsed = time.Since(sTime)

	// blocks are in order, so it's the error of the smallest sample index
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, w := range workers {
		res.merge(w)
	}
	return res, nil
}

// RunWith runs the sampling loop sequentially with the given generator,
// ignoring opt.Seed, opt.Source and opt.Threads.
func RunWith(opt Options, gen *randword.Generator) (*Result, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	res := newResult(&opt)
	w := newWorker(&opt, gen)

	sTime := time.Now()
	err := w.run(0, opt.Samples)
	res.Elapsed = time.Since(sTime)
	if err != nil {
		return nil, err
	}

	res.merge(w)
	return res, nil
}

type worker struct {
	gen      *randword.Generator
	mode     Mode
	p        int
	progress func(n int)
	stop     *atomic.Bool

	checksum uint64
	hist     []uint64
}

func newWorker(opt *Options, gen *randword.Generator) *worker {
	w := &worker{gen: gen, mode: opt.Mode, p: opt.P, progress: opt.Progress}
	if opt.Mode == Check {
		w.hist = make([]uint64, HistSize)
	}
	return w
}

// run processes samples in [start, end).
func (w *worker) run(start, end int64) error {
	var e int64
	var err error
	for start < end {
		e = start + ChunkSize
		if e > end {
			e = end
		}

		switch w.mode {
		case Random:
			w.random(e - start)
		case DeBruijn:
			w.debruijn(e - start)
		case BitShift:
			w.bitshift(e - start)
		case Tzcnt:
			w.tzcnt(e - start)
		case Check:
			if err = w.check(start, e); err != nil {
				return err
			}
		}

		if w.progress != nil {
			w.progress(int(e - start))
		}
		if w.stop != nil && w.stop.Load() {
			return nil
		}
		start = e
	}
	return nil
}

// The loops below are written out for each method, so the benchmarks do not
// pay for an indirect call.

func (w *worker) random(n int64) {
	g := w.gen
	p := w.p
	sentinel := uint64(1) << (64 - p)
	var sum uint64
	for ; n > 0; n-- {
		sum += g.Uint64()>>p | sentinel
	}
	w.checksum += sum
}

func (w *worker) debruijn(n int64) {
	g := w.gen
	p := w.p
	sentinel := uint64(1) << (64 - p)
	var sum uint64
	for ; n > 0; n-- {
		sum += uint64(bitindex.RightmostIndexDeBruijn(g.Uint64()>>p | sentinel))
	}
	w.checksum += sum
}

func (w *worker) bitshift(n int64) {
	g := w.gen
	p := w.p
	sentinel := uint64(1) << (64 - p)
	var sum uint64
	for ; n > 0; n-- {
		sum += uint64(bitindex.RightmostIndexBitShift(g.Uint64()>>p | sentinel))
	}
	w.checksum += sum
}

func (w *worker) tzcnt(n int64) {
	g := w.gen
	p := w.p
	sentinel := uint64(1) << (64 - p)
	var sum uint64
	for ; n > 0; n-- {
		sum += uint64(bitindex.RightmostIndexTzcnt(g.Uint64()>>p | sentinel))
	}
	w.checksum += sum
}

func (w *worker) check(start, end int64) error {
	g := w.gen
	p := w.p
	hist := w.hist
	var word uint64
	var l1, l2, l3 int
	for n := start; n < end; n++ {
		_, word = Split(g.Uint64(), p)
		word = word<<uint(n%CheckShift) | 1<<CheckBit

		l1 = bitindex.RightmostIndexBitShift(word)
		l2 = bitindex.RightmostIndexDeBruijn(word)
		l3 = bitindex.RightmostIndexTzcnt(word)
		if l1 != l2 || l1 != l3 {
			return &MismatchError{Index: n, Word: word, BitShift: l1, DeBruijn: l2, Tzcnt: l3}
		}
		if l1 >= HistSize {
			return errors.Wrapf(ErrHistOverflow, "sample %d: 0x%x, index: %d", n, word, l1)
		}
		hist[l1]++
	}
	return nil
}
