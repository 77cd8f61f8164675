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

package harness

import (
	"errors"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenwei356/bitindex"
	"github.com/shenwei356/bitindex/randword"
)

// checksums of the reference program, built with glibc
func TestChecksums(t *testing.T) {
	type Case struct {
		Seed    int64
		Samples int64
		Mode    Mode
		Ret     uint64
	}
	tests := []Case{
		{0, 1000, Random, 0x101c33bc737ed73b},
		{0, 1000, DeBruijn, 0x7c5},
		{0, 1000, BitShift, 0x7c5},
		{0, 1000, Tzcnt, 0x7c5},
		{0, 1000, Check, 0},
		{42, 10000, Random, 0xa1178293ec1e16e9},
		{42, 10000, DeBruijn, 0x4e49},
		{42, 10000, BitShift, 0x4e49},
		{1, 5000, Random, 0x508faa3d8841df02},
		{1, 5000, DeBruijn, 0x265f},
	}

	for i, test := range tests {
		opt := DefaultOptions(test.Mode)
		opt.Seed = test.Seed
		opt.Samples = test.Samples

		res, err := Run(opt)
		if err != nil {
			t.Errorf("[%d] %s: %s", i+1, test.Mode, err)
			continue
		}
		if res.Checksum != test.Ret {
			t.Errorf("[%d] %s, seed %d, n %d: expected 0x%x, result 0x%x",
				i+1, test.Mode, test.Seed, test.Samples, test.Ret, res.Checksum)
		}
	}
}

func TestCheckHistogram(t *testing.T) {
	// seed 0, 1000 samples, from the reference program
	expected := []uint64{
		0, 12, 15, 14, 24, 16, 18, 25, 12, 23,
		20, 21, 19, 18, 22, 19, 22, 19, 16, 22,
		23, 25, 19, 19, 18, 12, 27, 14, 24, 20,
		22, 16, 28, 24, 20, 21, 20, 13, 16, 22,
		19, 21, 17, 19, 24, 21, 25, 10, 19, 18,
		25, 22, 0,
	}

	opt := DefaultOptions(Check)
	opt.Samples = 1000
	res, err := Run(opt)
	if err != nil {
		t.Error(err)
		return
	}
	if err = res.Validate(); err != nil {
		t.Error(err)
	}
	if len(res.Hist) != HistSize {
		t.Errorf("histogram size: expected %d, result %d", HistSize, len(res.Hist))
		return
	}
	for i, c := range res.Hist {
		if c != expected[i] {
			t.Errorf("bin %d: expected %d, result %d", i, expected[i], c)
		}
	}

	var buf strings.Builder
	if err = res.Write(&buf); err != nil {
		t.Error(err)
		return
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != HistSize+2 {
		t.Errorf("report lines: expected %d, result %d", HistSize+2, len(lines))
		return
	}
	if !strings.HasPrefix(lines[0], "time consume: ") || !strings.HasSuffix(lines[0], " seconds") {
		t.Errorf("unexpected time line: %s", lines[0])
	}
	if lines[1] != " 0: 0" || lines[51] != "50: 25" || lines[53] != "52: 0" {
		t.Errorf("unexpected histogram lines: %q %q %q", lines[1], lines[51], lines[53])
	}
	if lines[HistSize+1] != "ret: 0x0" {
		t.Errorf("unexpected checksum line: %s", lines[HistSize+1])
	}
}

func TestReportWithoutHistogram(t *testing.T) {
	res := &Result{Mode: DeBruijn, Samples: 10, Checksum: 0x7c5, Elapsed: 1500 * time.Millisecond}
	var buf strings.Builder
	if err := res.Write(&buf); err != nil {
		t.Error(err)
		return
	}
	if s := buf.String(); s != "time consume: 1.500000 seconds\nret: 0x7c5\n" {
		t.Errorf("unexpected report: %q", s)
	}
}

func TestRandomChecksum(t *testing.T) {
	for _, p := range []int{4, 10, 14, 18, 63} {
		opt := DefaultOptions(Random)
		opt.Seed = 11
		opt.Samples = 20000
		opt.P = p
		res, err := Run(opt)
		if err != nil {
			t.Error(err)
			return
		}

		g := randword.NewWithSeed(randword.SourceGlibc, opt.Seed)
		var sum, word uint64
		for i := int64(0); i < opt.Samples; i++ {
			_, word = Split(g.Uint64(), p)
			sum += word
		}
		if res.Checksum != sum {
			t.Errorf("p=%d: expected 0x%x, result 0x%x", p, sum, res.Checksum)
		}
	}
}

func TestIndexModesAgree(t *testing.T) {
	for _, source := range []randword.SourceKind{randword.SourceGlibc, randword.SourceGo} {
		var ret uint64
		for i, mode := range []Mode{DeBruijn, BitShift, Tzcnt} {
			opt := DefaultOptions(mode)
			opt.Seed = 3
			opt.Samples = 100000
			opt.Source = source
			opt.P = 10

			res, err := Run(opt)
			if err != nil {
				t.Error(err)
				return
			}
			if i == 0 {
				ret = res.Checksum
			} else if res.Checksum != ret {
				t.Errorf("%s, %s: expected 0x%x, result 0x%x", source, mode, ret, res.Checksum)
			}
		}
	}
}

func TestParallel(t *testing.T) {
	var samples int64 = 3*ChunkSize + 12345
	threads := 4

	// expected checksum of contiguous blocks with generators of distinct seeds
	var seed int64 = 5
	var sum, word uint64
	n := samples / int64(threads)
	r := samples % int64(threads)
	seeds := randword.Seeds(randword.SourceGlibc, seed, threads)
	for i := 0; i < threads; i++ {
		g := randword.NewWithSeed(randword.SourceGlibc, seeds[i])
		size := n
		if int64(i) < r {
			size++
		}
		for j := int64(0); j < size; j++ {
			_, word = Split(g.Uint64(), DefaultP)
			sum += word
		}
	}

	var progress int64
	opt := DefaultOptions(Random)
	opt.Seed = seed
	opt.Samples = samples
	opt.Threads = threads
	opt.Progress = func(n int) { atomic.AddInt64(&progress, int64(n)) }

	res, err := Run(opt)
	if err != nil {
		t.Error(err)
		return
	}
	if res.Checksum != sum {
		t.Errorf("expected 0x%x, result 0x%x", sum, res.Checksum)
	}
	if progress != samples {
		t.Errorf("progress: expected %d, result %d", samples, progress)
	}

	opt.Mode = Check
	opt.Progress = nil
	res, err = Run(opt)
	if err != nil {
		t.Error(err)
		return
	}
	if err = res.Validate(); err != nil {
		t.Error(err)
	}
}

func TestParallelDistinctStreams(t *testing.T) {
	// seeds 0 and 1 give the same glibc stream, so the second block must not use 1
	opt := DefaultOptions(Random)
	opt.Samples = 2000
	opt.Threads = 2
	res, err := Run(opt)
	if err != nil {
		t.Error(err)
		return
	}

	blockSum := func(seed int64) uint64 {
		g := randword.NewWithSeed(randword.SourceGlibc, seed)
		var sum, word uint64
		for i := 0; i < 1000; i++ {
			_, word = Split(g.Uint64(), DefaultP)
			sum += word
		}
		return sum
	}

	if res.Checksum == 2*blockSum(0) {
		t.Errorf("the two blocks draw the same stream: 0x%x", res.Checksum)
	}
	if e := blockSum(0) + blockSum(2); res.Checksum != e {
		t.Errorf("expected 0x%x, result 0x%x", e, res.Checksum)
	}
	if res.Checksum != 0x2038a4a9b755729a {
		t.Errorf("expected 0x2038a4a9b755729a, result 0x%x", res.Checksum)
	}
}

func TestCheckMismatch(t *testing.T) {
	// break the table entry of bit 5, so the De Bruijn method returns 1 for it
	idx := (uint64(1) << 5) * bitindex.DeBruijn64 >> bitindex.DeBruijnShift
	saved := bitindex.DeBruijn64Table[idx]
	bitindex.DeBruijn64Table[idx] = 0
	defer func() { bitindex.DeBruijn64Table[idx] = saved }()

	opt := DefaultOptions(Check)
	opt.Samples = 1000

	_, err := Run(opt)
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Errorf("expected a MismatchError, result: %v", err)
		return
	}
	if me.Index != 5 || me.Word != 0x8631bd3d1379e0 ||
		me.BitShift != 6 || me.DeBruijn != 1 || me.Tzcnt != 6 {
		t.Errorf("unexpected mismatch: %s", me)
	}

	_, err = RunRounds(opt, 2)
	me = nil
	if !errors.As(err, &me) {
		t.Errorf("RunRounds: expected a MismatchError, result: %v", err)
		return
	}
	if me.Index != 5 || me.Word != 0x8631bd3d1379e0 {
		t.Errorf("RunRounds: unexpected mismatch: %s", me)
	}
	if !strings.Contains(err.Error(), "round 1") {
		t.Errorf("RunRounds: round is not reported: %s", err)
	}

	// the first block holds sample 5, and fails whatever the other blocks do
	opt.Threads = 4
	_, err = Run(opt)
	me = nil
	if !errors.As(err, &me) || me.Index != 5 {
		t.Errorf("parallel: expected a MismatchError at sample 5, result: %v", err)
	}
}

func TestWorkers(t *testing.T) {
	type Case struct {
		Threads int
		Samples int64
		Workers int
	}
	tests := []Case{
		{1, 1000, 1},
		{4, 1000, 4},
		{4, 3, 3},
		{0, 1 << 40, runtime.NumCPU()},
		{-2, 1 << 40, runtime.NumCPU()},
	}
	for i, test := range tests {
		opt := DefaultOptions(Random)
		opt.Threads = test.Threads
		opt.Samples = test.Samples
		if w := opt.Workers(); w != test.Workers {
			t.Errorf("[%d] expected %d, result %d", i+1, test.Workers, w)
		}
	}
}

func TestSequentialProgress(t *testing.T) {
	var samples int64 = 2*ChunkSize + 7
	var calls, total int
	opt := DefaultOptions(Check)
	opt.Samples = samples
	opt.Progress = func(n int) {
		calls++
		total += n
	}

	res, err := RunWith(opt, randword.New(randword.NewGlibc(0)))
	if err != nil {
		t.Error(err)
		return
	}
	if err = res.Validate(); err != nil {
		t.Error(err)
	}
	if calls != 3 || int64(total) != samples {
		t.Errorf("progress: expected 3 calls and %d samples, result %d calls and %d samples",
			samples, calls, total)
	}
}

func TestSplit(t *testing.T) {
	idx, word := Split(0xabcdef0123456789, 14)
	if idx != 0x2789 {
		t.Errorf("index: expected 0x2789, result 0x%x", idx)
	}
	if word != 0xabcdef0123456789>>14|1<<50 {
		t.Errorf("unexpected word: 0x%x", word)
	}

	_, word = Split(0, 14)
	if word != 1<<50 {
		t.Errorf("sentinel bit is not set: 0x%x", word)
	}
}

func TestOptionsValidate(t *testing.T) {
	type Case struct {
		Modify func(*Options)
		Err    error
	}
	tests := []Case{
		{func(o *Options) {}, nil},
		{func(o *Options) { o.Mode = nModes }, ErrUnknownMode},
		{func(o *Options) { o.Samples = 0 }, ErrInvalidSamples},
		{func(o *Options) { o.Samples = -1 }, ErrInvalidSamples},
		{func(o *Options) { o.P = 3 }, ErrInvalidP},
		{func(o *Options) { o.P = 64 }, ErrInvalidP},
	}

	for i, test := range tests {
		opt := DefaultOptions(Check)
		test.Modify(&opt)
		err := opt.Validate()
		if test.Err == nil {
			if err != nil {
				t.Errorf("[%d] unexpected error: %s", i+1, err)
			}
			continue
		}
		if !errors.Is(err, test.Err) {
			t.Errorf("[%d] expected %s, result %v", i+1, test.Err, err)
		}
		if _, err = Run(opt); !errors.Is(err, test.Err) {
			t.Errorf("[%d] Run: expected %s, result %v", i+1, test.Err, err)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range ModeNames {
		m, err := ParseMode(name)
		if err != nil {
			t.Error(err)
			continue
		}
		if m.String() != name {
			t.Errorf("expected %s, result %s", name, m)
		}
	}

	aliases := map[string]Mode{
		"passthrough": Random,
		"multiply":    DeBruijn,
		"linear-scan": BitShift,
		"CHECK":       Check,
	}
	for name, e := range aliases {
		if m, err := ParseMode(name); err != nil || m != e {
			t.Errorf("%s: expected %s, result %s, %v", name, e, m, err)
		}
	}

	for _, name := range []string{"", "RANDOM ", "debruijn64"} {
		if _, err := ParseMode(name); !errors.Is(err, ErrUnknownMode) {
			t.Errorf("%q: expected ErrUnknownMode, result %v", name, err)
		}
	}
}

func TestResultValidate(t *testing.T) {
	res := &Result{Mode: Check, Samples: 3, Hist: make([]uint64, HistSize)}
	res.Hist[1] = 2
	res.Hist[MaxCheckIndex] = 1
	if err := res.Validate(); err != nil {
		t.Error(err)
	}

	res.Hist[1] = 1
	if err := res.Validate(); !errors.Is(err, ErrInvalidHist) {
		t.Errorf("total mismatch: expected ErrInvalidHist, result %v", err)
	}

	res.Hist[0] = 1
	if err := res.Validate(); !errors.Is(err, ErrInvalidHist) {
		t.Errorf("bin 0: expected ErrInvalidHist, result %v", err)
	}

	res.Hist[0] = 0
	res.Hist[MaxCheckIndex+1] = 1
	if err := res.Validate(); !errors.Is(err, ErrInvalidHist) {
		t.Errorf("bin %d: expected ErrInvalidHist, result %v", MaxCheckIndex+1, err)
	}
}

func TestMismatchError(t *testing.T) {
	var err error = &MismatchError{Index: 7, Word: 0x18, BitShift: 4, DeBruijn: 5, Tzcnt: 4}
	var e *MismatchError
	if !errors.As(err, &e) || e.Index != 7 {
		t.Errorf("errors.As failed: %v", err)
	}
	if s := err.Error(); !strings.Contains(s, "sample 7: 0x18") {
		t.Errorf("unexpected message: %s", s)
	}
}

func TestRounds(t *testing.T) {
	opt := DefaultOptions(DeBruijn)
	opt.Samples = 1000
	results, err := RunRounds(opt, 3)
	if err != nil {
		t.Error(err)
		return
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, result %d", len(results))
		return
	}
	for i, r := range results {
		if r.Checksum != 0x7c5 {
			t.Errorf("round %d: expected 0x7c5, result 0x%x", i+1, r.Checksum)
		}
	}

	if _, err = RunRounds(opt, 0); err == nil {
		t.Errorf("rounds 0 should fail")
	}

	rs := []*Result{{Elapsed: 3}, {Elapsed: 1}, {Elapsed: 4}, {Elapsed: 2}}
	fastest, median := ElapsedStats(rs)
	if fastest != 1 || median != 2 {
		t.Errorf("expected 1 and 2, result %d and %d", fastest, median)
	}
	fastest, median = ElapsedStats(rs[:3])
	if fastest != 1 || median != 3 {
		t.Errorf("expected 1 and 3, result %d and %d", fastest, median)
	}
}

func BenchmarkModes(b *testing.B) {
	for _, mode := range []Mode{Random, DeBruijn, BitShift, Tzcnt} {
		b.Run(mode.String(), func(b *testing.B) {
			opt := DefaultOptions(mode)
			opt.Samples = int64(b.N)
			if _, err := Run(opt); err != nil {
				b.Error(err)
			}
		})
	}
}
