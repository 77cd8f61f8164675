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
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Result is the outcome of a run.
type Result struct {
	Mode    Mode
	Samples int64

	// Checksum is the sum (mod 2^64) of the words or the indexes.
	// It is zero in Check mode.
	Checksum uint64

	// Hist counts the indexes in Check mode, nil in other modes.
	Hist []uint64

	// Elapsed is the wall time of the sampling loop.
	Elapsed time.Duration
}

func newResult(opt *Options) *Result {
	r := &Result{Mode: opt.Mode, Samples: opt.Samples}
	if opt.Mode == Check {
		r.Hist = make([]uint64, HistSize)
	}
	return r
}

func (r *Result) merge(w *worker) {
	r.Checksum += w.checksum
	for i, c := range w.hist {
		r.Hist[i] += c
	}
}

// ErrInvalidHist means the histogram of a Check run is not consistent
// with the number of samples or contains unreachable indexes.
var ErrInvalidHist = errors.New("harness: invalid histogram")

// Validate checks the histogram of a Check run: the counts add up to the
// number of samples, and only indexes in [1, MaxCheckIndex] are found.
func (r *Result) Validate() error {
	if r.Mode != Check {
		return nil
	}
	if len(r.Hist) != HistSize {
		return errors.Wrapf(ErrInvalidHist, "%d bins", len(r.Hist))
	}

	var sum uint64
	for i, c := range r.Hist {
		if c > 0 && (i < 1 || i > MaxCheckIndex) {
			return errors.Wrapf(ErrInvalidHist, "unreachable index %d with count %d", i, c)
		}
		sum += c
	}
	if sum != uint64(r.Samples) {
		return errors.Wrapf(ErrInvalidHist, "total count %d != samples %d", sum, r.Samples)
	}
	return nil
}

// Write writes the report: the elapsed time, the histogram in Check mode,
// and the checksum.
func (r *Result) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "time consume: %f seconds\n", r.Elapsed.Seconds()); err != nil {
		return err
	}
	for i, c := range r.Hist {
		if _, err := fmt.Fprintf(w, "%2d: %d\n", i, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "ret: 0x%x\n", r.Checksum)
	return err
}
