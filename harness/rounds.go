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
	"time"

	"github.com/pkg/errors"
	"github.com/twotwotwo/sorts/sortutil"
)

// RunRounds runs the same options for a number of rounds, all starting
// from the same seed.
func RunRounds(opt Options, rounds int) ([]*Result, error) {
	if rounds < 1 {
		return nil, errors.Errorf("harness: rounds should be >= 1, given %d", rounds)
	}

	results := make([]*Result, 0, rounds)
	for i := 0; i < rounds; i++ {
		res, err := Run(opt)
		if err != nil {
			return nil, errors.Wrapf(err, "round %d", i+1)
		}
		results = append(results, res)
	}
	return results, nil
}

// ElapsedStats returns the minimum and the median elapsed time.
func ElapsedStats(results []*Result) (time.Duration, time.Duration) {
	if len(results) == 0 {
		return 0, 0
	}

	ts := make([]uint64, len(results))
	for i, r := range results {
		ts[i] = uint64(r.Elapsed)
	}
	sortutil.Uint64s(ts)

	n := len(ts)
	median := ts[n/2]
	if n&1 == 0 {
		median = (ts[n/2-1] + ts[n/2]) / 2
	}
	return time.Duration(ts[0]), time.Duration(median)
}
