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
	"strings"

	"github.com/pkg/errors"
)

// Mode is what the sampling loop does with each word.
type Mode uint8

const (
	// Random sums the transformed words, without computing any index.
	Random Mode = iota
	// DeBruijn sums the indexes computed by the De Bruijn method.
	DeBruijn
	// BitShift sums the indexes computed by the bit-shift method.
	BitShift
	// Tzcnt sums the indexes computed with the TZCNT instruction.
	Tzcnt
	// Check shifts each word, compares all the methods and counts the indexes.
	Check

	nModes
)

// ErrUnknownMode means the run mode is not recognized.
var ErrUnknownMode = errors.New("harness: unknown run mode")

var modeNames = [nModes]string{"random", "debruijn", "bitshift", "tzcnt", "check"}

// ModeNames lists the names of all modes.
var ModeNames = modeNames[:]

func (m Mode) String() string {
	if m < nModes {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Valid tells whether m is a known mode.
func (m Mode) Valid() bool { return m < nModes }

// ParseMode returns the mode of the given name.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "random", "passthrough":
		return Random, nil
	case "debruijn", "multiply":
		return DeBruijn, nil
	case "bitshift", "linear-scan":
		return BitShift, nil
	case "tzcnt":
		return Tzcnt, nil
	case "check", "correctness":
		return Check, nil
	}
	return 0, errors.Wrapf(ErrUnknownMode, "%q", name)
}
