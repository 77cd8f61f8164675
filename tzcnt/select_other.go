//go:build !amd64

package tzcnt

import "math/bits"

var tzcntFuncs = []tzcnt64Impl{
	{bits.TrailingZeros64, "generic", true},
}
