//go:build amd64

package tzcnt

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

var tzcntFuncs = []tzcnt64Impl{
	{tzcnt64, "BMI1", cpu.X86.HasBMI1},
	{bits.TrailingZeros64, "generic", true},
}
