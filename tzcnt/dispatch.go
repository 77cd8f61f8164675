// Package tzcnt counts trailing zeros of an uint64 with the TZCNT
// instruction when the CPU has BMI1, or math/bits otherwise.
package tzcnt

type tzcnt64Impl struct {
	function  func(v uint64) int
	name      string
	available bool
}

// pick returns the first available implementation in tzcntFuncs.
func pick() tzcnt64Impl {
	for _, f := range tzcntFuncs {
		if f.available {
			return f
		}
	}

	panic("no implementation available")
}

var impl = pick()

// Tzcnt64 returns the number of trailing zero bits of v, 64 for v == 0.
var Tzcnt64 = impl.function

// Impl is the name of the implementation behind Tzcnt64,
// "BMI1" for the TZCNT instruction or "generic" for math/bits.
var Impl = impl.name
