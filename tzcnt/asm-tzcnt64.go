//go:build ignore
// +build ignore

package main

import (
	. "github.com/mmcloughlin/avo/build"
)

func main() {
	TEXT("tzcnt64", NOSPLIT, "func(v uint64) int")
	Doc("Using tzcnt to count trailing zeros of an uint64.")
	v := Load(Param("v"), GP64())
	n := GP64()
	TZCNTQ(v, n)
	Store(n, ReturnIndex(0))
	RET()
	Generate()
}
