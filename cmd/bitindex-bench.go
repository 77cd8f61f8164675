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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/shenwei356/bitindex"
	"github.com/shenwei356/bitindex/harness"
	"github.com/shenwei356/bitindex/randword"
	"github.com/shenwei356/bitindex/tzcnt"
	"github.com/shenwei356/xopen"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	usage := fmt.Sprintf(`
This command benchmarks and cross-checks methods for computing the position of
the lowest set bit of 64-bit words, i.e., the run length of a HyperLogLog
register update.

Modes:
  random    (passthrough)  sum the words only
  debruijn  (multiply)     sum the indexes computed by De Bruijn multiplication
  bitshift  (linear-scan)  sum the indexes computed by shifting a mask from LSB
  tzcnt                    sum the indexes computed with the TZCNT instruction
  check     (correctness)  compare all the methods and count the indexes

The exit status is the low 8 bits of the checksum, or 1 for errors.

Author: Wei Shen <shenwei356@gmail.com>

Version: v%s
Usage: %s [options] -m <mode>

Options/Flags:
`, version, filepath.Base(os.Args[0]))

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	help := flag.Bool("h", false, "print help message")
	printVersion := flag.Bool("V", false, "print version")
	modeName := flag.String("m", "", "run mode: "+strings.Join(harness.ModeNames, ", "))
	seed := flag.Int64("s", 0, "seed number")
	n := flag.Int64("n", harness.DefaultSamples, "number of samples")
	p := flag.Int("p", harness.DefaultP, "bits of a hash used as the register index, [4, 63]")
	sourceName := flag.String("g", "glibc", "random source: glibc, go")
	threads := flag.Int("j", 1, "number of threads, 0 for all CPUs")
	rounds := flag.Int("r", 1, "number of rounds")
	outFile := flag.String("o", "-", `out file ("-" for stdout)`)
	showProgress := flag.Bool("progress", false, "show progress bar")
	quiet := flag.Bool("q", false, "do not print any verbose information")
	pfCPU := flag.Bool("pprof-cpu", false, "pprofile CPU")
	pfMEM := flag.Bool("pprof-mem", false, "pprofile memory")

	flag.Parse()

	if *help {
		flag.Usage()
		return 0
	}
	if *printVersion {
		fmt.Printf("%s v%s\n", filepath.Base(os.Args[0]), version)
		return 0
	}

	if *modeName == "" {
		flag.Usage()
		checkError(fmt.Errorf("flag -m needed"))
	}
	mode, err := harness.ParseMode(*modeName)
	checkError(err)
	source, err := randword.ParseSourceKind(*sourceName)
	checkError(err)

	if *rounds < 1 {
		checkError(fmt.Errorf("r should be >= 1"))
	}

	opt := harness.Options{
		Mode:    mode,
		Seed:    *seed,
		Samples: *n,
		P:       *p,
		Source:  source,
		Threads: *threads,
	}
	checkError(opt.Validate())

	checkError(errors.Wrap(bitindex.VerifyTable(), "self-check"))

	if *quiet {
		log.SetOutput(io.Discard)
	}

	// -----------------------------------------------

	// go tool pprof -http=:8080 cpu.pprof
	if *pfCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *pfMEM {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	outfh, err := xopen.Wopen(*outFile)
	checkError(err)
	defer outfh.Close()

	var pbs *mpb.Progress
	var bar *mpb.Bar
	if *showProgress {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(opt.Samples*int64(*rounds),
			mpb.PrependDecorators(
				decor.Name("sampled: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.Name(" "),
				decor.Elapsed(decor.ET_STYLE_GO),
			),
		)
		opt.Progress = func(n int) { bar.IncrBy(n) }
	}

	log.Printf("mode: %s, samples: %s, seed: %d, p: %d, source: %s, threads: %d, tzcnt: %s",
		mode, humanize.Comma(opt.Samples), opt.Seed, opt.P, source, opt.Workers(), tzcnt.Impl)

	results, err := harness.RunRounds(opt, *rounds)
	if pbs != nil {
		if err != nil {
			bar.Abort(false)
		}
		pbs.Wait()
	}
	if err != nil {
		var me *harness.MismatchError
		if errors.As(err, &me) {
			fmt.Fprintf(outfh, "[%d]0x%x, %d, %d\n", me.Index, me.Word, me.BitShift, me.DeBruijn)
		}
		log.Print(err)
		return 1
	}

	res := results[len(results)-1]
	if err = res.Validate(); err != nil {
		log.Print(err)
		return 1
	}

	if len(results) > 1 {
		fastest, median := harness.ElapsedStats(results)
		log.Printf("%d rounds, min: %s, median: %s", len(results), fastest, median)
	}
	if res.Elapsed > 0 {
		log.Printf("%s samples/second", humanize.Comma(int64(float64(res.Samples)/res.Elapsed.Seconds())))
	}

	checkError(res.Write(outfh))

	return int(res.Checksum & 0xff)
}

func checkError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
