// Command jpegcmp compares two PPM/PGM rasters and reports their PSNR.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anvil-imaging/bjpeg/internal/compare"
	"github.com/anvil-imaging/bjpeg/internal/pnm"
)

func main() {
	threshold := flag.Float64("min-psnr", 0, "exit non-zero if PSNR falls below this many dB (0 disables the check)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] a.ppm b.ppm\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(args[0], args[1], *threshold))
}

func run(pathA, pathB string, threshold float64) int {
	a, err := readRaster(pathA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegcmp: %v\n", err)
		return 1
	}
	b, err := readRaster(pathB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegcmp: %v\n", err)
		return 1
	}

	if a.Width != b.Width || a.Height != b.Height || a.Channels != b.Channels {
		fmt.Fprintf(os.Stderr, "jpegcmp: dimension mismatch: %dx%dx%d vs %dx%dx%d\n",
			a.Width, a.Height, a.Channels, b.Width, b.Height, b.Channels)
		return 1
	}

	psnr, err := compare.PSNR(a.Pixels, b.Pixels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegcmp: %v\n", err)
		return 1
	}

	fmt.Printf("PSNR: %.2f dB\n", psnr)
	if threshold > 0 && psnr < threshold {
		fmt.Fprintf(os.Stderr, "jpegcmp: PSNR %.2f dB is below threshold %.2f dB\n", psnr, threshold)
		return 1
	}
	return 0
}

func readRaster(path string) (*pnm.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pnm.Decode(f)
}
