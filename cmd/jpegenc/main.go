// Command jpegenc encodes a PGM or PPM raster on disk into a baseline
// sequential JPEG file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/anvil-imaging/bjpeg/internal/pnm"
	"github.com/anvil-imaging/bjpeg/jpeg"
)

func main() {
	quality := flag.Int("quality", 85, "JPEG quality, 1-100")
	subsample := flag.String("subsample", "420", "chroma subsampling: 420, 422, or 444")
	restart := flag.Int("restart", 0, "restart interval in MCUs (0 disables restart markers)")
	noOptimize := flag.Bool("no-optimize", false, "emit MJPEG default huffman tables instead of optimizing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] input.ppm [output.jpg]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	inputPath := args[0]
	out := strings.TrimSuffix(inputPath, ".ppm")
	out = strings.TrimSuffix(out, ".pgm") + ".jpg"
	if len(args) > 1 {
		out = args[1]
	}

	mode, err := parseChromaMode(*subsample)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegenc: %v\n", err)
		os.Exit(2)
	}

	os.Exit(run(inputPath, out, jpeg.EncodeOptions{
		Quality:                    *quality,
		ChromaSubsampling:          mode,
		RestartInterval:            *restart,
		DisableHuffmanOptimization: *noOptimize,
	}))
}

func parseChromaMode(s string) (jpeg.ChromaMode, error) {
	switch s {
	case "420":
		return jpeg.Subsample420, nil
	case "422":
		return jpeg.Subsample422, nil
	case "444":
		return jpeg.Subsample444, nil
	default:
		return 0, fmt.Errorf("unrecognized subsampling mode %q", s)
	}
}

func run(inputPath, outputPath string, opts jpeg.EncodeOptions) int {
	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegenc: %v\n", err)
		return 1
	}
	defer in.Close()

	raster, err := pnm.Decode(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegenc: reading input: %v\n", err)
		return 1
	}

	img := &jpeg.Image{
		Width:         raster.Width,
		Height:        raster.Height,
		NumComponents: raster.Channels,
		Pixels:        raster.Pixels,
	}

	f, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegenc: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, opts); err != nil {
		fmt.Fprintf(os.Stderr, "jpegenc: encode failed: %v\n", err)
		return 1
	}
	return 0
}
