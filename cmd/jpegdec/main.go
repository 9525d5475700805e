// Command jpegdec decodes a baseline sequential JPEG file to a PGM or
// PPM raster on disk.
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
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s input.jpg [output.ppm]\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	inputPath := args[0]
	outputPath := args[1:]
	out := strings.TrimSuffix(inputPath, ".jpg") + ".ppm"
	if len(outputPath) > 0 {
		out = outputPath[0]
	}

	code := run(inputPath, out)
	os.Exit(code)
}

func run(inputPath, outputPath string) int {
	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegdec: %v\n", err)
		return 1
	}
	defer in.Close()

	img, err := jpeg.Decode(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegdec: decode failed: %v\n", err)
		var kind jpeg.ErrorKind
		if k, ok := jpeg.KindOf(err); ok {
			kind = k
		}
		return exitCodeFor(kind)
	}

	channels := img.NumComponents
	if channels == 4 {
		fmt.Fprintln(os.Stderr, "jpegdec: 4-component (YCbCrK) images are written as RGB, the opaque fourth channel is dropped")
		channels = 3
	}

	out := &pnm.Image{Width: img.Width, Height: img.Height, Channels: channels}
	if channels == img.NumComponents {
		out.Pixels = img.Pixels
	} else {
		out.Pixels = make([]byte, img.Width*img.Height*3)
		for i := 0; i < img.Width*img.Height; i++ {
			copy(out.Pixels[i*3:i*3+3], img.Pixels[i*4:i*4+3])
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegdec: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := pnm.Encode(f, out); err != nil {
		fmt.Fprintf(os.Stderr, "jpegdec: writing output: %v\n", err)
		return 1
	}
	return 0
}

func exitCodeFor(kind jpeg.ErrorKind) int {
	switch kind {
	case jpeg.ErrUnsupported:
		return 3
	case jpeg.ErrTruncated, jpeg.ErrInvalidParameter, jpeg.ErrInvalidCode:
		return 2
	default:
		return 1
	}
}
