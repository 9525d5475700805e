// Package pnm reads and writes the PGM (P5, grayscale) and PPM (P6, RGB)
// raster formats used by this repository's command-line tools and tests
// as an uncompressed reference format to decode into and encode from.
// It implements only the "raw" binary variants with a single
// whitespace-delimited header and no comments beyond the bare minimum,
// which is all the tools here ever emit.
package pnm

import (
	"bufio"
	"fmt"
	"io"
)

// Image is an in-memory raster: 1 channel for PGM, 3 for PPM,
// row-major, 8-bit, channel-interleaved.
type Image struct {
	Width, Height int
	Channels      int // 1 or 3
	Pixels        []byte
}

// Decode reads a raw PGM or PPM image from r, identifying the format
// from its magic number ("P5" or "P6").
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("pnm: reading magic number: %w", err)
	}
	var channels int
	switch magic {
	case "P5":
		channels = 1
	case "P6":
		channels = 3
	default:
		return nil, fmt.Errorf("pnm: unsupported magic number %q", magic)
	}

	width, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("pnm: reading width: %w", err)
	}
	height, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("pnm: reading height: %w", err)
	}
	maxVal, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("pnm: reading maxval: %w", err)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("pnm: only maxval 255 is supported, got %d", maxVal)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pnm: invalid dimensions %dx%d", width, height)
	}

	// Exactly one whitespace byte separates the header from pixel data.
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("pnm: reading header terminator: %w", err)
	}

	pixels := make([]byte, width*height*channels)
	if _, err := io.ReadFull(br, pixels); err != nil {
		return nil, fmt.Errorf("pnm: reading pixel data: %w", err)
	}

	return &Image{Width: width, Height: height, Channels: channels, Pixels: pixels}, nil
}

// Encode writes img as a raw PGM (1 channel) or PPM (3 channels) to w.
func Encode(w io.Writer, img *Image) error {
	magic := "P6"
	if img.Channels == 1 {
		magic = "P5"
	}
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n255\n", magic, img.Width, img.Height); err != nil {
		return err
	}
	_, err := w.Write(img.Pixels)
	return err
}

func readToken(br *bufio.Reader) (string, error) {
	if err := skipWhitespaceAndComments(br); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if isSpace(b) {
			if err := br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

func readInt(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	var v int
	if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
		return 0, fmt.Errorf("expected integer, got %q", tok)
	}
	return v, nil
}

func skipWhitespaceAndComments(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		if b == '#' {
			for {
				b, err := br.ReadByte()
				if err != nil {
					return err
				}
				if b == '\n' {
					break
				}
			}
			continue
		}
		if isSpace(b) {
			continue
		}
		return br.UnreadByte()
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
