// Package compare implements the raster-quality metrics the
// command-line comparator and this repository's lossy round-trip tests
// use to judge a decoded image against a reference.
package compare

import (
	"fmt"
	"math"
)

// PSNR computes the peak signal-to-noise ratio, in dB, between two
// equal-length byte slices of 8-bit samples. Identical inputs report
// +Inf, matching the conventional definition's behavior at zero error.
func PSNR(a, b []byte) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("compare: PSNR operands have different lengths (%d vs %d)", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("compare: PSNR operands are empty")
	}

	var sumSquares float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sumSquares += d * d
	}
	mse := sumSquares / float64(len(a))
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10((255*255)/mse), nil
}

// MaxAbsoluteError returns the largest per-sample absolute difference
// between a and b, used by tests asserting lossless round-trip
// properties where PSNR's averaging would hide a single outlier pixel.
func MaxAbsoluteError(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("compare: operands have different lengths (%d vs %d)", len(a), len(b))
	}
	max := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max, nil
}
