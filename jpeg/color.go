package jpeg

// Image is the decoded (or pre-encode) raster the core hands back to
// (or accepts from) callers: plain row-major samples per channel, no
// subsampling — the subsampling/upsampling machinery in mcu.go only
// exists between the wire format and this representation.
type Image struct {
	Width, Height int
	// NumComponents is 1 (grayscale), 3 (RGB), or 4 (decoded from a
	// YCCK/Adobe-style 4-component scan into RGB with the fourth channel
	// set to opaque; see ycckToRGB). Encoding only accepts 1 or 3.
	NumComponents int
	// Pixels is row-major, component-interleaved, one byte per sample
	// (baseline 8-bit precision).
	Pixels []byte
}

const colorShift = 128 // 2^(P-1) for P=8

// ycbcrToRGB converts one Y/Cb/Cr sample triple to RGB, per the JFIF
// BT.601 formulas. Inputs and outputs are float64 in [0,255]; callers
// clamp to the valid sample range.
func ycbcrToRGB(y, cb, cr float64) (r, g, b float64) {
	cb -= colorShift
	cr -= colorShift
	r = y + 1.402*cr
	g = y - 0.34414*cb - 0.71414*cr
	b = y + 1.772*cb
	return clampSample(r), clampSample(g), clampSample(b)
}

// rgbToYCbCr is the encode-side inverse of ycbcrToRGB, using the
// standard JFIF analysis-side coefficients.
func rgbToYCbCr(r, g, b float64) (y, cb, cr float64) {
	y = 0.299*r + 0.587*g + 0.114*b
	cb = -0.168736*r - 0.331264*g + 0.5*b + colorShift
	cr = 0.5*r - 0.418688*g - 0.081312*b + colorShift
	return y, cb, cr
}

// ycckToRGB converts one Y/Cb/Cr/K sample quadruple to RGB, for the
// 4-component (YCCK/Adobe CMYK) scan case: derive C/M/"Y" (the yellow
// channel, not luma) with the same coefficients as the 3-component
// conversion, then combine each against K the way CMYK-to-RGB does,
// R = K - C*K/maxval. Decode-only; Encode never produces 4-component
// output, so there is no inverse.
func ycckToRGB(y, cb, cr, k float64) (r, g, b float64) {
	cb -= colorShift
	cr -= colorShift
	c := y + 1.402*cr
	m := y - 0.34414*cb - 0.71414*cr
	yellow := y + 1.772*cb
	const maxval = 256 // 2^8
	r = k - (c*k)/maxval
	g = k - (m*k)/maxval
	b = k - (yellow*k)/maxval
	return clampSample(r), clampSample(g), clampSample(b)
}

func clampSample(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// assembleImage produces the final Image from a decoded Context's
// per-component frame rasters (already upsampled to full resolution by
// mcu.go), dispatching on component count: 1 is grayscale identity, 3
// is YCbCr->RGB, 4 is YCCK->RGB via ycckToRGB (the fourth output
// channel is forced opaque since the true K value is consumed by the
// conversion, not carried through).
func assembleImage(ctx *Context, frames [][]float64) *Image {
	n := len(frames)
	img := &Image{Width: ctx.Width, Height: ctx.Height, NumComponents: n}
	img.Pixels = make([]byte, ctx.Width*ctx.Height*n)

	switch n {
	case 1:
		for i, v := range frames[0] {
			img.Pixels[i] = byte(clampSample(v))
		}
	case 3:
		for i := range frames[0] {
			r, g, b := ycbcrToRGB(frames[0][i], frames[1][i], frames[2][i])
			img.Pixels[i*3+0] = byte(r)
			img.Pixels[i*3+1] = byte(g)
			img.Pixels[i*3+2] = byte(b)
		}
	case 4:
		for i := range frames[0] {
			r, g, b := ycckToRGB(frames[0][i], frames[1][i], frames[2][i], frames[3][i])
			img.Pixels[i*4+0] = byte(r)
			img.Pixels[i*4+1] = byte(g)
			img.Pixels[i*4+2] = byte(b)
			img.Pixels[i*4+3] = 0xff
		}
	}
	return img
}

// splitImageToPlanes converts an Image's interleaved pixels into
// per-component float64 planes (Y/Cb/Cr for 3-component, grayscale
// identity for 1-component), the encode-side counterpart of
// assembleImage. Only called for NumComponents 1 or 3: Encode rejects
// everything else before this runs, and ycckToRGB's conversion loses
// the true K channel, so there is no well-defined 4-component inverse
// to implement here.
func splitImageToPlanes(img *Image) [][]float64 {
	n := img.NumComponents
	planes := make([][]float64, n)
	for i := range planes {
		planes[i] = make([]float64, img.Width*img.Height)
	}

	switch n {
	case 1:
		for i, p := range img.Pixels {
			planes[0][i] = float64(p)
		}
	case 3:
		for i := 0; i < img.Width*img.Height; i++ {
			r := float64(img.Pixels[i*3+0])
			g := float64(img.Pixels[i*3+1])
			b := float64(img.Pixels[i*3+2])
			y, cb, cr := rgbToYCbCr(r, g, b)
			planes[0][i], planes[1][i], planes[2][i] = y, cb, cr
		}
	}
	return planes
}
