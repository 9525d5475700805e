package jpeg

import "io"

// EncodeOptions controls how Encode quantizes, subsamples, and
// entropy-codes an Image. The zero value is a reasonable default:
// 4:2:0 subsampling, quality 85, optimized Huffman tables, no restart
// markers.
type EncodeOptions struct {
	// Quality is 1..100, scaled against the Annex K sample quantization
	// tables the same way libjpeg's IJG quality scale does. 0 is treated
	// as the default, 85.
	Quality int

	// ChromaSubsampling selects Cb/Cr sampling factors relative to luma.
	// The zero value is Subsample420.
	ChromaSubsampling ChromaMode

	// RestartInterval is Ri, the number of MCUs between RSTm markers. 0
	// (the default) disables restart markers entirely.
	RestartInterval int

	// DisableHuffmanOptimization emits the MJPEG default tables instead
	// of building Annex K.2 tables from the actual coefficient
	// statistics. Optimization is the default; disabling it saves the
	// frequency-tally pass at the cost of a slightly larger file.
	DisableHuffmanOptimization bool
}

// ChromaMode names the supported chroma subsampling layouts.
type ChromaMode int

const (
	Subsample420 ChromaMode = iota // 2x2 luma blocks per chroma block
	Subsample422                   // 2x1
	Subsample444                   // no subsampling
)

func (c ChromaMode) samplingFactors() (h, v uint8) {
	switch c {
	case Subsample422:
		return 2, 1
	case Subsample444:
		return 1, 1
	default:
		return 2, 2
	}
}

// Decode parses a complete baseline sequential JPEG stream from r and
// returns the reconstructed image. It rejects progressive, lossless,
// hierarchical, arithmetic-coded, and 12-bit streams with
// ErrUnsupported, and malformed streams with ErrInvalidParameter or
// ErrTruncated as appropriate.
func Decode(r io.Reader) (*Image, error) {
	s := newByteScanner(r)

	pr, scanComponents, err := parseMarkers(s)
	if err != nil {
		return nil, err
	}
	ctx := pr.ctx

	for {
		scan := newScan(scanComponents)
		if err := decodeScan(s, ctx, scan); err != nil {
			return nil, err
		}

		done, nextComponents, err := nextAfterScan(s, ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		scanComponents = nextComponents
	}

	frames := make([][]float64, len(ctx.componentOrder))
	for i, c := range ctx.OrderedComponents() {
		q := ctx.QTables[c.Tq]
		if q == nil {
			return nil, newErr(ErrInvalidParameter, "component %d references an unset quantization table", c.ID)
		}
		for idx := range c.IntBlocks {
			c.FltBlocks[idx] = Dequantize(&c.IntBlocks[idx], q)
			samples := InverseDCT8x8(&c.FltBlocks[idx])
			bx, by := idx%c.BlocksX, idx/c.BlocksX
			stride := c.sampleRowStride()
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					c.Samples[(by*8+y)*stride+bx*8+x] = samples[y*8+x]
				}
			}
		}
		frames[i] = upsampleToFrame(ctx, c)
	}

	return assembleImage(ctx, frames), nil
}

// Encode quantizes, subsamples, and entropy-codes img into a baseline
// sequential JPEG stream written to w.
func Encode(w io.Writer, img *Image, opts EncodeOptions) error {
	if img.NumComponents != 1 && img.NumComponents != 3 {
		return newErr(ErrUnsupported, "encoding %d-component images is not supported", img.NumComponents)
	}
	quality := opts.Quality
	if quality == 0 {
		quality = 85
	}

	ctx := newContext()
	ctx.Width, ctx.Height = img.Width, img.Height
	ctx.Precision = 8
	ctx.RestartInterval = opts.RestartInterval

	ctx.QTables[0] = scaledQuantTable(sampleLuminanceQTable, quality)
	ids := []uint8{1}
	if img.NumComponents == 3 {
		ctx.QTables[1] = scaledQuantTable(sampleChrominanceQTable, quality)
		ids = []uint8{1, 2, 3}
	}

	lh, lv := uint8(1), uint8(1)
	ch, cv := uint8(1), uint8(1)
	if img.NumComponents == 3 {
		lh, lv = opts.ChromaSubsampling.samplingFactors()
	}

	for _, id := range ids {
		h, v, tq := lh, lv, uint8(0)
		if id != 1 {
			h, v, tq = ch, cv, 1
		}
		ctx.componentOrder = append(ctx.componentOrder, id)
		ctx.Components[id] = newComponentPlaceholder(id, h, v, tq)
	}
	ctx.computeGeometry()
	for _, id := range ctx.componentOrder {
		c := ctx.Components[id]
		blocksX := ctx.MCUWide * int(c.H)
		blocksY := ctx.MCUHigh * int(c.V)
		tq := c.Tq
		*c = *newComponent(id, c.H, c.V, tq, blocksX, blocksY)
		// Conventional selector assignment: luminance uses table 0,
		// chrominance uses table 1, matching the DQT/DHT selectors
		// OrderedComponents' consumers (emit.go, mjpeg_tables.go) expect.
		if id == 1 {
			c.Td, c.Ta = 0, 0
		} else {
			c.Td, c.Ta = 1, 1
		}
	}

	planes := splitImageToPlanes(img)
	for i, c := range ctx.OrderedComponents() {
		if int(c.H) == ctx.MaxH && int(c.V) == ctx.MaxV {
			copyFrameIntoSamples(ctx, c, planes[i])
		} else {
			downsampleComponent(ctx, c, planes[i])
		}
		q := ctx.QTables[c.Tq]
		stride := c.sampleRowStride()
		for idx := range c.IntBlocks {
			bx, by := idx%c.BlocksX, idx/c.BlocksX
			var samples [64]float64
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					samples[y*8+x] = c.Samples[(by*8+y)*stride+bx*8+x]
				}
			}
			c.FltBlocks[idx] = ForwardDCT8x8(&samples)
			c.IntBlocks[idx] = Quantize(&c.FltBlocks[idx], q)
		}
	}

	if !opts.DisableHuffmanOptimization {
		buildOptimizedHuffmanTables(ctx)
	} else {
		installMJPEGDefaultTables(ctx)
	}

	s := newByteWriter(w)
	if err := emitHeader(s, ctx); err != nil {
		return err
	}
	scan := newScan(ctx.OrderedComponents())
	if err := emitSOS(s, ctx, scan.Components); err != nil {
		return err
	}
	if err := encodeScan(s, ctx, scan); err != nil {
		return err
	}
	if err := emitEOI(s); err != nil {
		return err
	}
	return s.flush()
}

// copyFrameIntoSamples fills a full-resolution (non-subsampled)
// component's Samples directly from its source plane, replicating the
// last column/row into any partial MCU at the image edges.
func copyFrameIntoSamples(ctx *Context, c *Component, frame []float64) {
	stride := c.sampleRowStride()
	for y := 0; y < c.BlocksY*8; y++ {
		sy := clampInt(y, 0, ctx.Height-1)
		for x := 0; x < stride; x++ {
			sx := clampInt(x, 0, ctx.Width-1)
			c.Samples[y*stride+x] = frame[sy*ctx.Width+sx]
		}
	}
}
