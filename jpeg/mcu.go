package jpeg

// mcuBlocks returns the block coordinates, in MCU-internal order, that
// component c contributes to the MCU at grid position (mx, my): H*V
// blocks at (my*V+v, mx*H+h) for v=0..V-1, h=0..H-1. For a
// single-component (non-interleaved) scan the caller instead iterates
// the component's block grid directly in raster order — see
// nonInterleavedBlocks.
func mcuBlocks(c *Component, mx, my int) [][2]int {
	out := make([][2]int, 0, int(c.H)*int(c.V))
	for v := 0; v < int(c.V); v++ {
		for h := 0; h < int(c.H); h++ {
			by := my*int(c.V) + v
			bx := mx*int(c.H) + h
			out = append(out, [2]int{bx, by})
		}
	}
	return out
}

// nonInterleavedBlocks returns the single block coordinate for a
// single-component scan's MCU-equivalent step n, progressing in raster
// order over the component's own block grid (a non-interleaved scan's
// MCU degenerates to a single 8x8 block).
func nonInterleavedBlocks(c *Component, n int) [2]int {
	return [2]int{n % c.BlocksX, n / c.BlocksX}
}

// upsampleToFrame expands a component's reconstructed sample grid to
// the full frame grid by nearest-neighbor replication with step
// (MaxH/H, MaxV/V), then crops to the image's true width/height.
// Returns a row-major float64 raster sized Width x Height.
func upsampleToFrame(ctx *Context, c *Component) []float64 {
	stepX := ctx.MaxH / int(c.H)
	stepY := ctx.MaxV / int(c.V)
	srcStride := c.sampleRowStride()

	out := make([]float64, ctx.Width*ctx.Height)
	for y := 0; y < ctx.Height; y++ {
		sy := y / stepY
		for x := 0; x < ctx.Width; x++ {
			sx := x / stepX
			out[y*ctx.Width+x] = c.Samples[sy*srcStride+sx]
		}
	}
	return out
}

// downsampleComponent produces a component's sample grid from a
// full-resolution frame raster, used by the encoder when a component's
// sampling factors are below MaxH/MaxV. Every stepX*stepY block of frame
// samples is averaged into one component sample, the encode-side
// counterpart of the decoder's nearest-neighbor expansion.
func downsampleComponent(ctx *Context, c *Component, frame []float64) {
	stepX := ctx.MaxH / int(c.H)
	stepY := ctx.MaxV / int(c.V)
	stride := c.sampleRowStride()
	height := c.BlocksY * 8

	for cy := 0; cy < height; cy++ {
		for cx := 0; cx < stride; cx++ {
			var sum float64
			var n int
			for dy := 0; dy < stepY; dy++ {
				fy := cy*stepY + dy
				if fy >= ctx.Height {
					continue
				}
				for dx := 0; dx < stepX; dx++ {
					fx := cx*stepX + dx
					if fx >= ctx.Width {
						continue
					}
					sum += frame[fy*ctx.Width+fx]
					n++
				}
			}
			if n == 0 {
				// Padding region past the image edge: replicate the
				// nearest in-bounds sample rather than leaving 0.
				fy := clampInt(cy*stepY, 0, ctx.Height-1)
				fx := clampInt(cx*stepX, 0, ctx.Width-1)
				sum = frame[fy*ctx.Width+fx]
				n = 1
			}
			c.Samples[cy*stride+cx] = sum / float64(n)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
