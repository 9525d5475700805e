package jpeg

// decodeScan reads one entropy-coded segment's worth of MCUs (or, for a
// non-interleaved single-component scan, blocks) into the participating
// components' IntBlocks, honoring the restart interval if any. It
// returns once every MCU the scan's geometry requires has been decoded;
// the caller is responsible for then resuming marker-level parsing (the
// terminating marker, RSTm or otherwise, is left unconsumed by the bit
// reader and consumed here only when it's an expected RSTm).
func decodeScan(s *byteScanner, ctx *Context, scan *Scan) error {
	br := newBitReader(s)

	totalMCUs := ctx.MCUWide * ctx.MCUHigh
	interleaved := len(scan.Components) > 1

	var totalUnits int
	if interleaved {
		totalUnits = totalMCUs
	} else {
		c := scan.Components[0]
		totalUnits = c.BlocksX * c.BlocksY
	}

	sinceRestart := 0
	restartsLeft := -1 // -1 means "no restart interval configured"
	if ctx.RestartInterval > 0 {
		restartsLeft = ctx.RestartInterval
	}

	for unit := 0; unit < totalUnits; unit++ {
		if interleaved {
			mx, my := unit%ctx.MCUWide, unit/ctx.MCUWide
			for _, c := range scan.Components {
				for _, bc := range mcuBlocks(c, mx, my) {
					if err := decodeBlock(br, ctx, scan, c, bc[0], bc[1]); err != nil {
						return err
					}
				}
			}
		} else {
			c := scan.Components[0]
			bc := nonInterleavedBlocks(c, unit)
			if err := decodeBlock(br, ctx, scan, c, bc[0], bc[1]); err != nil {
				return err
			}
		}

		sinceRestart++
		if restartsLeft > 0 && sinceRestart == restartsLeft && unit != totalUnits-1 {
			if err := consumeRestartMarker(s, br); err != nil {
				return err
			}
			scan.ResetPredictors()
			sinceRestart = 0
		}
	}
	return nil
}

func decodeBlock(br *bitReader, ctx *Context, scan *Scan, c *Component, bx, by int) error {
	dc := ctx.HCodes[ClassDC][c.Td]
	ac := ctx.HCodes[ClassAC][c.Ta]
	if dc == nil || ac == nil {
		return newErr(ErrInvalidParameter, "component %d references an unset huffman table", c.ID)
	}

	diff, err := readDCCoefficient(br, dc)
	if err != nil {
		return err
	}
	pred := scan.predictor[c.ID] + diff
	scan.predictor[c.ID] = pred

	block := c.blockAt(bx, by)
	*block = [64]int32{}
	block[0] = pred
	return readACCoefficients(br, ac, block)
}

// consumeRestartMarker reads the RSTm marker that must immediately
// follow the just-completed MCU, byte-aligning the bit reader first
// since padding bits precede the marker.
func consumeRestartMarker(s *byteScanner, br *bitReader) error {
	// Any unread bits left in the current byte are encoder padding (the
	// final byte before a marker pads with 1 bits), not data; discard
	// them without consuming another byte from the stream.
	br.nbits = 0
	if !br.atMarker {
		if err := br.refill(); err != nil && !IsNoMoreData(err) {
			return err
		}
	}
	marker, err := s.readMarker()
	if err != nil {
		return err
	}
	if !isRST(marker) {
		return newErr(ErrInvalidParameter, "expected restart marker, found %#02x", marker)
	}
	br.AlignToByteBoundary()
	return nil
}

// encodeScan is the write-side mirror of decodeScan: it walks the same
// MCU/block order and emits Huffman-coded coefficients, inserting RSTm
// markers (cycling RST0..RST7) at the configured interval.
func encodeScan(w *byteWriter, ctx *Context, scan *Scan) error {
	bw := newBitWriter(w)

	totalMCUs := ctx.MCUWide * ctx.MCUHigh
	interleaved := len(scan.Components) > 1

	var totalUnits int
	if interleaved {
		totalUnits = totalMCUs
	} else {
		c := scan.Components[0]
		totalUnits = c.BlocksX * c.BlocksY
	}

	sinceRestart := 0
	restartsLeft := -1
	if ctx.RestartInterval > 0 {
		restartsLeft = ctx.RestartInterval
	}
	rstCounter := 0

	for unit := 0; unit < totalUnits; unit++ {
		if interleaved {
			mx, my := unit%ctx.MCUWide, unit/ctx.MCUWide
			for _, c := range scan.Components {
				for _, bc := range mcuBlocks(c, mx, my) {
					if err := encodeBlock(bw, ctx, scan, c, bc[0], bc[1]); err != nil {
						return err
					}
				}
			}
		} else {
			c := scan.Components[0]
			bc := nonInterleavedBlocks(c, unit)
			if err := encodeBlock(bw, ctx, scan, c, bc[0], bc[1]); err != nil {
				return err
			}
		}

		sinceRestart++
		if restartsLeft > 0 && sinceRestart == restartsLeft && unit != totalUnits-1 {
			if err := bw.Flush(); err != nil {
				return err
			}
			if err := w.writeMarker(markerRST0 + uint8(rstCounter%8)); err != nil {
				return err
			}
			rstCounter++
			scan.ResetPredictors()
			sinceRestart = 0
		}
	}
	return bw.Flush()
}

func encodeBlock(bw *bitWriter, ctx *Context, scan *Scan, c *Component, bx, by int) error {
	dc := ctx.HCodes[ClassDC][c.Td]
	ac := ctx.HCodes[ClassAC][c.Ta]

	block := c.blockAt(bx, by)
	diff := block[0] - scan.predictor[c.ID]
	scan.predictor[c.ID] = block[0]

	if err := writeDCCoefficient(bw, dc, diff); err != nil {
		return err
	}
	return writeACCoefficients(bw, ac, block)
}
