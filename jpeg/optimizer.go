package jpeg

// OptimizeHuffman derives an optimal canonical Huffman code from
// observed symbol frequencies, per Annex K.2.
//
// freq[256] is the sentinel slot the caller does not need to populate:
// OptimizeHuffman sets it to 1 itself, before running codeSize, so the
// all-ones code of the longest length is never assigned to a real
// symbol.
func OptimizeHuffman(freq [257]uint32) (counts [17]uint8, vals []uint8) {
	freq[256] = 1 // must be set before the merge loop runs

	codesize := codeSize(freq)
	bits := countBits(codesize)
	adjustBits(&bits)
	vals = sortInput(codesize)

	for i := 1; i <= 16; i++ {
		counts[i] = bits[i]
	}
	return counts, vals
}

// codeSize implements Annex K.2's merge-tree loop: while two non-zero
// frequencies exist, merge the two smallest, accumulating the merged
// frequency into the first and walking the others[] chain to bump
// codesize[] for every member of the subtree being merged.
func codeSize(freq [257]uint32) (codesize [257]uint8) {
	var others [257]int32
	for i := range others {
		others[i] = -1
	}
	f := freq

	for {
		v1, ok1 := leastFrequent(f, -1)
		if !ok1 {
			break
		}
		v2, ok2 := leastFrequent(f, v1)
		if !ok2 {
			break
		}

		f[v1] += f[v2]
		f[v2] = 0

		for c := int32(v1); c != -1; c = others[c] {
			codesize[c]++
			if others[c] == -1 {
				others[c] = v2
				break
			}
		}
		for c := int32(v2); c != -1; c = others[c] {
			codesize[c]++
			if others[c] == -1 {
				break
			}
		}
	}
	return codesize
}

// leastFrequent finds, over all symbols with non-zero frequency except
// exclude, the one with the smallest frequency, preferring the largest
// symbol index on ties (Annex K.2's FIND-V1/FIND-V2).
func leastFrequent(freq [257]uint32, exclude int32) (int32, bool) {
	best := int32(-1)
	var bestFreq uint32
	for i := int32(256); i >= 0; i-- {
		if i == exclude || freq[i] == 0 {
			continue
		}
		if best == -1 || freq[i] < bestFreq {
			best = i
			bestFreq = freq[i]
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// countBits histograms codesize[] into bits[1..32].
func countBits(codesize [257]uint8) (bits [33]uint8) {
	for _, cs := range codesize {
		if cs > 0 {
			bits[cs]++
		}
	}
	return bits
}

// adjustBits limits code lengths to 16 bits (figure K.3): while any
// code exceeds 16 bits, swap a code at the offending length for two
// codes one bit shorter, taken from the longest length below i-1 that
// still has any codes, then strip the sentinel's own entry.
func adjustBits(bits *[33]uint8) {
	for i := 32; i > 16; i-- {
		for bits[i] > 0 {
			j := i - 2
			for j > 0 && bits[j] == 0 {
				j--
			}
			bits[i] -= 2
			bits[i-1]++
			bits[j+1] += 2
			bits[j]--
		}
	}
	for i := 16; i > 0; i-- {
		if bits[i] > 0 {
			bits[i]--
			break
		}
	}
}

// sortInput emits huff_val[] sorted by (codesize ascending, symbol
// ascending), excluding the sentinel symbol 256.
func sortInput(codesize [257]uint8) []uint8 {
	var vals []uint8
	for length := 1; length <= 32; length++ {
		for sym := 0; sym < 256; sym++ {
			if codesize[sym] == uint8(length) {
				vals = append(vals, uint8(sym))
			}
		}
	}
	return vals
}

// buildOptimizedHuffmanTables tallies DC/AC symbol frequencies across
// every already-quantized block in ctx (one table per distinct Td/Ta
// selector actually used; Encode gives luminance selector 0 and both
// chrominance components selector 1), runs OptimizeHuffman over each, and installs the results
// as this encode's Huffman tables. This is the counterpart, on the
// write side, to installMJPEGDefaultTables; an encoder that wants fixed
// tables instead uses that function via EncodeOptions.
func buildOptimizedHuffmanTables(ctx *Context) {
	type key struct {
		class TableClass
		sel   uint8
	}
	freqs := make(map[key]*[257]uint32)
	get := func(class TableClass, sel uint8) *[257]uint32 {
		k := key{class, sel}
		if freqs[k] == nil {
			freqs[k] = &[257]uint32{}
		}
		return freqs[k]
	}

	// Walk the blocks in encodeScan's MCU order, resetting the DC
	// predictors at the same restart boundaries, so every DC difference
	// encodeScan codes is counted.
	scan := newScan(ctx.OrderedComponents())
	for unit := 0; unit < ctx.MCUWide*ctx.MCUHigh; unit++ {
		if ctx.RestartInterval > 0 && unit%ctx.RestartInterval == 0 {
			scan.ResetPredictors()
		}
		for _, c := range scan.Components {
			for _, bc := range mcuBlocks(c, unit%ctx.MCUWide, unit/ctx.MCUWide) {
				block := c.blockAt(bc[0], bc[1])
				get(ClassDC, c.Td)[Category(block[0]-scan.predictor[c.ID])]++
				scan.predictor[c.ID] = block[0]
				tallyACFrequencies(block, get(ClassAC, c.Ta))
			}
		}
	}

	for k, freq := range freqs {
		counts, vals := OptimizeHuffman(*freq)
		t := &HTable{Class: k.class, Counts: counts, Symbols: vals}
		code, err := BuildHCode(t)
		if err != nil {
			// OptimizeHuffman always yields a well-formed table for any
			// non-empty frequency distribution; a real image always has
			// at least one DC and one AC symbol.
			panic("optimized huffman table failed to build: " + err.Error())
		}
		ctx.HTables[k.class][k.sel] = t
		ctx.HCodes[k.class][k.sel] = code
	}
}

// tallyACFrequencies walks a block's zig-zag AC positions the same way
// writeACCoefficients does, incrementing freq at each RRRRSSSS symbol
// (and at symEOB/symZRL) that would actually be transmitted.
func tallyACFrequencies(block *[64]int32, freq *[257]uint32) {
	run := 0
	for k := 1; k < 64; k++ {
		c := block[zigzag[k]]
		if c == 0 {
			run++
			continue
		}
		for run >= 16 {
			freq[symZRL]++
			run -= 16
		}
		cat := Category(c)
		freq[acSymbol(uint8(run), cat)]++
		run = 0
	}
	if run > 0 {
		freq[symEOB]++
	}
}
