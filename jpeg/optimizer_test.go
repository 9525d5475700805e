package jpeg

import "testing"

// totalCodes sums counts[1..16].
func totalCodes(counts [17]uint8) int {
	n := 0
	for i := 1; i <= 16; i++ {
		n += int(counts[i])
	}
	return n
}

func TestOptimizeHuffmanProducesOneCodePerSymbol(t *testing.T) {
	var freq [257]uint32
	// A skewed distribution: one very common symbol, a handful of rarer
	// ones, several singletons.
	freq[0] = 1000
	freq[5] = 300
	freq[6] = 300
	freq[200] = 5
	freq[201] = 1
	freq[202] = 1
	freq[255] = 1

	counts, vals := OptimizeHuffman(freq)

	nonZero := 0
	for i := range freq {
		if freq[i] > 0 {
			nonZero++
		}
	}
	if totalCodes(counts) != nonZero {
		t.Errorf("OptimizeHuffman assigned %d codes, want %d (one per non-zero-frequency symbol)", totalCodes(counts), nonZero)
	}
	if len(vals) != nonZero {
		t.Errorf("OptimizeHuffman returned %d symbols, want %d", len(vals), nonZero)
	}

	// Every length must fit the standard's own constraint.
	for i := 1; i <= 16; i++ {
		if counts[i] > 1<<uint(i) {
			t.Errorf("length %d has %d codes, exceeds the 2^%d codes a canonical code of that length can hold", i, counts[i], i)
		}
	}

	// The resulting table must itself build into a valid HCode (this
	// exercises the same Kraft-inequality property ReadCode/WriteCode
	// depend on).
	ht := &HTable{Class: ClassDC, Counts: counts, Symbols: vals}
	if _, err := BuildHCode(ht); err != nil {
		t.Fatalf("optimized table failed to build a huffman code: %v", err)
	}
}

func TestOptimizeHuffmanSingleSymbol(t *testing.T) {
	var freq [257]uint32
	freq[42] = 9999

	counts, vals := OptimizeHuffman(freq)
	if len(vals) != 1 || vals[0] != 42 {
		t.Fatalf("expected exactly symbol 42, got %v", vals)
	}
	if totalCodes(counts) != 1 {
		t.Fatalf("expected exactly one code, got %d", totalCodes(counts))
	}
}

func TestOptimizeHuffmanBeatsDefaultTable(t *testing.T) {
	// For any frequency distribution, the optimized table's total coded
	// size must not exceed what the fixed default AC luminance table would
	// spend on the same symbols.
	var freq [257]uint32
	freq[0x00] = 400 // EOB dominates in a smooth image
	freq[0x01] = 250
	freq[0x02] = 120
	freq[0x11] = 90
	freq[0x21] = 40
	freq[0x04] = 12
	freq[0xF0] = 3

	counts, vals := OptimizeHuffman(freq)
	opt, err := BuildHCode(&HTable{Class: ClassAC, Counts: counts, Symbols: vals})
	if err != nil {
		t.Fatalf("BuildHCode(optimized): %v", err)
	}
	def, err := BuildHCode(defaultACLuminance)
	if err != nil {
		t.Fatalf("BuildHCode(default): %v", err)
	}

	var optBits, defBits uint64
	for sym := 0; sym < 256; sym++ {
		if freq[sym] == 0 {
			continue
		}
		if !opt.has[sym] {
			t.Fatalf("optimized table assigned no code to symbol %#02x", sym)
		}
		if !def.has[sym] {
			t.Fatalf("default table has no code for symbol %#02x; pick test symbols it covers", sym)
		}
		optBits += uint64(freq[sym]) * uint64(opt.ESize[sym])
		defBits += uint64(freq[sym]) * uint64(def.ESize[sym])
	}
	if optBits > defBits {
		t.Errorf("optimized table spends %d bits, fixed default table spends %d", optBits, defBits)
	}
}

func TestOptimizeHuffmanNeverAssignsAllOnesCode(t *testing.T) {
	// Feed a repeating power-of-two decay over 40 symbols, build the
	// resulting table, and confirm that no real symbol holds the reserved
	// marker-like all-ones 16-bit code.
	var freq [257]uint32
	for i := 0; i < 40; i++ {
		freq[i] = uint32(1 << uint(i%5))
	}

	counts, vals := OptimizeHuffman(freq)
	ht := &HTable{Class: ClassAC, Counts: counts, Symbols: vals}
	h, err := BuildHCode(ht)
	if err != nil {
		t.Fatalf("BuildHCode: %v", err)
	}
	for k := range h.Size {
		if h.Size[k] == 16 && h.Code[k] == 0xFFFF {
			t.Errorf("a real symbol (%d) was assigned the reserved all-ones 16-bit code", h.Val[k])
		}
	}
}
