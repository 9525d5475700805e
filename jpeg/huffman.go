package jpeg

// HTable is a Huffman table as transmitted on the wire (Annex C input):
// Counts[i] is the number of codes of length i (i = 1..16), and Symbols
// holds the Σ Counts[i] symbols in ascending-length, transmission order.
type HTable struct {
	Class   TableClass
	Counts  [17]uint8 // index 0 unused, lengths run 1..16
	Symbols []uint8
}

// HCode is the canonical Huffman code derived from an HTable by Annex C
// figures C.1-C.3: three parallel arrays indexed by position K, plus
// inverse lookups indexed by symbol for encoding.
type HCode struct {
	Size []uint8  // huff_size[K]: code length at position K
	Code []uint16 // huff_code[K]: the code bits, right-justified
	Val  []uint8  // huff_val[K]: the symbol at position K

	// Decode lookup by (length, code), Annex F.2.2.3 style.
	MinCode [17]int32
	MaxCode [17]int32 // -1 means no codes of this length
	ValPtr  [17]int32

	// Encode lookup by symbol (Annex C.3).
	ECode [256]uint16
	ESize [256]uint8
	has   [256]bool
}

// BuildHCode derives the canonical code from an HTable, per Annex C.1
// (HUFFSIZE), C.2 (HUFFCODE), and C.3 (the encoder's per-symbol
// tables), plus the decoder's min/max/valptr tables of F.2.2.3. The result is deterministic: for fixed Counts/Symbols it is
// exactly the code produced by incrementing from 0 at the shortest
// length and left-shifting the running code on every length step.
func BuildHCode(t *HTable) (*HCode, error) {
	total := 0
	for i := 1; i <= 16; i++ {
		total += int(t.Counts[i])
	}
	if total > 256 {
		return nil, newErr(ErrInvalidParameter, "huffman table has %d symbols, max 256", total)
	}
	if total == 0 {
		return nil, newErr(ErrInvalidParameter, "huffman table has no symbols")
	}
	if total != len(t.Symbols) {
		return nil, newErr(ErrInvalidParameter, "huffman table symbol count mismatch: counts sum to %d, got %d symbols", total, len(t.Symbols))
	}

	h := &HCode{
		Size: make([]uint8, total),
		Code: make([]uint16, total),
		Val:  append([]uint8(nil), t.Symbols...),
	}

	// Figure C.1: HUFFSIZE. Lay out one size entry per symbol, grouped by
	// ascending length.
	k := 0
	for length := 1; length <= 16; length++ {
		for i := uint8(0); i < t.Counts[length]; i++ {
			h.Size[k] = uint8(length)
			k++
		}
	}

	// Figure C.2: HUFFCODE. Canonical incrementing code, left-shifted
	// whenever the code length grows.
	code := uint32(0)
	si := h.Size[0]
	k = 0
	for k < total {
		for k < total && h.Size[k] == si {
			h.Code[k] = uint16(code)
			code++
			k++
		}
		if code > 1<<si {
			return nil, newErr(ErrInvalidParameter, "huffman table oversubscribed at code length %d", si)
		}
		code <<= 1
		si++
	}

	// Annex F.2.2.3: per-length min/max code and a pointer into Val/Size so
	// decode can map (length, code) back to a position without a linear
	// scan over every length.
	p := 0
	for length := 1; length <= 16; length++ {
		if t.Counts[length] == 0 {
			h.MaxCode[length] = -1
			continue
		}
		h.ValPtr[length] = int32(p)
		h.MinCode[length] = int32(h.Code[p])
		p += int(t.Counts[length])
		h.MaxCode[length] = int32(h.Code[p-1])
	}

	// Encode-direction inverse lookup by symbol (figure C.3).
	for i := 0; i < total; i++ {
		sym := h.Val[i]
		h.ECode[sym] = h.Code[i]
		h.ESize[sym] = h.Size[i]
		h.has[sym] = true
	}

	return h, nil
}

// QueryCode scans the Size/Code parallel arrays for an exact match on
// both size and bits, returning the symbol at that position. ReadCode
// below uses the faster min/max/valptr form of the same table for the
// actual bit-stream decode path.
func QueryCode(h *HCode, size uint8, code uint16) (symbol uint8, found bool) {
	for k := range h.Size {
		if h.Size[k] == size && h.Code[k] == code {
			return h.Val[k], true
		}
	}
	return 0, false
}

// ReadCode accumulates a code one bit at a time, probing the per-length
// min/max bounds after each bit, and returns on first match (Annex
// F.2.2.3).
func ReadCode(r *bitReader, h *HCode) (uint8, error) {
	code := int32(0)
	for length := 1; length <= 16; length++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		code = (code << 1) | int32(bit)
		if h.MaxCode[length] >= 0 && code <= h.MaxCode[length] && code >= h.MinCode[length] {
			idx := h.ValPtr[length] + (code - h.MinCode[length])
			return h.Val[idx], nil
		}
	}
	return 0, newErr(ErrInvalidCode, "no huffman code matched within 16 bits")
}

// WriteCode looks up the (size, code) for symbol and emits size bits
// MSB-first.
func WriteCode(w *bitWriter, h *HCode, symbol uint8) error {
	if !h.has[symbol] {
		return newErr(ErrLogic, "no huffman code assigned to symbol %d", symbol)
	}
	return w.WriteBits(uint32(h.ECode[symbol]), int(h.ESize[symbol]))
}
