package jpeg

import (
	"bytes"
	"testing"
)

// a small but non-trivial table: 5 symbols spread across three code
// lengths, matching the shape (not the exact values) of Annex C's own
// worked example.
func sampleHTable() *HTable {
	return &HTable{
		Class:   ClassDC,
		Counts:  [17]uint8{0, 0, 2, 1, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		Symbols: []uint8{0, 1, 2, 3, 4},
	}
}

func TestBuildHCodeCanonicalProperties(t *testing.T) {
	h, err := BuildHCode(sampleHTable())
	if err != nil {
		t.Fatalf("BuildHCode: %v", err)
	}

	if len(h.Size) != 5 || len(h.Code) != 5 || len(h.Val) != 5 {
		t.Fatalf("expected 5 entries in each parallel array, got %d/%d/%d", len(h.Size), len(h.Code), len(h.Val))
	}

	// No code may exceed its length's bit width.
	for k := range h.Size {
		if h.Code[k] >= 1<<h.Size[k] {
			t.Errorf("position %d: code %b does not fit in %d bits", k, h.Code[k], h.Size[k])
		}
	}

	// The first two symbols (length 2) must be 0b00 and 0b01.
	if h.Code[0] != 0b00 || h.Code[1] != 0b01 {
		t.Errorf("expected canonical codes 00, 01 for the first two length-2 symbols, got %b, %b", h.Code[0], h.Code[1])
	}
}

func TestQueryCodeRoundTrip(t *testing.T) {
	h, err := BuildHCode(sampleHTable())
	if err != nil {
		t.Fatalf("BuildHCode: %v", err)
	}
	for k := range h.Size {
		sym, found := QueryCode(h, h.Size[k], h.Code[k])
		if !found {
			t.Errorf("QueryCode did not find (size=%d, code=%b)", h.Size[k], h.Code[k])
		}
		if sym != h.Val[k] {
			t.Errorf("QueryCode(size=%d, code=%b) = %d, want %d", h.Size[k], h.Code[k], sym, h.Val[k])
		}
	}

	if _, found := QueryCode(h, 16, 0xFFFF); found {
		t.Error("QueryCode found a match for a code that was never assigned")
	}
}

func TestReadWriteCodeRoundTrip(t *testing.T) {
	h, err := BuildHCode(sampleHTable())
	if err != nil {
		t.Fatalf("BuildHCode: %v", err)
	}

	var buf bytes.Buffer
	byteW := newByteWriter(&buf)
	bw := newBitWriter(byteW)
	for _, sym := range h.Val {
		if err := WriteCode(bw, h, sym); err != nil {
			t.Fatalf("WriteCode(%d): %v", sym, err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := byteW.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	// Append a synthetic EOI marker so the bit reader has a clean
	// terminating marker to stop at.
	buf.Write([]byte{0xFF, 0xD9})

	br := newBitReader(newByteScanner(&buf))
	for _, want := range h.Val {
		got, err := ReadCode(br, h)
		if err != nil {
			t.Fatalf("ReadCode: %v", err)
		}
		if got != want {
			t.Errorf("ReadCode = %d, want %d", got, want)
		}
	}
}

func TestBuildHCodeRejectsSymbolCountMismatch(t *testing.T) {
	bad := sampleHTable()
	bad.Symbols = bad.Symbols[:4]
	if _, err := BuildHCode(bad); err == nil {
		t.Fatal("expected an error for mismatched counts/symbols, got nil")
	}
}
