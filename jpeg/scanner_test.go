package jpeg

import (
	"bytes"
	"testing"
)

func TestReadMarkerCollapsesFillBytes(t *testing.T) {
	// A run of 0xFF fill bytes collapses to the leading 0xFF of the next
	// real marker.
	s := newByteScanner(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, markerSOI}))
	m, err := s.readMarker()
	if err != nil {
		t.Fatalf("readMarker: %v", err)
	}
	if m != markerSOI {
		t.Errorf("readMarker = %#02x, want SOI", m)
	}
}

func TestReadMarkerRejectsFF00(t *testing.T) {
	s := newByteScanner(bytes.NewReader([]byte{0xFF, 0x00}))
	if _, err := s.readMarker(); err == nil {
		t.Fatal("expected an error for FF 00 (escaped 0xFF, not a marker), got nil")
	}
}

func TestReadMarkerRejectsNonFFLeadByte(t *testing.T) {
	s := newByteScanner(bytes.NewReader([]byte{0x12, 0x34}))
	_, err := s.readMarker()
	if err == nil {
		t.Fatal("expected an error where no marker starts, got nil")
	}
	if kind, ok := KindOf(err); !ok || kind != ErrInvalidParameter {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestReadU16BEAndNibblePair(t *testing.T) {
	s := newByteScanner(bytes.NewReader([]byte{0x12, 0x34, 0xAB}))
	v, err := s.readU16BE()
	if err != nil {
		t.Fatalf("readU16BE: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("readU16BE = %#04x, want 0x1234", v)
	}
	hi, lo, err := s.readNibblePair()
	if err != nil {
		t.Fatalf("readNibblePair: %v", err)
	}
	if hi != 0xA || lo != 0xB {
		t.Errorf("readNibblePair = %x/%x, want a/b", hi, lo)
	}
}

func TestReadLengthIncludesItsOwnBytes(t *testing.T) {
	s := newByteScanner(bytes.NewReader([]byte{0x00, 0x04, 0xDE, 0xAD, 0xFF, markerEOI}))
	length, err := s.readLength()
	if err != nil {
		t.Fatalf("readLength: %v", err)
	}
	if length != 4 {
		t.Fatalf("readLength = %d, want 4", length)
	}
	if err := s.skipSegment(length); err != nil {
		t.Fatalf("skipSegment: %v", err)
	}
	m, err := s.readMarker()
	if err != nil {
		t.Fatalf("readMarker after skip: %v", err)
	}
	if m != markerEOI {
		t.Errorf("skipSegment did not land on the following marker, got %#02x", m)
	}
}

func TestReadLengthRejectsTooShort(t *testing.T) {
	s := newByteScanner(bytes.NewReader([]byte{0x00, 0x01}))
	if _, err := s.readLength(); err == nil {
		t.Fatal("expected an error for a segment length below 2, got nil")
	}
}

func TestReadBytesReportsTruncation(t *testing.T) {
	s := newByteScanner(bytes.NewReader([]byte{0x01, 0x02}))
	_, err := s.readBytes(5)
	if err == nil {
		t.Fatal("expected an error reading past EOF, got nil")
	}
	if kind, ok := KindOf(err); !ok || kind != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestByteWriterPrimitives(t *testing.T) {
	var buf bytes.Buffer
	w := newByteWriter(&buf)
	if err := w.writeMarker(markerSOI); err != nil {
		t.Fatalf("writeMarker: %v", err)
	}
	if err := w.writeU16BE(0x1234); err != nil {
		t.Fatalf("writeU16BE: %v", err)
	}
	if err := w.writeNibblePair(0xA, 0xB); err != nil {
		t.Fatalf("writeNibblePair: %v", err)
	}
	if err := w.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	want := []byte{0xFF, markerSOI, 0x12, 0x34, 0xAB}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("byteWriter output = % x, want % x", buf.Bytes(), want)
	}
}
