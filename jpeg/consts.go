package jpeg

// Marker byte values (the second byte of the 0xFF xx pair). Multi-byte
// segment lengths and bodies are documented in parse.go / emit.go.
const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerDQT  = 0xDB
	markerDHT  = 0xC4
	markerDRI  = 0xDD
	markerCOM  = 0xFE
	markerSOF0 = 0xC0 // baseline sequential DCT; the only SOF this codec produces or accepts
	markerRST0 = 0xD0
	markerRST7 = 0xD7
	markerAPP0 = 0xE0
	markerAPPF = 0xEF
)

// isRST reports whether m is one of the eight restart markers.
func isRST(m uint8) bool {
	return m >= markerRST0 && m <= markerRST7
}

// isAPPn reports whether m is one of the sixteen application segments.
func isAPPn(m uint8) bool {
	return m >= markerAPP0 && m <= markerAPPF
}

// isUnsupportedSOF reports whether m is an SOFn marker this codec does not
// implement (progressive, lossless, differential, arithmetic-coded, ...).
// SOF0 is handled separately; SOF4/SOF8/SOF12 are reserved and never appear.
func isUnsupportedSOF(m uint8) bool {
	switch m {
	case 0xC1, 0xC2, 0xC3, 0xC5, 0xC6, 0xC7, 0xC9, 0xCA, 0xCB, 0xCD, 0xCE, 0xCF:
		return true
	default:
		return false
	}
}

// zigzag maps a zig-zag transmission index k to its raster position in
// an 8x8 block. Position 0 is DC; 1..63 are ordered to concentrate
// energy first. This table and its inverse are the one fixed
// permutation used throughout the codec.
var zigzag = [64]uint8{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// invZigzag is the inverse permutation: invZigzag[raster] = zigzag index.
var invZigzag [64]uint8

func init() {
	for k, raster := range zigzag {
		invZigzag[raster] = uint8(k)
	}
}

// TableClass distinguishes DC from AC Huffman tables.
type TableClass int

const (
	ClassDC TableClass = 0
	ClassAC TableClass = 1
)

func (c TableClass) String() string {
	if c == ClassDC {
		return "DC"
	}
	return "AC"
}
