package jpeg

import "math"

// QTable holds one quantization table in natural (raster) order. The
// wire format transmits entries in zig-zag order; the reordering
// happens only at the DQT segment boundary, in parse.go/emit.go.
type QTable struct {
	Precision uint8 // 0 = 8-bit entries, 1 = 16-bit entries
	Values    [64]int32
}

// Quantize rounds each coefficient of a float block to the nearest
// integer multiple of its quantization step.
func Quantize(block *[64]float64, q *QTable) [64]int32 {
	var out [64]int32
	for k := 0; k < 64; k++ {
		out[k] = int32(math.Round(block[k] / float64(q.Values[k])))
	}
	return out
}

// Dequantize multiplies each integer coefficient by its quantization
// step, producing the float block the IDCT consumes.
func Dequantize(block *[64]int32, q *QTable) [64]float64 {
	var out [64]float64
	for k := 0; k < 64; k++ {
		out[k] = float64(block[k]) * float64(q.Values[k])
	}
	return out
}

// sampleLuminanceQTable and sampleChrominanceQTable are the Annex K.1
// "sample" quantization tables (Tables K.1/K.2), given in the standard
// at quality ~50 and stored here in raster order. scaledQuantTable
// rescales them to an arbitrary 1..100 quality using the piecewise
// linear scale factor the IJG encoders popularized.
var sampleLuminanceQTableRaster = [64]int32{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

var sampleChrominanceQTableRaster = [64]int32{
	17, 18, 24, 47, 99, 99, 99, 99,
	18, 21, 26, 66, 99, 99, 99, 99,
	24, 26, 56, 99, 99, 99, 99, 99,
	47, 66, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
}

var sampleLuminanceQTable = rasterize(sampleLuminanceQTableRaster)
var sampleChrominanceQTable = rasterize(sampleChrominanceQTableRaster)

// rasterize reinterprets a table given in natural raster scan order
// already (the tables above are listed row by row as Annex K prints
// them, which is raster order, not zig-zag) into a *QTable.
func rasterize(values [64]int32) *QTable {
	q := &QTable{Precision: 0}
	q.Values = values
	return q
}

// scaledQuantTable applies the IJG quality scale factor to a base table
// and clamps every entry to 1..255 (8-bit precision).
func scaledQuantTable(base *QTable, quality int) *QTable {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	var scale int
	if quality < 50 {
		scale = 5000 / quality
	} else {
		scale = 200 - quality*2
	}

	out := &QTable{Precision: base.Precision}
	for i, v := range base.Values {
		scaled := (int(v)*scale + 50) / 100
		if scaled < 1 {
			scaled = 1
		}
		if scaled > 255 {
			scaled = 255
		}
		out.Values[i] = int32(scaled)
	}
	return out
}
