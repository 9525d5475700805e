package jpeg

// Component holds everything the codec needs for one color channel
// across the whole image. It is keyed by its 8-bit component identifier
// (Cs) in Context, not by a dense array index — identifiers run 1..255
// but a frame declares at most four, so a map beats a mostly-empty
// 256-wide array. Block storage is preallocated once at SOF and owned
// exclusively by the Component for the lifetime of one decode/encode
// call.
type Component struct {
	ID uint8 // Cs, the component identifier, 1..255

	H, V uint8 // horizontal/vertical sampling factors, 1..4
	Tq   uint8 // quantization table selector, 0..3
	Td   uint8 // DC Huffman table selector, 0..3
	Ta   uint8 // AC Huffman table selector, 0..3

	BlocksX, BlocksY int // block extents b_x, b_y

	// IntBlocks holds quantized integer coefficients, natural (raster)
	// order within each block, indexed [by*BlocksX+bx][0..63].
	IntBlocks [][64]int32

	// FltBlocks holds dequantized float coefficients (after IDCT input
	// preparation) for the same block grid.
	FltBlocks [][64]float64

	// Samples is the reconstructed (decode) or source (encode) raster
	// for this component, 8*BlocksX by 8*BlocksY, row-major.
	Samples []float64
}

func newComponent(id uint8, h, v, tq uint8, blocksX, blocksY int) *Component {
	n := blocksX * blocksY
	return &Component{
		ID:        id,
		H:         h,
		V:         v,
		Tq:        tq,
		BlocksX:   blocksX,
		BlocksY:   blocksY,
		IntBlocks: make([][64]int32, n),
		FltBlocks: make([][64]float64, n),
		Samples:   make([]float64, blocksX*8*blocksY*8),
	}
}

func (c *Component) blockAt(bx, by int) *[64]int32 {
	return &c.IntBlocks[by*c.BlocksX+bx]
}

func (c *Component) sampleRowStride() int {
	return c.BlocksX * 8
}

// Context owns every table, component, and derived geometry value for
// one decode or encode call. It is populated incrementally as markers
// are parsed (decode) or built up front from caller-supplied image data
// (encode), consumed by the pipeline, and discarded after the call
// returns — there is no pooling or reuse across calls.
type Context struct {
	Width, Height int
	Precision     uint8 // sample precision P; baseline requires 8

	QTables [4]*QTable

	HTables [2][4]*HTable
	HCodes  [2][4]*HCode

	// componentOrder preserves SOF declaration order; Components is keyed
	// by ID for lookup but iteration must follow this slice.
	componentOrder []uint8
	Components     map[uint8]*Component

	RestartInterval int // Ri; 0 disables restart markers

	MaxH, MaxV int // per-component max H/V, used for MCU geometry
	MCUWide    int // m_x = ceil(X / (8*MaxH))
	MCUHigh    int // m_y = ceil(Y / (8*MaxV))
}

func newContext() *Context {
	return &Context{Components: make(map[uint8]*Component)}
}

// OrderedComponents returns the Components in SOF declaration order.
func (ctx *Context) OrderedComponents() []*Component {
	out := make([]*Component, 0, len(ctx.componentOrder))
	for _, id := range ctx.componentOrder {
		out = append(out, ctx.Components[id])
	}
	return out
}

// computeGeometry derives MaxH/MaxV and the MCU grid dimensions from the
// sampling factors declared at SOF. It does not size the Components:
// callers then set each one's block extents from the grid,
// b_x = MCUWide*H, b_y = MCUHigh*V.
func (ctx *Context) computeGeometry() {
	ctx.MaxH, ctx.MaxV = 1, 1
	for _, id := range ctx.componentOrder {
		c := ctx.Components[id]
		if int(c.H) > ctx.MaxH {
			ctx.MaxH = int(c.H)
		}
		if int(c.V) > ctx.MaxV {
			ctx.MaxV = int(c.V)
		}
	}
	ctx.MCUWide = ceilDiv(ctx.Width, 8*ctx.MaxH)
	ctx.MCUHigh = ceilDiv(ctx.Height, 8*ctx.MaxV)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Scan is the subset of components participating in the current scan,
// plus the per-component DC predictor state that resets at scan start
// and at every restart marker. It borrows Context's buffers by
// (component, MCU coordinate); it owns nothing.
type Scan struct {
	Components []*Component
	predictor  map[uint8]int32
}

func newScan(components []*Component) *Scan {
	s := &Scan{Components: components, predictor: make(map[uint8]int32, len(components))}
	s.ResetPredictors()
	return s
}

// ResetPredictors zeroes every participating component's DC predictor,
// as required at scan start and at each RSTm.
func (s *Scan) ResetPredictors() {
	for _, c := range s.Components {
		s.predictor[c.ID] = 0
	}
}
