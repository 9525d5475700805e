package jpeg

// parseResult accumulates everything parseMarkers discovers before the
// first SOS, ready for the scan decoder.
type parseResult struct {
	ctx     *Context
	sawDHT  bool
	sofSeen bool
}

// parseMarkers drives the decode-side marker state machine. It consumes
// markers up to and including the first SOS segment header, dispatching
// DQT/SOF0/DHT/DRI/APPn/COM freely in between, and returns the
// populated Context plus the ordered list of components participating
// in the scan that's about to start. If SOS arrives with no DHT yet
// seen, the MJPEG default tables are installed in its place.
func parseMarkers(s *byteScanner) (*parseResult, []*Component, error) {
	pr := &parseResult{ctx: newContext()}

	marker, err := s.readMarker()
	if err != nil {
		return nil, nil, err
	}
	if marker != markerSOI {
		return nil, nil, newErr(ErrInvalidParameter, "stream does not start with SOI")
	}

	for {
		marker, err := s.readMarker()
		if err != nil {
			return nil, nil, err
		}

		switch {
		case marker == markerSOF0:
			if pr.sofSeen {
				return nil, nil, newErr(ErrInvalidParameter, "multiple SOF markers")
			}
			if err := parseSOF(s, pr.ctx); err != nil {
				return nil, nil, err
			}
			pr.sofSeen = true

		case isUnsupportedSOF(marker):
			return nil, nil, newErr(ErrUnsupported, "SOF marker %#02x not supported (baseline sequential only)", marker)

		case marker == markerDQT:
			if err := parseDQT(s, pr.ctx); err != nil {
				return nil, nil, err
			}

		case marker == markerDHT:
			if err := parseDHT(s, pr.ctx); err != nil {
				return nil, nil, err
			}
			pr.sawDHT = true

		case marker == markerDRI:
			if err := parseDRI(s, pr.ctx); err != nil {
				return nil, nil, err
			}

		case marker == markerCOM:
			length, err := s.readLength()
			if err != nil {
				return nil, nil, err
			}
			if err := s.skipSegment(length); err != nil {
				return nil, nil, err
			}

		case isAPPn(marker):
			length, err := s.readLength()
			if err != nil {
				return nil, nil, err
			}
			if err := s.skipSegment(length); err != nil {
				return nil, nil, err
			}

		case marker == markerSOS:
			if !pr.sofSeen {
				return nil, nil, newErr(ErrInvalidParameter, "SOS before SOF")
			}
			scanComponents, err := parseSOS(s, pr.ctx)
			if err != nil {
				return nil, nil, err
			}
			if !pr.sawDHT {
				installMJPEGDefaultTables(pr.ctx)
			}
			return pr, scanComponents, nil

		case marker == markerEOI:
			return nil, nil, newErr(ErrInvalidParameter, "EOI before any scan")

		default:
			return nil, nil, newErr(ErrUnsupported, "unrecognized mandatory marker %#02x", marker)
		}
	}
}

// nextAfterScan reads whatever follows a completed scan: either EOI
// (the normal case) or another tables/misc sequence leading to a
// further SOS. Encode only ever emits one scan, but multi-scan input
// is still decodable.
func nextAfterScan(s *byteScanner, ctx *Context) (done bool, scanComponents []*Component, err error) {
	for {
		marker, err := s.readMarker()
		if err != nil {
			return false, nil, err
		}
		switch {
		case marker == markerEOI:
			return true, nil, nil
		case marker == markerDQT:
			if err := parseDQT(s, ctx); err != nil {
				return false, nil, err
			}
		case marker == markerDHT:
			if err := parseDHT(s, ctx); err != nil {
				return false, nil, err
			}
		case marker == markerDRI:
			if err := parseDRI(s, ctx); err != nil {
				return false, nil, err
			}
		case marker == markerCOM, isAPPn(marker):
			length, err := s.readLength()
			if err != nil {
				return false, nil, err
			}
			if err := s.skipSegment(length); err != nil {
				return false, nil, err
			}
		case marker == markerSOS:
			comps, err := parseSOS(s, ctx)
			if err != nil {
				return false, nil, err
			}
			installMJPEGDefaultTables(ctx)
			return false, comps, nil
		default:
			return false, nil, newErr(ErrUnsupported, "unrecognized marker %#02x after scan", marker)
		}
	}
}

func parseSOF(s *byteScanner, ctx *Context) error {
	length, err := s.readLength()
	if err != nil {
		return err
	}
	data, err := s.readBytes(int(length) - 2)
	if err != nil {
		return err
	}
	if len(data) < 6 {
		return newErr(ErrTruncated, "SOF segment too short")
	}

	precision := data[0]
	if precision != 8 {
		return newErr(ErrUnsupported, "%d-bit precision not supported", precision)
	}
	ctx.Precision = precision
	ctx.Height = int(data[1])<<8 | int(data[2])
	ctx.Width = int(data[3])<<8 | int(data[4])
	nf := int(data[5])
	if ctx.Width == 0 || ctx.Height == 0 {
		return newErr(ErrInvalidParameter, "image dimensions cannot be zero")
	}
	if nf < 1 || nf > 4 {
		return newErr(ErrInvalidParameter, "unsupported component count %d", nf)
	}
	if len(data) < 6+nf*3 {
		return newErr(ErrTruncated, "SOF segment too short for %d components", nf)
	}

	pos := 6
	for i := 0; i < nf; i++ {
		id := data[pos]
		hv := data[pos+1]
		tq := data[pos+2]
		h, v := hv>>4, hv&0x0F
		if h == 0 || h > 4 || v == 0 || v > 4 {
			return newErr(ErrInvalidParameter, "invalid sampling factors %d/%d for component %d", h, v, id)
		}
		if tq > 3 {
			return newErr(ErrInvalidParameter, "quantization table selector %d out of range", tq)
		}
		ctx.componentOrder = append(ctx.componentOrder, id)
		ctx.Components[id] = newComponentPlaceholder(id, h, v, tq)
		pos += 3
	}

	ctx.computeGeometry()
	for _, id := range ctx.componentOrder {
		c := ctx.Components[id]
		blocksX := ctx.MCUWide * int(c.H)
		blocksY := ctx.MCUHigh * int(c.V)
		*c = *newComponent(id, c.H, c.V, c.Tq, blocksX, blocksY)
	}
	return nil
}

// newComponentPlaceholder builds a Component with sampling factors known
// but buffers not yet sized (block extents depend on MCU geometry, which
// in turn depends on every component's sampling factors, so allocation
// happens in a second pass after all components are seen).
func newComponentPlaceholder(id, h, v, tq uint8) *Component {
	return &Component{ID: id, H: h, V: v, Tq: tq}
}

func parseDQT(s *byteScanner, ctx *Context) error {
	length, err := s.readLength()
	if err != nil {
		return err
	}
	data, err := s.readBytes(int(length) - 2)
	if err != nil {
		return err
	}
	pos := 0
	for pos < len(data) {
		pq := data[pos] >> 4
		tq := data[pos] & 0x0F
		pos++
		if tq > 3 {
			return newErr(ErrInvalidParameter, "quantization table index %d out of range", tq)
		}
		if pq > 1 {
			return newErr(ErrInvalidParameter, "quantization precision %d out of range", pq)
		}
		q := &QTable{Precision: pq}
		if pq == 0 {
			if pos+64 > len(data) {
				return newErr(ErrTruncated, "DQT segment too short")
			}
			for i := 0; i < 64; i++ {
				q.Values[zigzag[i]] = int32(data[pos+i])
			}
			pos += 64
		} else {
			if pos+128 > len(data) {
				return newErr(ErrTruncated, "DQT segment too short")
			}
			for i := 0; i < 64; i++ {
				q.Values[zigzag[i]] = int32(data[pos+2*i])<<8 | int32(data[pos+2*i+1])
			}
			pos += 128
		}
		ctx.QTables[tq] = q
	}
	return nil
}

func parseDHT(s *byteScanner, ctx *Context) error {
	length, err := s.readLength()
	if err != nil {
		return err
	}
	data, err := s.readBytes(int(length) - 2)
	if err != nil {
		return err
	}
	pos := 0
	for pos < len(data) {
		tc := data[pos] >> 4
		th := data[pos] & 0x0F
		pos++
		if tc > 1 || th > 3 {
			return newErr(ErrInvalidParameter, "invalid huffman table class/index %d/%d", tc, th)
		}
		if pos+16 > len(data) {
			return newErr(ErrTruncated, "DHT segment too short")
		}
		t := &HTable{Class: TableClass(tc)}
		total := 0
		for i := 1; i <= 16; i++ {
			t.Counts[i] = data[pos+i-1]
			total += int(t.Counts[i])
		}
		pos += 16
		if total > 256 || pos+total > len(data) {
			return newErr(ErrTruncated, "DHT segment too short for %d symbols", total)
		}
		t.Symbols = append([]uint8(nil), data[pos:pos+total]...)
		pos += total

		code, err := BuildHCode(t)
		if err != nil {
			return err
		}
		ctx.HTables[tc][th] = t
		ctx.HCodes[tc][th] = code
	}
	return nil
}

func parseDRI(s *byteScanner, ctx *Context) error {
	length, err := s.readLength()
	if err != nil {
		return err
	}
	data, err := s.readBytes(int(length) - 2)
	if err != nil {
		return err
	}
	if len(data) < 2 {
		return newErr(ErrTruncated, "DRI segment too short")
	}
	ctx.RestartInterval = int(data[0])<<8 | int(data[1])
	return nil
}

// parseSOS parses an SOS segment header and returns the participating
// components in scan (declaration) order, with Td/Ta applied.
func parseSOS(s *byteScanner, ctx *Context) ([]*Component, error) {
	length, err := s.readLength()
	if err != nil {
		return nil, err
	}
	data, err := s.readBytes(int(length) - 2)
	if err != nil {
		return nil, err
	}
	if len(data) < 1 {
		return nil, newErr(ErrTruncated, "SOS segment too short")
	}
	ns := int(data[0])
	if ns < 1 || ns > 4 || len(data) < 1+ns*2+3 {
		return nil, newErr(ErrInvalidParameter, "invalid scan component count %d", ns)
	}

	var comps []*Component
	pos := 1
	for i := 0; i < ns; i++ {
		id := data[pos]
		tdta := data[pos+1]
		c, ok := ctx.Components[id]
		if !ok {
			return nil, newErr(ErrInvalidParameter, "scan references undeclared component %d", id)
		}
		c.Td = tdta >> 4
		c.Ta = tdta & 0x0F
		if c.Td > 3 || c.Ta > 3 {
			return nil, newErr(ErrInvalidParameter, "invalid huffman selectors for component %d", id)
		}
		comps = append(comps, c)
		pos += 2
	}

	ss, se, ahal := data[pos], data[pos+1], data[pos+2]
	if ss != 0 || se != 63 || ahal != 0 {
		return nil, newErr(ErrInvalidParameter, "non-baseline spectral selection Ss=%d Se=%d Ah|Al=%#02x", ss, se, ahal)
	}
	return comps, nil
}
