package jpeg

// emitHeader writes SOI, one DQT per populated quantization table, SOF0,
// DRI (if a restart interval is configured), and one DHT per populated
// Huffman table, in that order. It does not write SOS or any
// entropy-coded data; callers emit those via emitSOS/encodeScan.
func emitHeader(w *byteWriter, ctx *Context) error {
	if err := w.writeMarker(markerSOI); err != nil {
		return err
	}

	for tq, q := range ctx.QTables {
		if q == nil {
			continue
		}
		if err := emitDQT(w, uint8(tq), q); err != nil {
			return err
		}
	}

	if err := emitSOF0(w, ctx); err != nil {
		return err
	}

	if ctx.RestartInterval > 0 {
		if err := emitDRI(w, ctx.RestartInterval); err != nil {
			return err
		}
	}

	for class := 0; class < 2; class++ {
		for sel, t := range ctx.HTables[class] {
			if t == nil {
				continue
			}
			if err := emitDHT(w, TableClass(class), uint8(sel), t); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitDQT(w *byteWriter, tq uint8, q *QTable) error {
	if err := w.writeMarker(markerDQT); err != nil {
		return err
	}
	var length uint16
	if q.Precision == 0 {
		length = 2 + 1 + 64
	} else {
		length = 2 + 1 + 128
	}
	if err := w.writeU16BE(length); err != nil {
		return err
	}
	if err := w.writeNibblePair(q.Precision, tq); err != nil {
		return err
	}
	for i := 0; i < 64; i++ {
		v := q.Values[zigzag[i]]
		if q.Precision == 0 {
			if err := w.writeByte(byte(v)); err != nil {
				return err
			}
		} else {
			if err := w.writeU16BE(uint16(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitSOF0(w *byteWriter, ctx *Context) error {
	if err := w.writeMarker(markerSOF0); err != nil {
		return err
	}
	comps := ctx.OrderedComponents()
	length := uint16(2 + 1 + 2 + 2 + 1 + 3*len(comps))
	if err := w.writeU16BE(length); err != nil {
		return err
	}
	if err := w.writeByte(ctx.Precision); err != nil {
		return err
	}
	if err := w.writeU16BE(uint16(ctx.Height)); err != nil {
		return err
	}
	if err := w.writeU16BE(uint16(ctx.Width)); err != nil {
		return err
	}
	if err := w.writeByte(byte(len(comps))); err != nil {
		return err
	}
	for _, c := range comps {
		if err := w.writeByte(c.ID); err != nil {
			return err
		}
		if err := w.writeNibblePair(c.H, c.V); err != nil {
			return err
		}
		if err := w.writeByte(c.Tq); err != nil {
			return err
		}
	}
	return nil
}

func emitDRI(w *byteWriter, ri int) error {
	if err := w.writeMarker(markerDRI); err != nil {
		return err
	}
	if err := w.writeU16BE(4); err != nil {
		return err
	}
	return w.writeU16BE(uint16(ri))
}

func emitDHT(w *byteWriter, class TableClass, sel uint8, t *HTable) error {
	if err := w.writeMarker(markerDHT); err != nil {
		return err
	}
	total := 0
	for i := 1; i <= 16; i++ {
		total += int(t.Counts[i])
	}
	length := uint16(2 + 1 + 16 + total)
	if err := w.writeU16BE(length); err != nil {
		return err
	}
	if err := w.writeNibblePair(uint8(class), sel); err != nil {
		return err
	}
	for i := 1; i <= 16; i++ {
		if err := w.writeByte(t.Counts[i]); err != nil {
			return err
		}
	}
	return w.write(t.Symbols)
}

// emitSOS writes the SOS segment header for the given scan components,
// in the order they should be interleaved within each MCU.
func emitSOS(w *byteWriter, ctx *Context, comps []*Component) error {
	if err := w.writeMarker(markerSOS); err != nil {
		return err
	}
	length := uint16(2 + 1 + 2*len(comps) + 3)
	if err := w.writeU16BE(length); err != nil {
		return err
	}
	if err := w.writeByte(byte(len(comps))); err != nil {
		return err
	}
	for _, c := range comps {
		if err := w.writeByte(c.ID); err != nil {
			return err
		}
		if err := w.writeNibblePair(c.Td, c.Ta); err != nil {
			return err
		}
	}
	// Ss, Se, Ah|Al: fixed at 0, 63, 0 for baseline sequential.
	if err := w.writeByte(0); err != nil {
		return err
	}
	if err := w.writeByte(63); err != nil {
		return err
	}
	return w.writeByte(0)
}

func emitEOI(w *byteWriter) error {
	return w.writeMarker(markerEOI)
}
