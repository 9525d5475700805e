package jpeg

import "testing"

func TestDefaultTablesBuildValidHuffmanCodes(t *testing.T) {
	tables := []*HTable{defaultDCLuminance, defaultDCChrominance, defaultACLuminance, defaultACChrominance}
	for i, tbl := range tables {
		if _, err := BuildHCode(tbl); err != nil {
			t.Errorf("table %d failed to build: %v", i, err)
		}
		total := 0
		for c := 1; c <= 16; c++ {
			total += int(tbl.Counts[c])
		}
		if total != len(tbl.Symbols) {
			t.Errorf("table %d: counts sum to %d but has %d symbols", i, total, len(tbl.Symbols))
		}
	}
}

func TestInstallMJPEGDefaultTablesSkipsExplicitTables(t *testing.T) {
	ctx := newContext()
	ctx.componentOrder = []uint8{1, 2}
	ctx.Components[1] = newComponentPlaceholder(1, 1, 1, 0)
	ctx.Components[2] = newComponentPlaceholder(2, 1, 1, 1)
	ctx.Components[1].Td, ctx.Components[1].Ta = 0, 0
	ctx.Components[2].Td, ctx.Components[2].Ta = 1, 1

	explicit := &HTable{Class: ClassDC, Counts: [17]uint8{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, Symbols: []uint8{7}}
	explicitCode, err := BuildHCode(explicit)
	if err != nil {
		t.Fatalf("BuildHCode: %v", err)
	}
	ctx.HTables[ClassDC][0] = explicit
	ctx.HCodes[ClassDC][0] = explicitCode

	installMJPEGDefaultTables(ctx)

	if ctx.HTables[ClassDC][0] != explicit {
		t.Error("installMJPEGDefaultTables overwrote an explicitly installed table")
	}
	if ctx.HTables[ClassAC][0] == nil {
		t.Error("expected the luminance AC default to be installed at selector 0")
	}
	if ctx.HTables[ClassDC][1] == nil || ctx.HTables[ClassAC][1] == nil {
		t.Error("expected chrominance defaults to be installed at selector 1")
	}
}

func TestInstallMJPEGDefaultTablesPicksLuminanceForComponentOne(t *testing.T) {
	ctx := newContext()
	ctx.componentOrder = []uint8{1}
	ctx.Components[1] = newComponentPlaceholder(1, 1, 1, 0)
	ctx.Components[1].Td, ctx.Components[1].Ta = 0, 0

	installMJPEGDefaultTables(ctx)

	if ctx.HTables[ClassDC][0] != defaultDCLuminance {
		t.Error("expected component ID 1 to receive the luminance DC default")
	}
	if ctx.HTables[ClassAC][0] != defaultACLuminance {
		t.Error("expected component ID 1 to receive the luminance AC default")
	}
}
