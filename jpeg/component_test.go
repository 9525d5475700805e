package jpeg

import "testing"

func TestNewComponentAllocatesBuffersForBlockGrid(t *testing.T) {
	c := newComponent(1, 2, 1, 0, 3, 4)
	if len(c.IntBlocks) != 12 || len(c.FltBlocks) != 12 {
		t.Fatalf("expected 12 blocks, got %d int / %d flt", len(c.IntBlocks), len(c.FltBlocks))
	}
	if len(c.Samples) != 3*8*4*8 {
		t.Fatalf("samples length = %d, want %d", len(c.Samples), 3*8*4*8)
	}
	if c.sampleRowStride() != 24 {
		t.Errorf("sampleRowStride = %d, want 24", c.sampleRowStride())
	}
}

func TestComponentBlockAtAddressing(t *testing.T) {
	c := newComponent(1, 1, 1, 0, 3, 2)
	c.blockAt(2, 1)[0] = 77
	if c.IntBlocks[1*3+2][0] != 77 {
		t.Errorf("blockAt did not address the expected slice element")
	}
}

func TestOrderedComponentsFollowsSOFOrder(t *testing.T) {
	ctx := newContext()
	ctx.componentOrder = []uint8{3, 1, 2}
	ctx.Components[1] = newComponentPlaceholder(1, 1, 1, 0)
	ctx.Components[2] = newComponentPlaceholder(2, 1, 1, 1)
	ctx.Components[3] = newComponentPlaceholder(3, 1, 1, 1)

	got := ctx.OrderedComponents()
	if len(got) != 3 || got[0].ID != 3 || got[1].ID != 1 || got[2].ID != 2 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestComputeGeometryUniformSampling(t *testing.T) {
	ctx := newContext()
	ctx.Width, ctx.Height = 16, 16
	ctx.componentOrder = []uint8{1}
	ctx.Components[1] = newComponentPlaceholder(1, 1, 1, 0)
	ctx.computeGeometry()
	if ctx.MaxH != 1 || ctx.MaxV != 1 {
		t.Fatalf("MaxH/MaxV = %d/%d, want 1/1", ctx.MaxH, ctx.MaxV)
	}
	if ctx.MCUWide != 2 || ctx.MCUHigh != 2 {
		t.Fatalf("MCU grid = %dx%d, want 2x2", ctx.MCUWide, ctx.MCUHigh)
	}
}

func TestScanResetPredictorsZeroesAllComponents(t *testing.T) {
	c1 := newComponent(1, 1, 1, 0, 1, 1)
	c2 := newComponent(2, 1, 1, 1, 1, 1)
	scan := newScan([]*Component{c1, c2})
	scan.predictor[1] = 42
	scan.predictor[2] = -7

	scan.ResetPredictors()

	if scan.predictor[1] != 0 || scan.predictor[2] != 0 {
		t.Errorf("expected predictors reset to zero, got %+v", scan.predictor)
	}
}
