package jpeg

import "testing"

func TestMCUBlocksOrderingForChromaSubsampling(t *testing.T) {
	c := newComponent(1, 2, 2, 0, 4, 4)
	blocks := mcuBlocks(c, 1, 1)
	want := [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(want))
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d: got %v, want %v", i, blocks[i], want[i])
		}
	}
}

func TestNonInterleavedBlocksRasterOrder(t *testing.T) {
	c := newComponent(1, 1, 1, 0, 3, 2)
	cases := []struct {
		n    int
		want [2]int
	}{
		{0, [2]int{0, 0}},
		{1, [2]int{1, 0}},
		{2, [2]int{2, 0}},
		{3, [2]int{0, 1}},
		{5, [2]int{2, 1}},
	}
	for _, tc := range cases {
		got := nonInterleavedBlocks(c, tc.n)
		if got != tc.want {
			t.Errorf("nonInterleavedBlocks(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestUpsampleToFrameNearestNeighbor(t *testing.T) {
	ctx := &Context{Width: 4, Height: 2, MaxH: 2, MaxV: 2}
	c := newComponent(2, 1, 1, 1, 1, 1)
	// At step 2, the 4x2 frame reads source samples 0 and 1 of row 0.
	c.Samples[0] = 100
	c.Samples[1] = 100

	frame := upsampleToFrame(ctx, c)
	if len(frame) != ctx.Width*ctx.Height {
		t.Fatalf("frame size = %d, want %d", len(frame), ctx.Width*ctx.Height)
	}
	for _, v := range frame {
		if v != 100 {
			t.Errorf("expected every replicated sample to be 100, got %v", v)
		}
	}
}

func TestDownsampleComponentAverages(t *testing.T) {
	ctx := &Context{Width: 4, Height: 4, MaxH: 2, MaxV: 2}
	c := newComponent(2, 1, 1, 1, 1, 1)

	frame := make([]float64, 16)
	for i := range frame {
		frame[i] = float64(i % 2 * 100) // alternating 0/100 columns
	}
	downsampleComponent(ctx, c, frame)

	// Each 2x2 block averages two 0s and two 100s -> 50.
	for i, v := range c.Samples[:1] {
		if v != 50 {
			t.Errorf("sample %d = %v, want 50", i, v)
		}
	}
}

func TestDownsampleComponentHandlesEdgePadding(t *testing.T) {
	ctx := &Context{Width: 3, Height: 3, MaxH: 2, MaxV: 2}
	c := newComponent(2, 1, 1, 1, 1, 1)
	frame := make([]float64, 9)
	for i := range frame {
		frame[i] = 10
	}
	downsampleComponent(ctx, c, frame)

	// Component row 2 (cy=2) maps to frame rows 4-5, entirely past
	// ctx.Height=3: every source pixel in that 2x2 block is out of
	// bounds, forcing the nearest-in-bounds-sample fallback.
	idx := 2*c.sampleRowStride() + 0
	if c.Samples[idx] != 10 {
		t.Errorf("expected edge padding to replicate the nearest in-bounds sample, got %v", c.Samples[idx])
	}
}
