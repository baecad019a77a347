package analyzer

import "testing"

func TestEnhance_PreservesDimensions(t *testing.T) {
	enh := NewEnhancer()
	b, g, r := darkPurple()
	grid := circleOnWhite(64, 48, 12, b, g, r)

	out := enh.Enhance(grid)

	if out.W != grid.W || out.H != grid.H {
		t.Errorf("Expected %dx%d, got %dx%d", grid.W, grid.H, out.W, out.H)
	}
	if len(out.Pix) != len(grid.Pix) {
		t.Errorf("Expected %d bytes, got %d", len(grid.Pix), len(out.Pix))
	}
}

func TestEnhance_DoesNotMutateInput(t *testing.T) {
	enh := NewEnhancer()
	b, g, r := darkPurple()
	grid := circleOnWhite(48, 48, 10, b, g, r)
	before := grid.Clone()

	enh.Enhance(grid)

	for i := range grid.Pix {
		if grid.Pix[i] != before.Pix[i] {
			t.Fatalf("Input grid mutated at %d", i)
		}
	}
}

func TestEnhance_Deterministic(t *testing.T) {
	enh := NewEnhancer()
	b, g, r := darkPurple()
	grid := circleOnWhite(48, 48, 10, b, g, r)

	out1 := enh.Enhance(grid)
	out2 := enh.Enhance(grid)

	for i := range out1.Pix {
		if out1.Pix[i] != out2.Pix[i] {
			t.Fatalf("Enhancement differs between runs at %d", i)
		}
	}
}

func TestEnhance_ChangesLowContrastImage(t *testing.T) {
	enh := NewEnhancer()

	// A murky low-contrast frame should come back visibly adjusted.
	grid := solidTestGrid(48, 48, 100, 100, 100)
	for y := 16; y < 32; y++ {
		for x := 16; x < 32; x++ {
			grid.Set(x, y, 110, 110, 110)
		}
	}

	out := enh.Enhance(grid)

	changed := false
	for i := range out.Pix {
		if out.Pix[i] != grid.Pix[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("Expected enhancement to alter a low-contrast image")
	}
}
