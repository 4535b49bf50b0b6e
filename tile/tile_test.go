package tile

import "testing"

func TestTileSetAt(t *testing.T) {
	var tl Tile
	tl.Set(3, 5, 100, 200, 300, 400)
	r, g, b, a := tl.At(3, 5)
	if r != 100 || g != 200 || b != 300 || a != 400 {
		t.Errorf("At(3,5) = (%d,%d,%d,%d), want (100,200,300,400)", r, g, b, a)
	}
}

func TestTileAtOutOfBounds(t *testing.T) {
	var tl Tile
	tl.Set(0, 0, 1, 2, 3, 4)
	r, g, b, a := tl.At(-1, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("out-of-bounds At = (%d,%d,%d,%d), want zero", r, g, b, a)
	}
}

func TestTileReset(t *testing.T) {
	var tl Tile
	tl.Set(10, 10, 1, 1, 1, 1)
	tl.Reset()
	r, g, b, a := tl.At(10, 10)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("after Reset At(10,10) = (%d,%d,%d,%d), want zero", r, g, b, a)
	}
}

func TestPixelToIndex(t *testing.T) {
	cases := []struct {
		x, y       int
		wantTX     int
		wantTY     int
		wantLX     int
		wantLY     int
	}{
		{0, 0, 0, 0, 0, 0},
		{63, 63, 0, 0, 63, 63},
		{64, 0, 1, 0, 0, 0},
		{-1, -1, -1, -1, 63, 63},
		{-64, 0, -1, 0, 0, 0},
		{-65, 0, -2, 0, 63, 0},
	}
	for _, c := range cases {
		idx, lx, ly := PixelToIndex(c.x, c.y)
		if idx.TX != c.wantTX || idx.TY != c.wantTY || lx != c.wantLX || ly != c.wantLY {
			t.Errorf("PixelToIndex(%d,%d) = (%d,%d lx=%d ly=%d), want (%d,%d lx=%d ly=%d)",
				c.x, c.y, idx.TX, idx.TY, lx, ly, c.wantTX, c.wantTY, c.wantLX, c.wantLY)
		}
	}
}
