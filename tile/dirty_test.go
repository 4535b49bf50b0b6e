package tile

import "testing"

func TestDirtyRectsExpandAndUnion(t *testing.T) {
	var d DirtyRects
	d.Reset(2)
	d.Expand(0, Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20})
	d.Expand(0, Rect{MinX: 15, MinY: 5, MaxX: 25, MaxY: 15})
	d.Expand(1, Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1})

	rects := d.Rects()
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(rects))
	}
	want0 := Rect{MinX: 10, MinY: 5, MaxX: 25, MaxY: 20}
	if rects[0] != want0 {
		t.Errorf("slot 0 = %+v, want %+v", rects[0], want0)
	}
}

func TestDirtyRectsResetClears(t *testing.T) {
	var d DirtyRects
	d.Reset(1)
	d.Expand(0, Rect{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5})
	d.Reset(1)
	if len(d.Rects()) != 0 {
		t.Error("Reset should clear previous slots")
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{}).Empty() {
		t.Error("zero-value Rect should be empty")
	}
	if (Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}).Empty() {
		t.Error("1x1 Rect should not be empty")
	}
}
