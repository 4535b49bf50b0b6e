package tile

import "testing"

func TestPoolGetIsZeroed(t *testing.T) {
	p := NewPool()
	tl := p.Get()
	tl.Set(0, 0, 1, 2, 3, 4)
	p.Put(tl)

	tl2 := p.Get()
	r, g, b, a := tl2.At(0, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("reused tile not zeroed: (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestPoolPutNilIsNoop(t *testing.T) {
	p := NewPool()
	p.Put(nil)
}
