package tile

// Rect is an axis-aligned integer pixel rectangle, min-inclusive and
// max-exclusive like image.Rectangle, kept as its own type so this
// package doesn't need to import image for such a small shape.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing both r and o. Union
// with an empty rectangle returns the other operand unchanged.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// DirtyRects accumulates invalidation rectangles across an atomic
// region (§3 "Dirty bounding box(es)", §4.G begin_atomic/end_atomic).
// Each symmetry clone gets its own slot, per §4.G step 6 ("assign each
// clone's contribution to an independent bounding-box slot when
// multiple are tracked"), so a caller can tell which clone touched
// which region without re-deriving it.
type DirtyRects struct {
	slots []Rect
}

// Reset clears the accumulator and sizes it for n independent slots
// (slot 0 is the primary dab, slots 1..n-1 are symmetry clones).
func (d *DirtyRects) Reset(n int) {
	if cap(d.slots) < n {
		d.slots = make([]Rect, n)
		return
	}
	d.slots = d.slots[:n]
	for i := range d.slots {
		d.slots[i] = Rect{}
	}
}

// Expand grows slot i's rectangle to also cover r. Growing a slot
// beyond the number sized by Reset is a programming error and panics,
// since it would silently drop a clone's invalidation region.
func (d *DirtyRects) Expand(slot int, r Rect) {
	d.slots[slot] = d.slots[slot].Union(r)
}

// Rects returns the non-empty rectangles accumulated so far, one per
// slot that received at least one Expand call. The returned slice is
// only valid until the next Reset.
func (d *DirtyRects) Rects() []Rect {
	out := make([]Rect, 0, len(d.slots))
	for _, r := range d.slots {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}
