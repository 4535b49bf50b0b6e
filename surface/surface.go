// Package surface implements the surface facade (§4.G): the draw_dab and
// get_color entry points brush dynamics drives, plus the begin_atomic/
// end_atomic pair that flushes the per-tile operation queue built up by
// draw_dab into actual pixel writes.
package surface

import (
	"math"
	"math/rand/v2"

	"github.com/inkwell/paintcore"
	"github.com/inkwell/paintcore/blend"
	"github.com/inkwell/paintcore/getcolor"
	"github.com/inkwell/paintcore/mask"
	"github.com/inkwell/paintcore/queue"
	"github.com/inkwell/paintcore/symmetry"
	"github.com/inkwell/paintcore/tile"
)

// threadSafeProvider is implemented by tile.Provider backends (tile.Store
// among them) whose tile requests may be issued concurrently.
type threadSafeProvider interface {
	ThreadSafe() bool
}

// parallelThreshold is the tile count above which end_atomic fans work
// out to a worker pool, per §5 ("more than 3 tiles involved").
const parallelThreshold = 3

// randSource is the uniform draw getcolor.Accumulate needs; satisfied by
// *rand.Rand from math/rand/v2.
type randSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Surface is the brush engine's tiled compositing front end: it owns the
// operation queue and symmetry engine and drives a tile.Provider through
// the request/release protocol.
type Surface struct {
	provider tile.Provider
	ops      *queue.Queue
	sym      *symmetry.Engine
	dirty    tile.DirtyRects
	pool     *tile.WorkerPool
	rng      randSource
}

// Option configures a Surface at construction.
type Option func(*Surface)

// WithWorkerPool enables the opt-in parallel fan-out of §5 inside
// end_atomic, using pool to distribute per-tile work. GetColor does not
// use the pool; it always visits its tiles one after another.
func WithWorkerPool(pool *tile.WorkerPool) Option {
	return func(s *Surface) { s.pool = pool }
}

// WithRandSource overrides the uniform random source GetColor's
// probability-sampled accumulation draws from. Tests that need
// deterministic sampling can supply their own.
func WithRandSource(r randSource) Option {
	return func(s *Surface) { s.rng = r }
}

// New creates a Surface backed by provider, with an empty operation queue
// and no active symmetry.
func New(provider tile.Provider, opts ...Option) *Surface {
	s := &Surface{
		provider: provider,
		ops:      queue.New(),
		sym:      symmetry.NewEngine(),
		rng:      globalRand{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dirty.Reset(1)
	return s
}

// SetSymmetry stages a symmetry change, effective at the next BeginAtomic.
func (s *Surface) SetSymmetry(state symmetry.State) { s.sym.Set(state) }

// DabParams is the full parameter set for one DrawDab call (§4.G).
type DabParams struct {
	X, Y         float64
	Radius       float64
	R, G, B, A   uint16 // premultiplied source color; A doubles as the partial-load "erase_alpha"
	Opaque       float64
	Hardness     float64
	Aspect       float64
	Angle        float64 // degrees
	LockAlpha    float64
	Colorize     float64
	Posterize    float64
	PosterizeNum int
	Paint        float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func floorDivInt(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// tileRange returns the inclusive tile-index range [lo, hi] covering the
// pixel span [lo2, hi2], per §4.G step 3's "tx in floor(floor(v)/T)".
func tileRange(lo2, hi2 float64) (lo, hi int) {
	lo = floorDivInt(int(math.Floor(lo2)), tile.Size)
	hi = floorDivInt(int(math.Floor(hi2)), tile.Size)
	return lo, hi
}

// DrawDab implements §4.G draw_dab: it clamps and validates the dab,
// builds an operation per affected tile, expands the dirty bounding box,
// and — if symmetry is active — repeats the whole process once per clone
// matrix, each clone getting its own dirty-bbox slot.
func (s *Surface) DrawDab(p DabParams) {
	if p.Radius < 0.1 || p.Hardness == 0 || p.Opaque == 0 {
		return
	}
	p.Opaque = clamp01(p.Opaque)
	p.Hardness = clamp01(p.Hardness)
	p.LockAlpha = clamp01(p.LockAlpha)
	p.Colorize = clamp01(p.Colorize)
	p.Posterize = clamp01(p.Posterize)
	p.Paint = clamp01(p.Paint)
	if p.Aspect < 1 {
		p.Aspect = 1
	}
	if p.PosterizeNum < 2 {
		p.PosterizeNum = 2
	}
	normal := (1 - p.LockAlpha) * (1 - p.Colorize) * (1 - p.Posterize)

	mats := s.sym.Matrices()

	s.enqueueClone(0, p.X, p.Y, p.Angle, p, normal)
	for i, m := range mats {
		pt := m.TransformPoint(paintcore.Pt(p.X, p.Y))
		angle := transformAngle(m, p.Angle)
		s.enqueueClone(i+1, pt.X, pt.Y, angle, p, normal)
	}
}

// transformAngle rotates angleDeg by m's linear part, so mirror/rotation
// clones carry a correctly reoriented elliptical dab.
func transformAngle(m paintcore.Matrix, angleDeg float64) float64 {
	rad := angleDeg * math.Pi / 180
	v := m.TransformVector(paintcore.Pt(math.Cos(rad), math.Sin(rad)))
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

func (s *Surface) enqueueClone(slot int, x, y, angle float64, p DabParams, normal float64) {
	minTX, maxTX := tileRange(x-p.Radius-1, x+p.Radius+1)
	minTY, maxTY := tileRange(y-p.Radius-1, y+p.Radius+1)

	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			idx := tile.Index{TX: tx, TY: ty}
			dab := queue.Dab{
				X:            x - float64(tx*tile.Size),
				Y:            y - float64(ty*tile.Size),
				Radius:       p.Radius,
				Hardness:     p.Hardness,
				AspectRatio:  p.Aspect,
				Angle:        angle,
				R:            p.R,
				G:            p.G,
				B:            p.B,
				A:            p.A,
				Normal:       normal,
				LockAlpha:    p.LockAlpha,
				Colorize:     p.Colorize,
				Posterize:    p.Posterize,
				PosterizeNum: p.PosterizeNum,
				Paint:        p.Paint,
				Opaque:       p.Opaque,
			}
			s.ops.Add(idx, dab)
		}
	}

	s.dirty.Expand(slot, tile.Rect{
		MinX: int(math.Floor(x - p.Radius)),
		MinY: int(math.Floor(y - p.Radius)),
		MaxX: int(math.Ceil(x + p.Radius)),
		MaxY: int(math.Ceil(y + p.Radius)),
	})
}

// GetColor implements §4.G get_color: it computes the same tile range as
// DrawDab, flushes and reads each tile under the mask, and folds the
// result through the get-color accumulator, returning the straight
// color (§6) the accumulator settled on.
func (s *Surface) GetColor(x, y, r, paint float64) paintcore.RGBA {
	if r < 0.1 {
		return paintcore.Sentinel
	}
	minTX, maxTX := tileRange(x-r-1, x+r+1)
	minTY, maxTY := tileRange(y-r-1, y+r+1)
	interval, prob := getcolor.SampleRate(r)

	var sums getcolor.Sums
	m := mask.New()
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			idx := tile.Index{TX: tx, TY: ty}
			s.processTile(idx)

			req := tile.Request{Index: idx, ReadOnly: true}
			t, ok := s.provider.Start(req)
			if !ok {
				paintcore.Logger().Error("get_color: tile request failed", "tx", tx, "ty", ty)
				continue
			}
			localX := x - float64(tx*tile.Size)
			localY := y - float64(ty*tile.Size)
			mask.Rasterize(m, mask.DabShape{CenterX: localX, CenterY: localY, Radius: r, Hardness: 0.5, AspectRatio: 1, AngleDegrees: 0})
			getcolor.Accumulate(&sums, m, t, paint, interval, prob, s.rng)
			s.provider.End(req)
		}
	}
	return sums.Finish(paint)
}

// BeginAtomic resets the dirty bounding box(es) and commits any symmetry
// change staged since the last atomic region.
func (s *Surface) BeginAtomic() {
	s.sym.Commit()
	s.dirty.Reset(1 + len(s.sym.Matrices()))
}

// EndAtomic flushes every dirty tile's queued ops, clears the dirty set,
// and appends this atomic region's bounding box(es) to out, then clears
// the bounding box(es).
func (s *Surface) EndAtomic(out *[]tile.Rect) {
	dirty := s.ops.DirtyTiles()

	if s.pool != nil && len(dirty) > parallelThreshold && s.providerIsThreadSafe() {
		work := make([]func(), len(dirty))
		for i, idx := range dirty {
			idx := idx
			work[i] = func() { s.processTile(idx) }
		}
		s.pool.ExecuteAll(work)
	} else {
		for _, idx := range dirty {
			s.processTile(idx)
		}
	}

	s.ops.ClearDirty()
	*out = append(*out, s.dirty.Rects()...)
	s.dirty.Reset(1 + len(s.sym.Matrices()))
}

func (s *Surface) providerIsThreadSafe() bool {
	ts, ok := s.provider.(threadSafeProvider)
	return ok && ts.ThreadSafe()
}

// processTile pops and blends every pending op for idx, leaving the
// queue empty for that tile. It is used both by EndAtomic and by
// GetColor's "flush any pending ops on that tile" step.
func (s *Surface) processTile(idx tile.Index) {
	req := tile.Request{Index: idx}
	t, ok := s.provider.Start(req)
	if !ok {
		paintcore.Logger().Error("tile request failed during flush", "tx", idx.TX, "ty", idx.TY)
		return
	}
	defer s.provider.End(req)

	m := mask.New()
	for {
		op, ok := s.ops.Pop(idx)
		if !ok {
			if paintcore.DebugAssertionsEnabled() {
				for i := 0; i < tile.Words; i += 4 {
					a := t.Pix[i+3]
					if a > tile.MaxChannel || t.Pix[i] > a || t.Pix[i+1] > a || t.Pix[i+2] > a {
						panic("surface: flushed tile pixel violates 0 <= R,G,B <= A <= MaxChannel")
					}
				}
			}
			return
		}
		mask.Rasterize(m, mask.DabShape{
			CenterX: op.X, CenterY: op.Y, Radius: op.Radius,
			Hardness: op.Hardness, AspectRatio: op.AspectRatio, AngleDegrees: op.Angle,
		})
		applyOp(t, m, op)
	}
}
