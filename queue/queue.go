// Package queue implements the per-tile operation queue (spec §4.B): a
// FIFO of pending dab operations per tile index, plus the set of dirty
// tiles a flush needs to visit. Queue serializes access within a tile
// internally; callers touching distinct tiles may proceed in parallel
// without external locking.
package queue

import (
	"sync"

	"github.com/inkwell/paintcore/tile"
)

// Dab is the immutable record enqueued per affected tile (§3 "Dab
// operation"). Coordinates are in tile-local pixel space: the caller
// (surface facade) has already resolved which tile this copy belongs to.
type Dab struct {
	X, Y         float64
	Radius       float64
	Hardness     float64
	AspectRatio  float64
	Angle        float64
	R, G, B, A   uint16 // premultiplied, [0, tile.MaxChannel]
	Normal       float64
	LockAlpha    float64
	Colorize     float64
	Posterize    float64
	PosterizeNum int
	Paint        float64
	Opaque       float64
}

type tileQueue struct {
	mu  sync.Mutex
	ops []Dab
}

// Queue is the operation queue: ordered dab lists keyed by tile index,
// plus the dirty-tile set. The zero value is not usable; use New.
type Queue struct {
	mu      sync.RWMutex
	tiles   map[tile.Index]*tileQueue
	dirty   map[tile.Index]struct{}
	dirtyMu sync.Mutex
}

// New creates an empty operation queue.
func New() *Queue {
	return &Queue{
		tiles: make(map[tile.Index]*tileQueue),
		dirty: make(map[tile.Index]struct{}),
	}
}

func (q *Queue) getTileQueue(idx tile.Index) *tileQueue {
	q.mu.RLock()
	tq, ok := q.tiles[idx]
	q.mu.RUnlock()
	if ok {
		return tq
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if tq, ok = q.tiles[idx]; ok {
		return tq
	}
	tq = &tileQueue{}
	q.tiles[idx] = tq
	return tq
}

// Add appends op to idx's list and marks idx dirty. Ownership of op
// transfers to the queue until a matching Pop returns it.
func (q *Queue) Add(idx tile.Index, op Dab) {
	tq := q.getTileQueue(idx)
	tq.mu.Lock()
	tq.ops = append(tq.ops, op)
	tq.mu.Unlock()

	q.dirtyMu.Lock()
	q.dirty[idx] = struct{}{}
	q.dirtyMu.Unlock()
}

// Pop removes and returns the head of idx's list (FIFO order), or
// ok=false if the list is empty.
func (q *Queue) Pop(idx tile.Index) (op Dab, ok bool) {
	tq := q.getTileQueue(idx)
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if len(tq.ops) == 0 {
		return Dab{}, false
	}
	op = tq.ops[0]
	tq.ops[0] = Dab{}
	tq.ops = tq.ops[1:]
	return op, true
}

// DirtyTiles returns the current dirty-tile set as a slice, in no
// particular order — per §4.B, ordering between tiles is unspecified.
func (q *Queue) DirtyTiles() []tile.Index {
	q.dirtyMu.Lock()
	defer q.dirtyMu.Unlock()
	out := make([]tile.Index, 0, len(q.dirty))
	for idx := range q.dirty {
		out = append(out, idx)
	}
	return out
}

// ClearDirty empties the dirty-tile set.
func (q *Queue) ClearDirty() {
	q.dirtyMu.Lock()
	q.dirty = make(map[tile.Index]struct{})
	q.dirtyMu.Unlock()
}

// Empty reports whether every tile's op list is empty. Used to verify
// the §3 invariant that the queue is empty after a successful
// end_atomic.
func (q *Queue) Empty() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, tq := range q.tiles {
		tq.mu.Lock()
		n := len(tq.ops)
		tq.mu.Unlock()
		if n > 0 {
			return false
		}
	}
	return true
}
