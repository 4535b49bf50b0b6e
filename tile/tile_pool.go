package tile

import "sync"

// Pool recycles Tile buffers via sync.Pool, avoiding an allocation per
// tile request on the hot path. Every tile is the same fixed size, so a
// single pool (unlike the teacher's per-edge-tile-size sync.Map) suffices.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a new tile pool.
func NewPool() *Pool {
	p := &Pool{}
	p.pool.New = func() any { return new(Tile) }
	return p
}

// Get retrieves a zeroed tile from the pool or allocates a new one.
func (p *Pool) Get() *Tile {
	t := p.pool.Get().(*Tile)
	t.Reset()
	return t
}

// Put returns a tile to the pool for reuse. The tile's contents are
// cleared so released buffers never leak pixel data into the next user.
func (p *Pool) Put(t *Tile) {
	if t == nil {
		return
	}
	t.Reset()
	p.pool.Put(t)
}

// defaultPool is shared by Store instances that don't provide their own.
var defaultPool = NewPool()
