package tile

import (
	"sync"
)

// Request carries the parameters of a tile_request_start/end call (spec
// §4.A): which tile, whether the caller only reads it, which mipmap level
// it wants, and which worker thread is asking (useful to a backend that
// pins buffers per thread; Store itself doesn't need it).
type Request struct {
	Index       Index
	ReadOnly    bool
	MipmapLevel int
	ThreadID    int
}

// Provider is the tile request protocol consumed by the surface facade
// (§4.A, §6 "Tile provider interface"): Start returns ok=false on
// failure, in which case the caller must not call End and instead logs
// and skips that tile. Store satisfies Provider; other backends (a
// GEGL-buffer adapter, say) can too.
type Provider interface {
	Start(req Request) (t *Tile, ok bool)
	End(req Request)
}

// entry is the Store's bookkeeping for one tile address: the pixel data,
// a lock serializing concurrent access to it, and a lazily built mipmap
// cache invalidated whenever the tile is written.
type entry struct {
	mu    sync.RWMutex
	tile  *Tile

	// mipMu guards mipmaps independently of mu: a mipmap can be lazily
	// built by any of several concurrent read-only Starts on the same
	// tile, which only hold mu's read side.
	mipMu   sync.Mutex
	mipmaps map[int]*Tile
}

// StoreOption configures a Store during construction.
type StoreOption func(*storeOptions)

type storeOptions struct {
	pool *Pool
}

func defaultStoreOptions() storeOptions {
	return storeOptions{pool: defaultPool}
}

// WithPool overrides the tile allocator a Store draws buffers from.
// Tests that want to observe pool reuse directly can supply their own.
func WithPool(p *Pool) StoreOption {
	return func(o *storeOptions) {
		if p != nil {
			o.pool = p
		}
	}
}

// Store is the infinite-plane tiled surface: a map of tile addresses to
// 16-bit premultiplied RGBA buffers, lent out through a paired
// start/end request protocol (§4.A). Store never retains a buffer past
// the matching end call; the caller does all of its reading/writing
// between Start and End.
type Store struct {
	mu      sync.RWMutex
	entries map[Index]*entry
	pool    *Pool
}

var _ Provider = (*Store)(nil)

// NewStore creates an empty tile store. No tiles are allocated until
// first requested.
func NewStore(opts ...StoreOption) *Store {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		entries: make(map[Index]*entry),
		pool:    o.pool,
	}
}

// getEntry returns the entry for idx, creating and allocating a tile for
// it on first access. Read-only requests for a tile that has never been
// written still get a freshly zeroed (fully transparent) tile — there is
// no way to "miss" on an infinite plane, unlike a bounded canvas.
func (s *Store) getEntry(idx Index) *entry {
	s.mu.RLock()
	e, ok := s.entries[idx]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[idx]; ok {
		return e
	}
	e = &entry{tile: s.pool.Get()}
	s.entries[idx] = e
	return e
}

// Start begins a tile access: locks the tile for the duration (shared
// lock for read-only requests, exclusive otherwise) and returns its
// buffer. Start never fails for a well-formed request; the "null buffer"
// failure mode in §4.A / §7 is reserved for backends that can run out of
// storage, which this in-memory Store cannot.
func (s *Store) Start(req Request) (*Tile, bool) {
	e := s.getEntry(req.Index)
	if req.ReadOnly {
		e.mu.RLock()
	} else {
		e.mu.Lock()
	}
	if req.MipmapLevel > 0 {
		return s.mipmapView(e, req.MipmapLevel), true
	}
	return e.tile, true
}

// End matches a Start call, releasing the lock it took and, for a
// read-write request, publishing the change by invalidating any cached
// mipmap levels for that tile.
func (s *Store) End(req Request) {
	e := s.getEntry(req.Index)
	if req.ReadOnly {
		e.mu.RUnlock()
		return
	}
	e.mipMu.Lock()
	e.mipmaps = nil
	e.mipMu.Unlock()
	e.mu.Unlock()
}

// mipmapView returns (building and caching if needed) a downsampled view
// of e's tile at the given level. The caller holds at least a read lock
// on e.mu, guaranteeing e.tile isn't concurrently written while this
// reads it to build the mip.
func (s *Store) mipmapView(e *entry, level int) *Tile {
	e.mipMu.Lock()
	defer e.mipMu.Unlock()
	if e.mipmaps == nil {
		e.mipmaps = make(map[int]*Tile)
	}
	if m, ok := e.mipmaps[level]; ok {
		return m
	}
	m := s.pool.Get()
	downsample(e.tile, m, level)
	e.mipmaps[level] = m
	return m
}

// ThreadSafe reports that Store's tile requests may be issued
// concurrently from multiple goroutines without external locking (each
// tile's entry guards itself). The surface facade's §5 concurrency model
// checks this before fanning work out across a worker pool.
func (s *Store) ThreadSafe() bool { return true }

// Has reports whether a tile has ever been allocated at idx, without
// creating one. Used by callers (e.g. an empty-surface fast path) that
// want to avoid materializing tiles the surface facade hasn't touched.
func (s *Store) Has(idx Index) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[idx]
	return ok
}

// Delete releases a tile's storage back to the pool. Callers must not
// hold an outstanding Start on idx when calling Delete.
func (s *Store) Delete(idx Index) {
	s.mu.Lock()
	e, ok := s.entries[idx]
	if ok {
		delete(s.entries, idx)
	}
	s.mu.Unlock()
	if ok {
		s.pool.Put(e.tile)
	}
}
