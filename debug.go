package paintcore

import "sync/atomic"

// debugAssertions gates the invariant check described in the error handling
// design: after the surface flushes a tile's queued operations, every pixel
// of that tile must satisfy 0 <= R, G, B <= A <= 2^15.
// Off by default; enable in tests and development builds.
var debugAssertions atomic.Bool

// SetDebugAssertions enables or disables invariant checks across
// paintcore's sub-packages. When enabled, a violated invariant panics
// instead of being silently tolerated or logged. Intended for tests and
// development builds, not production use, since the check walks pixel
// data that the hot path otherwise never touches.
func SetDebugAssertions(enabled bool) {
	debugAssertions.Store(enabled)
}

// DebugAssertionsEnabled reports whether invariant checks are active.
func DebugAssertionsEnabled() bool {
	return debugAssertions.Load()
}
