package brush

// NumSmudgeBuckets is the size of the process-wide smudge bucket table
// (§3 "Smudge buckets", §6 config constants).
const NumSmudgeBuckets = 256

// smudgeBucket holds one smudge bucket's sampled-paint state: the
// current mixed "carried paint" color, the color last sampled off the
// canvas at this bucket's position, and a recentness counter deciding
// when the bucket next needs a fresh canvas sample.
type smudgeBucket struct {
	color      RGBA // straight (not premultiplied), the bucket's current carried-paint state
	lastSample RGBA // straight (not premultiplied), last color read off the canvas
	recentness float64
}

// SmudgeBuckets is the fixed 256-entry smudge bucket table, indexed by
// a per-dab bucket selector (the SMUDGE_BUCKET setting). Buckets are
// lazily valid: a zero bucket has recentness 0, which ShouldResample
// treats as "needs a fresh canvas read."
type SmudgeBuckets struct {
	buckets [NumSmudgeBuckets]smudgeBucket
}

// clampBucketIndex maps an arbitrary float bucket selector to a valid
// table index, matching the dynamics engine's "per-dab integer
// setting" addressing (§3).
func clampBucketIndex(v float64) int {
	i := int(v)
	if i < 0 {
		i = 0
	}
	if i >= NumSmudgeBuckets {
		i = NumSmudgeBuckets - 1
	}
	return i
}

// bucket returns a pointer to the bucket selected by index, clamped
// into range.
func (s *SmudgeBuckets) bucket(index float64) *smudgeBucket {
	return &s.buckets[clampBucketIndex(index)]
}

// Color returns the current carried-paint color of the bucket selected
// by index.
func (s *SmudgeBuckets) Color(index float64) RGBA {
	return s.bucket(index).color
}

// ShouldResample reports whether the bucket selected by index is due
// for a fresh canvas sample, given smudgeLengthLog (the SMUDGE_LENGTH_LOG
// setting, larger meaning buckets hold their paint longer). A bucket
// that has never been refreshed (recentness 0) always is; otherwise the
// answer is a random draw with probability 1/(1+smudgeLengthLog). The
// bucket's recentness does not enter that probability.
func (s *SmudgeBuckets) ShouldResample(index float64, smudgeLengthLog float64, rng Source) bool {
	b := s.bucket(index)
	if b.recentness <= 0 {
		return true
	}
	threshold := 1 / (1 + smudgeLengthLog)
	return rng.Float64() < threshold
}

// Refresh records a fresh canvas sample for the bucket selected by
// index and resets its recentness to fully fresh.
func (s *SmudgeBuckets) Refresh(index float64, sample RGBA) {
	b := s.bucket(index)
	b.lastSample = sample
	b.recentness = 1
}

// Update mixes the bucket's current carried-paint color with its last
// sampled canvas color by smudgeLength (the SMUDGE_LENGTH setting) and
// stores the result back as the bucket's new carried-paint color,
// decaying recentness toward zero every call (§4.J "always mix the
// bucket's current state color with the last sampled color").
func (s *SmudgeBuckets) Update(index float64, smudgeLength, gamma, normsub, spectral, desat, darken float64) RGBA {
	b := s.bucket(index)
	b.color = MixColors(b.lastSample, b.color, 1-smudgeLength, gamma, normsub, spectral, desat, darken)
	b.recentness *= 0.99
	return b.color
}

// Source is the narrow random-number interface the smudge bucket table
// and the dynamics engine sample from, letting tests substitute a
// deterministic fake in place of a seeded PRNG.
type Source interface {
	Float64() float64
}
