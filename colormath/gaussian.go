package colormath

// Gaussian approximates a standard-normal sample from four independent
// uniform [0,1) draws, per §4.E: sum four uniforms, rescale so the
// result has unit variance and zero mean. Brush dynamics uses it for
// cheap per-dab Gaussian noise (dab offset and radius jitter) without
// pulling in a full normal-distribution sampler.
func Gaussian(u1, u2, u3, u4 float64) float64 {
	return (u1+u2+u3+u4)*1.73205 - 3.46410
}
