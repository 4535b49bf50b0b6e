package colormath

import "math"

// SRGBToLinearGamma converts a component from sRGB to linear using a
// straight power curve with the given gamma (>= 1.0), per §4.E. It has
// no linear toe segment, unlike the piecewise sRGB transfer function.
func SRGBToLinearGamma(c float64, gamma float64) float64 {
	if c <= 0 {
		return 0
	}
	return math.Pow(c, gamma)
}

// LinearToSRGBGamma is the inverse of SRGBToLinearGamma.
func LinearToSRGBGamma(c float64, gamma float64) float64 {
	if c <= 0 {
		return 0
	}
	return math.Pow(c, 1/gamma)
}
