package benchmark

import "math"

// GeoMean returns the geometric mean of the strictly positive values.
// Zero and negative entries are sentinels and are left out of both the
// product and the count. With no positive entries the mean is undefined
// and NaN is returned.
func GeoMean(values ...Result) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if v > 0 {
			sum += math.Log(float64(v))
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return math.Exp(sum / float64(n))
}

// Defined reports whether score is a usable aggregate.
func Defined(score float64) bool {
	return score > 0 && !math.IsNaN(score) && !math.IsInf(score, 0)
}
