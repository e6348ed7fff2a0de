package benchmark

import (
	"math"

	"github.com/klauspost/cpuid/v2"
)

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// IntegerWorkload iterates a linear congruential update on one
// accumulator.
type IntegerWorkload struct {
	x uint64
}

func NewIntegerWorkload() *IntegerWorkload {
	return &IntegerWorkload{x: 1}
}

func (w *IntegerWorkload) Step() {
	w.x = w.x*lcgMultiplier + lcgIncrement
}

func (w *IntegerWorkload) Value() uint64 {
	return w.x
}

// FloatWorkload iterates sin(x)*cos(x)+sqrt(x). Starting from 1 the
// accumulator stays positive, so sqrt never sees a negative input.
type FloatWorkload struct {
	x float64
}

func NewFloatWorkload() *FloatWorkload {
	return &FloatWorkload{x: 1}
}

func (w *FloatWorkload) Step() {
	w.x = math.Sin(w.x)*math.Cos(w.x) + math.Sqrt(w.x)
}

func (w *FloatWorkload) Value() uint64 {
	return math.Float64bits(w.x)
}

// FeatureDetector reports whether an optional CPU extension is present.
type FeatureDetector func() bool

// DetectAVX2 queries CPUID for AVX2.
func DetectAVX2() bool {
	return cpuid.CPU.Supports(cpuid.AVX2)
}

// ProbeVector reports the vector capability. A missing extension yields
// Unsupported and a present one yields Disabled. No vector workload is
// ever executed.
func ProbeVector(detect FeatureDetector) Result {
	if detect == nil || !detect() {
		return Unsupported
	}
	return Disabled
}
