package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformDepth(depth float32) DepthSampler {
	return func(u, v float32) float32 {
		return depth
	}
}

func TestShadowFactorBeyondFarPlaneIsLit(t *testing.T) {
	got := ShadowFactor([4]float32{0, 0, 2, 1}, uniformDepth(0))
	assert.Equal(t, float32(0), got)
}

func TestShadowFactorOutsideFrustumIsLit(t *testing.T) {
	tests := []struct {
		name  string
		coord [4]float32
	}{
		{"left of frustum", [4]float32{-1.1, 0, 0.5, 1}},
		{"right of frustum", [4]float32{1.1, 0, 0.5, 1}},
		{"above frustum", [4]float32{0, 1.1, 0.5, 1}},
		{"below frustum", [4]float32{0, -1.1, 0.5, 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// The sampler would report full occlusion if it were consulted.
			got := ShadowFactor(test.coord, uniformDepth(0))
			assert.Equal(t, float32(0), got)
		})
	}
}

func TestShadowFactorFullyOccluded(t *testing.T) {
	// Every stored depth is nearer than the fragment, all nine taps occlude.
	got := ShadowFactor([4]float32{0, 0, 0.5, 1}, uniformDepth(0.2))
	assert.Equal(t, float32(1), got)
}

func TestShadowFactorFullyLit(t *testing.T) {
	// Stored depth farther than the fragment, no tap occludes.
	got := ShadowFactor([4]float32{0, 0, 0.5, 1}, uniformDepth(0.8))
	assert.Equal(t, float32(0), got)
}

func TestShadowFactorEqualDepthIsLitByBias(t *testing.T) {
	got := ShadowFactor([4]float32{0, 0, 0.5, 1}, uniformDepth(0.5))
	assert.Equal(t, float32(0), got)
}

func TestShadowFactorBiasBoundary(t *testing.T) {
	// Stored depth just beyond the comparison bias occludes.
	got := ShadowFactor([4]float32{0, 0, 0.5, 1}, uniformDepth(0.499))
	assert.Equal(t, float32(1), got)

	// Inside the bias window it does not.
	got = ShadowFactor([4]float32{0, 0, 0.5, 1}, uniformDepth(0.4999))
	assert.Equal(t, float32(0), got)
}

func TestShadowFactorPartialOcclusion(t *testing.T) {
	// Occluders cover only taps left of the kernel center: 3 of 9 columns.
	edge := func(u, v float32) float32 {
		if u < 0.5 {
			return 0.0
		}
		return 1.0
	}
	got := ShadowFactor([4]float32{0, 0, 0.5, 1}, edge)
	assert.InDelta(t, 3.0/9.0, got, 1e-6)
}

func TestShadowFactorPerspectiveDivide(t *testing.T) {
	// (0.5, 0.5, 1.0, 2.0) projects to the same point as (0.25, 0.25, 0.5, 1).
	a := ShadowFactor([4]float32{0.5, 0.5, 1.0, 2.0}, uniformDepth(0.2))
	b := ShadowFactor([4]float32{0.25, 0.25, 0.5, 1.0}, uniformDepth(0.2))
	assert.Equal(t, b, a)
	assert.Equal(t, float32(1), a)
}
