package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// transformPoint applies a column-major 4x4 matrix to a point and performs the
// perspective divide.
func transformPoint(m [16]float32, x, y, z float32) (float32, float32, float32) {
	ox := m[0]*x + m[4]*y + m[8]*z + m[12]
	oy := m[1]*x + m[5]*y + m[9]*z + m[13]
	oz := m[2]*x + m[6]*y + m[10]*z + m[14]
	ow := m[3]*x + m[7]*y + m[11]*z + m[15]
	return ox / ow, oy / ow, oz / ow
}

func TestLightOrbitPositions(t *testing.T) {
	tests := []struct {
		name string
		time float32
		want [3]float32
	}{
		{"start", 0, [3]float32{0, 8, 6}},
		{"quarter orbit", math32.Pi, [3]float32{6, 8, 0}},
		{"half orbit", 2 * math32.Pi, [3]float32{0, 8, -6}},
		{"three quarter orbit", 3 * math32.Pi, [3]float32{-6, 8, 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := ComputeFrameMatrices(test.time, 16.0/9.0)
			assert.InDelta(t, test.want[0], m.LightPos[0], 1e-5)
			assert.InDelta(t, test.want[1], m.LightPos[1], 1e-5)
			assert.InDelta(t, test.want[2], m.LightPos[2], 1e-5)
		})
	}
}

func TestLightOrbitStaysOnCircle(t *testing.T) {
	for _, time := range []float32{0.3, 1.7, 4.2, 11.9} {
		m := ComputeFrameMatrices(time, 1.0)
		radius := math32.Sqrt(m.LightPos[0]*m.LightPos[0] + m.LightPos[2]*m.LightPos[2])
		assert.InDelta(t, 6.0, radius, 1e-4, "time %v", time)
		assert.InDelta(t, 8.0, m.LightPos[1], 1e-6, "time %v", time)
	}
}

func TestLightDirPointsAtOrigin(t *testing.T) {
	m := ComputeFrameMatrices(1.3, 1.0)

	lenSq := m.LightDir[0]*m.LightDir[0] + m.LightDir[1]*m.LightDir[1] + m.LightDir[2]*m.LightDir[2]
	assert.InDelta(t, 1.0, lenSq, 1e-5)

	// The direction is antiparallel to the light's position vector.
	posLen := math32.Sqrt(m.LightPos[0]*m.LightPos[0] + m.LightPos[1]*m.LightPos[1] + m.LightPos[2]*m.LightPos[2])
	assert.InDelta(t, -m.LightPos[0]/posLen, m.LightDir[0], 1e-5)
	assert.InDelta(t, -m.LightPos[1]/posLen, m.LightDir[1], 1e-5)
	assert.InDelta(t, -m.LightPos[2]/posLen, m.LightDir[2], 1e-5)
}

func TestLightViewProjDepthOfOrigin(t *testing.T) {
	m := ComputeFrameMatrices(0, 1.0)

	// The light orbits at distance 10 from the origin; with the 1..25 ortho
	// depth range the origin lands at depth (10-1)/(25-1) = 0.375.
	x, y, z := transformPoint(m.LightViewProj, 0, 0, 0)
	assert.InDelta(t, 0.0, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)
	assert.InDelta(t, 0.375, z, 1e-4)
}

func TestCamViewProjSeesOrigin(t *testing.T) {
	m := ComputeFrameMatrices(0, 16.0/9.0)

	// The origin is centered in view and inside the depth range.
	x, _, z := transformPoint(m.CamViewProj, 0, 0, 0)
	assert.InDelta(t, 0.0, x, 1e-5)
	assert.Greater(t, z, float32(0))
	assert.Less(t, z, float32(1))
}

func TestModelIsIdentity(t *testing.T) {
	m := ComputeFrameMatrices(2.5, 1.0)
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		assert.Equal(t, want, m.Model[i], "element %d", i)
	}
}

func TestComputeFrameMatricesIsDeterministic(t *testing.T) {
	a := ComputeFrameMatrices(3.7, 1.5)
	b := ComputeFrameMatrices(3.7, 1.5)
	assert.Equal(t, a, b)
}
