package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// transformPoint applies a column-major 4x4 matrix to a point (w = 1) and
// returns the resulting x, y, z, w.
func transformPoint(m []float32, x, y, z float32) (float32, float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15]
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 42
	}
	Identity(m)

	x, y, z, w := transformPoint(m, 1, 2, 3)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(2), y)
	assert.Equal(t, float32(3), z)
	assert.Equal(t, float32(1), w)
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := make([]float32, 16)
	LookAt(m, 1, 2, 3, 0, 0, 0, 0, 1, 0)

	out := make([]float32, 16)
	Mul4(out, id, m)
	assert.Equal(t, m, out)

	Mul4(out, m, id)
	assert.Equal(t, m, out)
}

func TestMul4Aliasing(t *testing.T) {
	a := make([]float32, 16)
	b := make([]float32, 16)
	LookAt(a, 0, 4, 8, 0, 0, 0, 0, 1, 0)
	Perspective(b, math32.Pi/3, 16.0/9.0, 0.1, 100)

	want := make([]float32, 16)
	Mul4(want, b, a)

	// Writing the result over one of the inputs must not corrupt the product.
	Mul4(b, b, a)
	assert.Equal(t, want, b)
}

func TestPerspectiveDepthRange(t *testing.T) {
	m := make([]float32, 16)
	Perspective(m, math32.Pi/3, 1.0, 0.1, 100)

	// View space is right-handed: the camera looks down -Z.
	_, _, z, w := transformPoint(m, 0, 0, -0.1)
	assert.InDelta(t, 0.0, z/w, 1e-6, "near plane must map to depth 0")

	_, _, z, w = transformPoint(m, 0, 0, -100)
	assert.InDelta(t, 1.0, z/w, 1e-4, "far plane must map to depth 1")
}

func TestOrthoDepthRange(t *testing.T) {
	m := make([]float32, 16)
	Ortho(m, -10, 10, -10, 10, 1, 25)

	_, _, z, w := transformPoint(m, 0, 0, -1)
	assert.Equal(t, float32(1), w, "orthographic projection must keep w = 1")
	assert.InDelta(t, 0.0, z, 1e-6, "near plane must map to depth 0")

	_, _, z, _ = transformPoint(m, 0, 0, -25)
	assert.InDelta(t, 1.0, z, 1e-6, "far plane must map to depth 1")

	x, y, _, _ := transformPoint(m, 10, -10, -13)
	assert.InDelta(t, 1.0, x, 1e-6)
	assert.InDelta(t, -1.0, y, 1e-6)
}

func TestLookAt(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 5, 0, 0, 0, 0, 1, 0)

	// The eye maps to the view-space origin.
	x, y, z, _ := transformPoint(m, 0, 0, 5)
	assert.InDelta(t, 0.0, x, 1e-6)
	assert.InDelta(t, 0.0, y, 1e-6)
	assert.InDelta(t, 0.0, z, 1e-6)

	// A point between the eye and the target lands on the -Z axis (right-handed).
	_, _, z, _ = transformPoint(m, 0, 0, 4)
	assert.InDelta(t, -1.0, z, 1e-6)
}

func TestNormalize3(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want []float32
	}{
		{
			name: "unit axis is unchanged",
			in:   []float32{1, 0, 0},
			want: []float32{1, 0, 0},
		},
		{
			name: "scaled axis",
			in:   []float32{0, 0, -8},
			want: []float32{0, 0, -1},
		},
		{
			name: "zero vector is left alone",
			in:   []float32{0, 0, 0},
			want: []float32{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := append([]float32(nil), tt.in...)
			Normalize3(v)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], v[i], 1e-6)
			}
		})
	}
}

func TestColorRGBA(t *testing.T) {
	c := Color{R: 255, G: 0, B: 51, A: 255}
	got := c.RGBA()
	assert.InDelta(t, 1.0, got[0], 1e-6)
	assert.InDelta(t, 0.0, got[1], 1e-6)
	assert.InDelta(t, 0.2, got[2], 1e-6)
	assert.InDelta(t, 1.0, got[3], 1e-6)
}
