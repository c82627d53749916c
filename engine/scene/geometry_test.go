package scene

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexStrideMatchesStruct(t *testing.T) {
	var v Vertex
	assert.Equal(t, uintptr(VertexStride), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(v.Normal))
}

func TestAddCubeCounts(t *testing.T) {
	vertices, indices := AddCube(nil, nil, [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	assert.Len(t, vertices, 24)
	assert.Len(t, indices, 36)
}

func TestAddCubeFaceIndexPattern(t *testing.T) {
	_, indices := AddCube(nil, nil, [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	for face := 0; face < 6; face++ {
		base := uint16(face * 4)
		got := indices[face*6 : face*6+6]
		want := []uint16{base, base + 1, base + 2, base + 2, base + 3, base}
		assert.Equal(t, want, got, "face %d", face)
	}
}

func TestAddCubeOffsetsIndicesByExistingVertices(t *testing.T) {
	vertices, indices := AddCube(nil, nil, [3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	vertices, indices = AddCube(vertices, indices, [3]float32{5, 0, 0}, [3]float32{1, 1, 1})

	require.Len(t, vertices, 48)
	require.Len(t, indices, 72)

	// Second cube's indices must all reference its own vertex range.
	for _, idx := range indices[36:] {
		assert.GreaterOrEqual(t, idx, uint16(24))
		assert.Less(t, idx, uint16(48))
	}
}

func TestAddCubeScalesAndTranslates(t *testing.T) {
	vertices, _ := AddCube(nil, nil, [3]float32{1, 2, 3}, [3]float32{10, 0.1, 10})

	var minY, maxY float32 = vertices[0].Position[1], vertices[0].Position[1]
	for _, v := range vertices {
		if v.Position[1] < minY {
			minY = v.Position[1]
		}
		if v.Position[1] > maxY {
			maxY = v.Position[1]
		}
		assert.GreaterOrEqual(t, v.Position[0], float32(-9))
		assert.LessOrEqual(t, v.Position[0], float32(11))
	}
	assert.InDelta(t, 1.9, minY, 1e-6)
	assert.InDelta(t, 2.1, maxY, 1e-6)
}

func TestAddCubeNormalsAreUnitAxes(t *testing.T) {
	vertices, _ := AddCube(nil, nil, [3]float32{0, 0, 0}, [3]float32{2, 3, 4})
	for i, v := range vertices {
		n := v.Normal
		lenSq := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		assert.InDelta(t, 1.0, lenSq, 1e-6, "vertex %d", i)
		// Normals stay axis-aligned regardless of the cuboid's scale.
		nonZero := 0
		for _, c := range n {
			if c != 0 {
				nonZero++
			}
		}
		assert.Equal(t, 1, nonZero, "vertex %d", i)
	}
}

func TestBuildGeometry(t *testing.T) {
	vertices, indices := BuildGeometry()
	assert.Len(t, vertices, 72)
	assert.Len(t, indices, 108)

	// Ground slab spans the full 20x20 footprint at y in [-1.1, -0.9].
	ground := vertices[:24]
	for _, v := range ground {
		assert.GreaterOrEqual(t, v.Position[1], float32(-1.1))
		assert.LessOrEqual(t, v.Position[1], float32(-0.9))
	}

	// Every index references a valid vertex.
	for _, idx := range indices {
		assert.Less(t, int(idx), len(vertices))
	}
}
