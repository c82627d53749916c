package scene

// Vertex is a single mesh vertex: position and normal, interleaved.
// Size: 24 bytes, matching the pipelines' vertex stride with no padding.
type Vertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: face normal for lighting (12 bytes)
}

// VertexStride is the byte stride between consecutive vertices.
const VertexStride = 24

// cubeCorners is the unit-cube corner/normal table: six faces of four vertices
// each, ordered front (+Z), back (-Z), up (+Y), down (-Y), right (+X),
// left (-X), wound counter-clockwise viewed from outside the cube.
var cubeCorners = [24]Vertex{
	{Position: [3]float32{-1, -1, 1}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{1, -1, 1}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{-1, 1, 1}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{1, -1, -1}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{-1, -1, -1}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{-1, 1, -1}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{1, 1, -1}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{-1, 1, 1}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{1, 1, -1}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{-1, 1, -1}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{-1, -1, -1}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{1, -1, -1}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{1, -1, 1}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{-1, -1, 1}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{1, -1, 1}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{1, -1, -1}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{1, 1, -1}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{1, 1, 1}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{-1, -1, -1}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-1, -1, 1}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-1, 1, 1}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-1, 1, -1}, Normal: [3]float32{-1, 0, 0}},
}

// faceIndices is the two-triangle index pattern within one quad face.
var faceIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// AddCube appends an axis-aligned cuboid (24 vertices, 36 indices) to the given
// vertex and index slices. Indices are offset by the vertex count at call time,
// so cubes can be accumulated into one shared buffer pair.
//
// Parameters:
//   - vertices: the vertex accumulator
//   - indices: the index accumulator
//   - center: the cuboid's center position in world space
//   - halfExtents: the cuboid's half-size along each axis
//
// Returns:
//   - []Vertex: the vertex accumulator with the cuboid appended
//   - []uint16: the index accumulator with the cuboid appended
func AddCube(vertices []Vertex, indices []uint16, center, halfExtents [3]float32) ([]Vertex, []uint16) {
	base := uint16(len(vertices))

	for _, c := range cubeCorners {
		vertices = append(vertices, Vertex{
			Position: [3]float32{
				c.Position[0]*halfExtents[0] + center[0],
				c.Position[1]*halfExtents[1] + center[1],
				c.Position[2]*halfExtents[2] + center[2],
			},
			Normal: c.Normal,
		})
	}

	for face := uint16(0); face < 6; face++ {
		for _, fi := range faceIndices {
			indices = append(indices, base+face*4+fi)
		}
	}

	return vertices, indices
}

// BuildGeometry constructs the demo scene's static geometry: a thin ground
// slab, a small cube resting on it, and a tall pillar beside it. All three
// share one vertex/index buffer pair and are drawn with an identity model
// matrix.
//
// Returns:
//   - []Vertex: the scene's vertices (72)
//   - []uint16: the scene's indices (108)
func BuildGeometry() ([]Vertex, []uint16) {
	vertices := make([]Vertex, 0, 72)
	indices := make([]uint16, 0, 108)

	vertices, indices = AddCube(vertices, indices, [3]float32{0, -1, 0}, [3]float32{10, 0.1, 10})
	vertices, indices = AddCube(vertices, indices, [3]float32{0, 0.5, 0}, [3]float32{0.5, 0.5, 0.5})
	vertices, indices = AddCube(vertices, indices, [3]float32{1.5, 1, 1}, [3]float32{0.3, 1, 0.3})

	return vertices, indices
}
