package common

// Format identifies a texel or vertex attribute format understood by the GPU layer.
// Backends translate these to their native format enums.
type Format int

const (
	// FormatUndefined is the zero value; using it in a descriptor is an error.
	FormatUndefined Format = iota

	// FormatRGB32Float is three 32-bit floats (vertex positions and normals).
	FormatRGB32Float

	// FormatRGBA8Unorm is 8-bit-per-channel normalized RGBA color.
	FormatRGBA8Unorm

	// FormatBGRA8Unorm is 8-bit-per-channel normalized BGRA color, the most common
	// swapchain format on desktop backends.
	FormatBGRA8Unorm

	// FormatRGBA8UnormSrgb is FormatRGBA8Unorm with sRGB-encoded storage.
	FormatRGBA8UnormSrgb

	// FormatBGRA8UnormSrgb is FormatBGRA8Unorm with sRGB-encoded storage. Many
	// surfaces report an sRGB format as their preferred swapchain format, and a
	// pipeline targeting the swapchain must carry the encoding through.
	FormatBGRA8UnormSrgb

	// FormatDepth32Float is a single 32-bit floating-point depth channel.
	FormatDepth32Float
)

// BufferUsage declares what a GPU buffer will be bound as.
type BufferUsage int

const (
	// BufferUsageVertex marks a buffer as a vertex buffer.
	BufferUsageVertex BufferUsage = iota

	// BufferUsageIndex marks a buffer as an index buffer.
	BufferUsageIndex
)

// TextureUsage is a bit set declaring the aspects a texture will be used as.
type TextureUsage uint32

const (
	// TextureUsageDepthStencil allows the texture to be bound as a depth-stencil attachment.
	TextureUsageDepthStencil TextureUsage = 1 << iota

	// TextureUsageShaderResource allows the texture to be sampled from shaders.
	TextureUsageShaderResource
)

// TextureState identifies the resource state a texture must be in before a pass
// reads or writes it. Transitions between states are the caller's responsibility
// and establish the ordering between a depth-write use and a shader-read use of
// the same texture within one frame.
type TextureState int

const (
	// TextureStateDepthWrite is required before the texture is used as a depth attachment.
	TextureStateDepthWrite TextureState = iota

	// TextureStateShaderRead is required before the texture is sampled in a shader.
	TextureStateShaderRead
)

// CullMode selects which triangle faces the rasterizer discards.
type CullMode int

const (
	// CullModeNone disables face culling.
	CullModeNone CullMode = iota

	// CullModeFront culls front faces. Used by shadow caster pipelines so the
	// depth written to the shadow map is that of back-facing geometry.
	CullModeFront

	// CullModeBack culls back faces (the usual setting for opaque geometry).
	CullModeBack
)

// Topology selects the primitive assembly mode.
type Topology int

const (
	// TopologyTriangleList assembles every three indices into one triangle.
	TopologyTriangleList Topology = iota
)

// IndexFormat identifies the width of index buffer entries.
type IndexFormat int

const (
	// IndexFormatUint16 is 16-bit indices.
	IndexFormatUint16 IndexFormat = iota

	// IndexFormatUint32 is 32-bit indices.
	IndexFormatUint32
)

// Color is an 8-bit-per-channel RGBA color, matching the byte order used for
// clear values and push-constant color fields.
type Color struct {
	R, G, B, A uint8
}

// RGBA returns the color as four normalized float32 components in [0, 1].
//
// Returns:
//   - [4]float32: the normalized R, G, B, A components
func (c Color) RGBA() [4]float32 {
	return [4]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
		float32(c.A) / 255.0,
	}
}

// VertexAttribute describes one element of an interleaved vertex layout.
type VertexAttribute struct {
	// ShaderLocation is the attribute slot the shader reads this element from.
	ShaderLocation uint32

	// Format is the element's data format.
	Format Format

	// Offset is the element's byte offset from the start of the vertex.
	Offset uint64

	// Semantic is a human-readable name for the attribute ("POSITION", "NORMAL").
	// Backends that key attributes by semantic use it; others use ShaderLocation.
	Semantic string
}

// TextureDescriptor describes a 2D texture to create on the device.
type TextureDescriptor struct {
	// Label is an optional debug name attached to the GPU object.
	Label string

	// Width, Height and Depth are the texture extents in texels.
	Width, Height, Depth uint32

	// Format is the texel format.
	Format Format

	// Usage is the set of aspects the texture will be used as.
	Usage TextureUsage
}
