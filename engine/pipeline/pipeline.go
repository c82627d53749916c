package pipeline

import (
	"github.com/Carmen-Shannon/shadowcast/common"
)

// Module is an opaque handle to a compiled shader module. The GPU layer's
// CompileShader produces values satisfying this interface; a single module may
// export several entry points, and multiple pipelines may share one module.
type Module interface {
	// Release frees the module's GPU resources.
	Release()
}

// pipeline is the implementation of the Pipeline interface.
// It holds the full descriptor state used by the GPU layer to create the
// backend pipeline object, plus the opaque handle set after registration.
type pipeline struct {
	// key is the unique identifier for this pipeline, used for labels and lookups
	key string

	// module is the compiled shader module the entry points are resolved from.
	// Required before registering the pipeline with a device.
	module Module

	vertexEntryPoint   string
	fragmentEntryPoint string

	vertexAttributes []common.VertexAttribute
	vertexStride     uint64

	// colorFormat is FormatUndefined for depth-only pipelines (zero color targets)
	colorFormat common.Format
	depthFormat common.Format

	topology common.Topology
	cullMode common.CullMode

	depthTestEnabled  bool
	depthWriteEnabled bool

	// depthBiasConstant/Clamp/Slope is the rasterizer depth-bias triple applied
	// to shadow caster pipelines to counter self-shadowing acne.
	depthBiasConstant float32
	depthBiasClamp    float32
	depthBiasSlope    float32

	// handle is the backend pipeline object, set via SetHandle after registration
	handle any
}

// Pipeline describes a graphics pipeline to the GPU layer: a shader module with
// vertex/fragment entry-point names, a vertex layout, attachment formats,
// rasterizer state, and depth state. The backend creates its native pipeline
// object from this descriptor and stores it back on the Pipeline via SetHandle.
type Pipeline interface {
	// Key returns the unique identifier for this pipeline.
	//
	// Returns:
	//   - string: the pipeline's key
	Key() string

	// Module returns the compiled shader module this pipeline draws its entry
	// points from, or nil if none has been set.
	//
	// Returns:
	//   - Module: the shader module
	Module() Module

	// VertexEntryPoint returns the name of the vertex-stage entry point.
	//
	// Returns:
	//   - string: the vertex entry-point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment-stage entry point.
	// Empty for depth-only pipelines, which have no fragment stage.
	//
	// Returns:
	//   - string: the fragment entry-point name, or "" if depth-only
	FragmentEntryPoint() string

	// VertexAttributes returns the interleaved vertex layout elements.
	//
	// Returns:
	//   - []common.VertexAttribute: the vertex layout
	VertexAttributes() []common.VertexAttribute

	// VertexStride returns the byte stride between consecutive vertices.
	//
	// Returns:
	//   - uint64: the vertex stride in bytes
	VertexStride() uint64

	// ColorFormat returns the color attachment format, or FormatUndefined for
	// pipelines with zero color attachments (shadow casters).
	//
	// Returns:
	//   - common.Format: the color attachment format
	ColorFormat() common.Format

	// DepthFormat returns the depth attachment format.
	//
	// Returns:
	//   - common.Format: the depth attachment format
	DepthFormat() common.Format

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - common.Topology: the primitive topology
	Topology() common.Topology

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - common.CullMode: the cull mode
	CullMode() common.CullMode

	// DepthTestEnabled returns whether depth testing is enabled.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// DepthBias returns the rasterizer depth-bias triple.
	//
	// Returns:
	//   - float32: the constant bias factor
	//   - float32: the bias clamp
	//   - float32: the slope-scaled bias factor
	DepthBias() (constant, clamp, slope float32)

	// Handle returns the backend pipeline object set by SetHandle, or nil if the
	// pipeline has not been registered with a device yet. The caller is
	// responsible for type-asserting the returned value.
	//
	// Returns:
	//   - any: the backend pipeline object
	Handle() any

	// SetHandle stores the backend pipeline object on this Pipeline.
	//
	// Parameters:
	//   - handle: the backend pipeline object
	SetHandle(handle any)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline descriptor with the given key and options.
// Defaults: triangle-list topology, no culling, depth test and write enabled,
// zero depth bias, no color attachment, no depth attachment.
//
// Parameters:
//   - key: the unique identifier for this pipeline
//   - opts: a variadic list of BuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline descriptor
func NewPipeline(key string, opts ...BuilderOption) Pipeline {
	p := &pipeline{
		key:               key,
		topology:          common.TopologyTriangleList,
		cullMode:          common.CullModeNone,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Module() Module {
	return p.module
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) VertexAttributes() []common.VertexAttribute {
	return p.vertexAttributes
}

func (p *pipeline) VertexStride() uint64 {
	return p.vertexStride
}

func (p *pipeline) ColorFormat() common.Format {
	return p.colorFormat
}

func (p *pipeline) DepthFormat() common.Format {
	return p.depthFormat
}

func (p *pipeline) Topology() common.Topology {
	return p.topology
}

func (p *pipeline) CullMode() common.CullMode {
	return p.cullMode
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() (constant, clamp, slope float32) {
	return p.depthBiasConstant, p.depthBiasClamp, p.depthBiasSlope
}

func (p *pipeline) Handle() any {
	return p.handle
}

func (p *pipeline) SetHandle(handle any) {
	p.handle = handle
}
