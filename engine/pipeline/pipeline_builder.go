package pipeline

import (
	"github.com/Carmen-Shannon/shadowcast/common"
)

// BuilderOption is a functional option used to configure a Pipeline during construction.
type BuilderOption func(*pipeline)

// WithModule sets the compiled shader module this pipeline resolves its entry
// points from. Multiple pipelines may share one module.
//
// Parameters:
//   - m: the compiled shader module
//
// Returns:
//   - BuilderOption: a function that sets the shader module for this pipeline
func WithModule(m Module) BuilderOption {
	return func(p *pipeline) {
		p.module = m
	}
}

// WithVertexEntryPoint sets the name of the vertex-stage entry point.
//
// Parameters:
//   - name: the vertex entry-point name exported by the shader module
//
// Returns:
//   - BuilderOption: a function that sets the vertex entry point for this pipeline
func WithVertexEntryPoint(name string) BuilderOption {
	return func(p *pipeline) {
		p.vertexEntryPoint = name
	}
}

// WithFragmentEntryPoint sets the name of the fragment-stage entry point.
// Omit for depth-only pipelines.
//
// Parameters:
//   - name: the fragment entry-point name exported by the shader module
//
// Returns:
//   - BuilderOption: a function that sets the fragment entry point for this pipeline
func WithFragmentEntryPoint(name string) BuilderOption {
	return func(p *pipeline) {
		p.fragmentEntryPoint = name
	}
}

// WithVertexLayout sets the interleaved vertex layout: the byte stride between
// consecutive vertices and the attribute elements within one vertex.
//
// Parameters:
//   - stride: the vertex stride in bytes
//   - attributes: the layout elements (slot, format, byte offset, semantic)
//
// Returns:
//   - BuilderOption: a function that sets the vertex layout for this pipeline
func WithVertexLayout(stride uint64, attributes ...common.VertexAttribute) BuilderOption {
	return func(p *pipeline) {
		p.vertexStride = stride
		p.vertexAttributes = attributes
	}
}

// WithColorFormat sets the color attachment format. Pipelines without a color
// format have zero color attachments (depth-only shadow casters).
//
// Parameters:
//   - format: the color attachment format (typically the swapchain format)
//
// Returns:
//   - BuilderOption: a function that sets the color format for this pipeline
func WithColorFormat(format common.Format) BuilderOption {
	return func(p *pipeline) {
		p.colorFormat = format
	}
}

// WithDepthFormat sets the depth attachment format.
//
// Parameters:
//   - format: the depth attachment format
//
// Returns:
//   - BuilderOption: a function that sets the depth format for this pipeline
func WithDepthFormat(format common.Format) BuilderOption {
	return func(p *pipeline) {
		p.depthFormat = format
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the primitive topology (e.g., common.TopologyTriangleList)
//
// Returns:
//   - BuilderOption: a function that sets the topology for this pipeline
func WithTopology(topology common.Topology) BuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode (common.CullModeNone, common.CullModeFront, common.CullModeBack)
//
// Returns:
//   - BuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode common.CullMode) BuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithDepthTest sets whether depth testing is enabled.
//
// Parameters:
//   - enabled: true to enable depth testing
//
// Returns:
//   - BuilderOption: a function that sets the depth test state for this pipeline
func WithDepthTest(enabled bool) BuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWrite sets whether depth writing is enabled.
//
// Parameters:
//   - enabled: true to enable depth writes
//
// Returns:
//   - BuilderOption: a function that sets the depth write state for this pipeline
func WithDepthWrite(enabled bool) BuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthBias sets the rasterizer depth-bias triple. Shadow caster pipelines
// use a positive constant and slope-scaled bias to push written depth away from
// the lit surface.
//
// Parameters:
//   - constant: the constant bias factor
//   - clamp: the maximum bias magnitude (0 = unclamped)
//   - slope: the slope-scaled bias factor
//
// Returns:
//   - BuilderOption: a function that sets the depth bias for this pipeline
func WithDepthBias(constant, clamp, slope float32) BuilderOption {
	return func(p *pipeline) {
		p.depthBiasConstant = constant
		p.depthBiasClamp = clamp
		p.depthBiasSlope = slope
	}
}
