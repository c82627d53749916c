package gpu

import (
	"sync"

	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/Carmen-Shannon/shadowcast/engine/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is the narrow windowing contract the device consumes: a native
// surface descriptor to attach to and the initial drawable extent. The window
// layer's Window satisfies it; depending on Surface instead keeps this package
// off the windowing layer's platform bindings.
type Surface interface {
	// SurfaceDescriptor returns the platform surface descriptor the backend
	// creates its presentation surface from.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the drawable width in pixels.
	//
	// Returns:
	//   - int: the width in pixels
	Width() int

	// Height returns the drawable height in pixels.
	//
	// Returns:
	//   - int: the height in pixels
	Height() int
}

// Buffer is an opaque handle to a GPU buffer. Buffers are immutable after
// their initial upload; the core never writes to them again.
type Buffer interface {
	// Release frees the buffer's GPU resources.
	Release()
}

// Texture is an opaque handle to a GPU texture.
type Texture interface {
	// Release frees the texture's GPU resources.
	Release()
}

// ShaderModule is an opaque handle to a compiled shader module. One module may
// export multiple entry points; pipelines select entry points by name.
// ShaderModule satisfies pipeline.Module.
type ShaderModule interface {
	// Release frees the module's GPU resources.
	Release()
}

// CommandList records GPU commands for one frame. A CommandList is obtained
// from Device.CommandList between BeginFrame and EndFrame; all recording
// happens on a single thread and commands execute in recording order.
type CommandList interface {
	// BeginEvent opens a labeled debug scope visible in GPU capture tools.
	// Must be balanced by EndEvent.
	//
	// Parameters:
	//   - label: the scope's debug name
	BeginEvent(label string)

	// EndEvent closes the innermost debug scope opened by BeginEvent.
	EndEvent()

	// TransitionTexture moves a texture into the given resource state. The
	// transition establishes the happens-before between a depth-write use and a
	// shader-read use of the same texture within one frame; backends that track
	// hazards internally may treat it as a validation-only record.
	//
	// Parameters:
	//   - t: the texture to transition
	//   - state: the target state
	TransitionTexture(t Texture, state common.TextureState)

	// BeginRenderPass begins a depth-only render pass with zero color
	// attachments targeting the given depth texture. Depth is cleared to the
	// far-plane value (1.0) and stored.
	//
	// Parameters:
	//   - depth: the depth attachment texture
	BeginRenderPass(depth Texture)

	// BeginSwapchainRenderPass begins a render pass targeting the current
	// swapchain color attachment with a device-owned scratch depth buffer of
	// the given format. The color attachment is cleared to clearColor and the
	// depth buffer to 1.0.
	//
	// Parameters:
	//   - depthFormat: the scratch depth buffer format
	//   - clearColor: the color attachment clear value
	BeginSwapchainRenderPass(depthFormat common.Format, clearColor common.Color)

	// BindPipeline binds a registered pipeline for subsequent draws within the
	// current render pass.
	//
	// Parameters:
	//   - p: the pipeline to bind (must have been registered with the device)
	BindPipeline(p pipeline.Pipeline)

	// SetViewport sets the full viewport rectangle for the current render pass,
	// anchored at the origin with the standard [0, 1] depth range.
	//
	// Parameters:
	//   - width, height: viewport extent in pixels
	SetViewport(width, height float32)

	// SetScissor sets the scissor rectangle for the current render pass,
	// anchored at the origin.
	//
	// Parameters:
	//   - width, height: scissor extent in pixels
	SetScissor(width, height uint32)

	// BindVertexBuffer binds a vertex buffer to slot 0.
	//
	// Parameters:
	//   - b: the vertex buffer
	BindVertexBuffer(b Buffer)

	// BindIndexBuffer binds an index buffer with the given index width.
	//
	// Parameters:
	//   - b: the index buffer
	//   - format: the index element format
	BindIndexBuffer(b Buffer, format common.IndexFormat)

	// PushConstants uploads a small per-draw constant block for the currently
	// bound pipeline. The block's size and field offsets must match the layout
	// declared by the pipeline's shader; a size mismatch is a programmer error
	// and panics.
	//
	// Parameters:
	//   - data: the raw constant block bytes
	PushConstants(data []byte)

	// DrawIndexed issues one indexed draw.
	//
	// Parameters:
	//   - indexCount: the number of indices to draw
	//   - instanceCount: the number of instances
	DrawIndexed(indexCount, instanceCount uint32)

	// EndRenderPass ends the current render pass.
	EndRenderPass()
}

// Device is the narrow GPU interface the rendering core consumes: resource
// lifecycle, pipeline registration, bindless texture-id lookup, and the
// per-frame begin/record/end contract. A single backend is chosen at process
// start; the core never reaches for it through ambient state.
type Device interface {
	// CreateBuffer creates an immutable GPU-only buffer and uploads the initial
	// data.
	//
	// Parameters:
	//   - label: a debug name attached to the GPU object
	//   - usage: the buffer's bind point (vertex or index)
	//   - data: the initial contents; the buffer's size equals len(data)
	//
	// Returns:
	//   - Buffer: the created buffer
	//   - error: an error if buffer creation fails
	CreateBuffer(label string, usage common.BufferUsage, data []byte) (Buffer, error)

	// CreateTexture creates a 2D texture from the given descriptor.
	//
	// Parameters:
	//   - desc: the texture descriptor
	//
	// Returns:
	//   - Texture: the created texture
	//   - error: an error if texture creation fails
	CreateTexture(desc common.TextureDescriptor) (Texture, error)

	// CompileShader compiles an opaque shader source text into a module. The
	// core hands the text through without inspecting it.
	//
	// Parameters:
	//   - label: a debug name for the module
	//   - source: the shader source text
	//
	// Returns:
	//   - ShaderModule: the compiled module
	//   - error: an error if compilation fails
	CompileShader(label, source string) (ShaderModule, error)

	// RegisterPipeline creates the backend pipeline object described by the
	// Pipeline descriptor and stores it back on the descriptor via SetHandle.
	//
	// Parameters:
	//   - p: the pipeline descriptor to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipeline(p pipeline.Pipeline) error

	// TextureID returns the small-integer bindless identifier for a texture
	// created with shader-resource usage. Shaders resolve the id through the
	// device's texture table; the id is stable for the texture's lifetime.
	//
	// Parameters:
	//   - t: the texture to look up
	//
	// Returns:
	//   - uint32: the bindless texture id
	TextureID(t Texture) uint32

	// SwapchainFormat returns the color format of the swapchain's images.
	//
	// Returns:
	//   - common.Format: the swapchain color format
	SwapchainFormat() common.Format

	// Resize reconfigures the swapchain surface for a new window size.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// BeginFrame acquires the next swapchain image and opens a fresh command
	// list for the frame. May block on GPU frame pacing.
	//
	// Returns:
	//   - error: an error if the swapchain image could not be acquired
	BeginFrame() error

	// CommandList returns the frame's command list. Only valid between
	// BeginFrame and EndFrame.
	//
	// Returns:
	//   - CommandList: the current frame's command list
	CommandList() CommandList

	// EndFrame submits the frame's recorded commands and presents the swapchain
	// image.
	//
	// Returns:
	//   - error: an error if submission fails
	EndFrame() error

	// Release frees all device-owned resources. Resources created through the
	// device must be released before the device itself.
	Release()
}

// BackendType identifies the GPU backend implementation used by the Device.
type BackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based backend.
	BackendTypeWGPU BackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting,
	// capping frame rate to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for
	// vertical blank. May cause tearing but provides the lowest latency.
	PresentModeUncapped
)

// device is the implementation of the Device interface. It delegates all work
// to the selected backend and holds pre-creation config from builder options.
type device struct {
	mu *sync.Mutex

	backendType BackendType
	backend     DeviceBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

var _ Device = &device{}

// NewDevice creates a Device bound to the given surface. The surface
// descriptor and initial extent are taken from the surface provider.
//
// Parameters:
//   - backendType: the GPU backend to use (e.g., BackendTypeWGPU)
//   - surface: the surface the device presents to (typically a window.Window)
//   - options: variadic list of DeviceBuilderOption functions
//
// Returns:
//   - Device: the configured device
//   - error: an error if the adapter or device could not be acquired
func NewDevice(backendType BackendType, surface Surface, options ...DeviceBuilderOption) (Device, error) {
	d := &device{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(d)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		d.backend, err = newWGPUDeviceBackend(surface.SurfaceDescriptor(), d.forceFallbackAdapter)
	}
	if err != nil {
		return nil, err
	}

	if d.pendingPresentMode != nil {
		d.backend.SetPresentMode(*d.pendingPresentMode)
	}

	d.backend.ConfigureSurface(surface.Width(), surface.Height())
	return d, nil
}

func (d *device) CreateBuffer(label string, usage common.BufferUsage, data []byte) (Buffer, error) {
	return d.backend.CreateBuffer(label, usage, data)
}

func (d *device) CreateTexture(desc common.TextureDescriptor) (Texture, error) {
	return d.backend.CreateTexture(desc)
}

func (d *device) CompileShader(label, source string) (ShaderModule, error) {
	return d.backend.CompileShader(label, source)
}

func (d *device) RegisterPipeline(p pipeline.Pipeline) error {
	return d.backend.RegisterPipeline(p)
}

func (d *device) TextureID(t Texture) uint32 {
	return d.backend.TextureID(t)
}

func (d *device) SwapchainFormat() common.Format {
	return d.backend.SwapchainFormat()
}

func (d *device) Resize(width, height int) {
	d.backend.ConfigureSurface(width, height)
}

func (d *device) BeginFrame() error {
	return d.backend.BeginFrame()
}

func (d *device) CommandList() CommandList {
	return d.backend.CommandList()
}

func (d *device) EndFrame() error {
	return d.backend.EndFrame()
}

func (d *device) Release() {
	d.backend.Release()
}
