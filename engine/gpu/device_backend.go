package gpu

import (
	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/Carmen-Shannon/shadowcast/engine/pipeline"
)

// DeviceBackend is the backend interface a Device delegates to. It mirrors the
// Device method set plus surface configuration; one implementation exists per
// supported GPU API.
type DeviceBackend interface {
	// ConfigureSurface (re)configures the swapchain surface for a new size.
	// Must be called once before the first frame and again on every resize.
	//
	// Parameters:
	//   - width, height: the surface size in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next
	// ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// CreateBuffer creates an immutable GPU-only buffer with initial data.
	CreateBuffer(label string, usage common.BufferUsage, data []byte) (Buffer, error)

	// CreateTexture creates a 2D texture from the descriptor.
	CreateTexture(desc common.TextureDescriptor) (Texture, error)

	// CompileShader compiles a shader source text into a module.
	CompileShader(label, source string) (ShaderModule, error)

	// RegisterPipeline creates the backend pipeline object and stores it on the
	// descriptor via SetHandle.
	RegisterPipeline(p pipeline.Pipeline) error

	// TextureID returns the bindless table slot assigned to the texture.
	TextureID(t Texture) uint32

	// SwapchainFormat returns the configured swapchain color format.
	SwapchainFormat() common.Format

	// BeginFrame acquires the next swapchain image and opens the frame's
	// command list.
	BeginFrame() error

	// CommandList returns the current frame's command list.
	CommandList() CommandList

	// EndFrame submits the frame and presents.
	EndFrame() error

	// Release frees all backend-owned resources.
	Release()
}
