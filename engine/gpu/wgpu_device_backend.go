package gpu

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/Carmen-Shannon/shadowcast/engine/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// maxSampledTextures is the size of the device's bindless texture table. Every
// texture created with shader-resource usage is assigned a slot; unused slots
// hold a 1x1 placeholder so the table bind group is always complete.
const maxSampledTextures = 4

// maxPushConstantSize is the byte capacity of the per-pipeline constant block.
// WebGPU has no native push constants, so each pipeline carries a small uniform
// buffer written once per frame at PushConstants time.
const maxPushConstantSize = 256

// wgpuBuffer is the backend Buffer handle.
type wgpuBuffer struct {
	buffer *wgpu.Buffer
}

func (b *wgpuBuffer) Release() {
	b.buffer.Release()
}

// wgpuTexture is the backend Texture handle. Sampled textures additionally
// carry their bindless table slot.
type wgpuTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	format  common.Format

	// tableSlot is the bindless table index; valid only when sampled is true.
	tableSlot uint32
	sampled   bool
}

func (t *wgpuTexture) Release() {
	t.view.Release()
	t.texture.Release()
}

// wgpuShaderModule is the backend ShaderModule handle.
type wgpuShaderModule struct {
	module *wgpu.ShaderModule
}

func (s *wgpuShaderModule) Release() {
	s.module.Release()
}

// wgpuPipeline is the backend pipeline object stored on a pipeline.Pipeline via
// SetHandle. Each pipeline owns its constant-block uniform buffer and the bind
// group that exposes it to the shader at group 0.
type wgpuPipeline struct {
	renderPipeline *wgpu.RenderPipeline
	pushBuffer     *wgpu.Buffer
	pushBindGroup  *wgpu.BindGroup

	// usesTextureTable is true for pipelines with a fragment stage, which bind
	// the device's texture table at group 1.
	usesTextureTable bool
}

// Release frees the pipeline's GPU objects, including its constant-block
// buffer and bind group.
func (p *wgpuPipeline) Release() {
	p.pushBindGroup.Release()
	p.pushBuffer.Release()
	p.renderPipeline.Release()
}

type wgpuDeviceBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width, height int

	// Scratch depth buffer for swapchain render passes, recreated on resize
	// and whenever the requested depth format changes.
	sceneDepthTexture *wgpu.Texture
	sceneDepthView    *wgpu.TextureView
	sceneDepthFormat  wgpu.TextureFormat

	// Bindless texture table state (group 1 for pipelines with a fragment stage).
	tableLayout      *wgpu.BindGroupLayout
	tableBindGroup   *wgpu.BindGroup
	tableSampler     *wgpu.Sampler
	tableViews       [maxSampledTextures]*wgpu.TextureView
	tableNextSlot    uint32
	tableDirty       bool
	placeholder      *wgpu.Texture
	placeholderView  *wgpu.TextureView

	// Frame state between BeginFrame and EndFrame.
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameCmd     *wgpuCommandList
	boundHandle  *wgpuPipeline
}

var _ DeviceBackend = &wgpuDeviceBackendImpl{}

// newWGPUDeviceBackend creates the WebGPU backend: instance, surface, adapter,
// device, queue, texture-table layout, and the clamp sampler shaders use for
// shadow-map fetches.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window layer
//   - forceFallbackAdapter: true to request a software adapter
//
// Returns:
//   - DeviceBackend: the backend
//   - error: an error if the adapter or device could not be acquired
func newWGPUDeviceBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (DeviceBackend, error) {
	runtime.LockOSThread()
	b := &wgpuDeviceBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire GPU adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire GPU device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	if err := b.initTextureTable(); err != nil {
		return nil, err
	}

	return b, nil
}

// initTextureTable creates the fixed-size bindless table layout, the clamp
// sampler, and the 1x1 placeholder bound to unassigned slots. Depth formats
// sample as unfilterable float in core WebGPU, so the table sampler is
// nearest-clamp; shadow filtering comes from the shader's PCF kernel.
func (b *wgpuDeviceBackendImpl) initTextureTable() error {
	entries := make([]wgpu.BindGroupLayoutEntry, 0, maxSampledTextures+1)
	for i := 0; i < maxSampledTextures; i++ {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeUnfilterableFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
	}
	entries = append(entries, wgpu.BindGroupLayoutEntry{
		Binding:    maxSampledTextures,
		Visibility: wgpu.ShaderStageFragment,
		Sampler: wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeNonFiltering,
		},
	})

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Texture Table Layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("failed to create texture table layout: %w", err)
	}
	b.tableLayout = layout

	sampler, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Texture Table Clamp Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create texture table sampler: %w", err)
	}
	b.tableSampler = sampler

	placeholder, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Texture Table Placeholder",
		Size: wgpu.Extent3D{
			Width:              1,
			Height:             1,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatR32Float,
		Usage:         wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("failed to create placeholder texture: %w", err)
	}
	b.placeholder = placeholder
	b.placeholderView, err = placeholder.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create placeholder texture view: %w", err)
	}

	b.tableDirty = true
	return nil
}

// rebuildTableBindGroup recreates the table bind group from the current slot
// assignments. Called lazily from BindPipeline when the table is dirty.
func (b *wgpuDeviceBackendImpl) rebuildTableBindGroup() error {
	if b.tableBindGroup != nil {
		b.tableBindGroup.Release()
		b.tableBindGroup = nil
	}

	entries := make([]wgpu.BindGroupEntry, 0, maxSampledTextures+1)
	for i := 0; i < maxSampledTextures; i++ {
		view := b.tableViews[i]
		if view == nil {
			view = b.placeholderView
		}
		entries = append(entries, wgpu.BindGroupEntry{
			Binding:     uint32(i),
			TextureView: view,
		})
	}
	entries = append(entries, wgpu.BindGroupEntry{
		Binding: maxSampledTextures,
		Sampler: b.tableSampler,
	})

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Texture Table Bind Group",
		Layout:  b.tableLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("failed to create texture table bind group: %w", err)
	}
	b.tableBindGroup = bg
	b.tableDirty = false
	return nil
}

func (b *wgpuDeviceBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.width = width
	b.height = height

	// The scratch depth buffer is sized to the surface; drop it so the next
	// swapchain pass recreates it at the new extent.
	b.releaseSceneDepth()
}

func (b *wgpuDeviceBackendImpl) releaseSceneDepth() {
	if b.sceneDepthView != nil {
		b.sceneDepthView.Release()
		b.sceneDepthView = nil
	}
	if b.sceneDepthTexture != nil {
		b.sceneDepthTexture.Release()
		b.sceneDepthTexture = nil
	}
}

// ensureSceneDepth creates the window-sized scratch depth buffer used by
// swapchain render passes, if missing or if the requested format changed.
func (b *wgpuDeviceBackendImpl) ensureSceneDepth(format wgpu.TextureFormat) error {
	if b.sceneDepthView != nil && b.sceneDepthFormat == format {
		return nil
	}
	b.releaseSceneDepth()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Scene Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(b.width),
			Height:             uint32(b.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create scene depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create scene depth view: %w", err)
	}
	b.sceneDepthTexture = tex
	b.sceneDepthView = view
	b.sceneDepthFormat = format
	return nil
}

func (b *wgpuDeviceBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuDeviceBackendImpl) CreateBuffer(label string, usage common.BufferUsage, data []byte) (Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(data) == 0 {
		return nil, errors.New("buffer initial data must not be empty")
	}

	var wgpuUsage wgpu.BufferUsage
	switch usage {
	case common.BufferUsageIndex:
		wgpuUsage = wgpu.BufferUsageIndex
	default:
		wgpuUsage = wgpu.BufferUsageVertex
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: wgpuUsage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer %q: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)

	return &wgpuBuffer{buffer: buf}, nil
}

func (b *wgpuDeviceBackendImpl) CreateTexture(desc common.TextureDescriptor) (Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var usage wgpu.TextureUsage
	if desc.Usage&common.TextureUsageDepthStencil != 0 {
		usage |= wgpu.TextureUsageRenderAttachment
	}
	if desc.Usage&common.TextureUsageShaderResource != 0 {
		usage |= wgpu.TextureUsageTextureBinding
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: max(desc.Depth, 1),
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        formatToWGPU(desc.Format),
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %q: %w", desc.Label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create texture view for %q: %w", desc.Label, err)
	}

	t := &wgpuTexture{
		texture: tex,
		view:    view,
		format:  desc.Format,
	}

	if desc.Usage&common.TextureUsageShaderResource != 0 {
		if b.tableNextSlot >= maxSampledTextures {
			t.Release()
			return nil, fmt.Errorf("texture table full: at most %d sampled textures", maxSampledTextures)
		}
		t.tableSlot = b.tableNextSlot
		t.sampled = true
		b.tableViews[t.tableSlot] = view
		b.tableNextSlot++
		b.tableDirty = true
	}

	return t, nil
}

func (b *wgpuDeviceBackendImpl) CompileShader(label, source string) (ShaderModule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %q: %w", label, err)
	}
	return &wgpuShaderModule{module: module}, nil
}

func (b *wgpuDeviceBackendImpl) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.Module() == nil {
		return errors.New("a shader module must be set to create a pipeline")
	}
	if p.VertexEntryPoint() == "" {
		return errors.New("a vertex entry point must be set to create a pipeline")
	}
	module, ok := p.Module().(*wgpuShaderModule)
	if !ok {
		return fmt.Errorf("pipeline %q: shader module was not created by this backend", p.Key())
	}

	hasFragment := p.FragmentEntryPoint() != ""

	// Group 0 is the pipeline's constant block; visibility covers only the
	// stages the pipeline actually runs.
	visibility := wgpu.ShaderStageVertex
	if hasFragment {
		visibility |= wgpu.ShaderStageFragment
	}
	pushLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: p.Key() + " Constants Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline %q: failed to create constants layout: %w", p.Key(), err)
	}

	bindGroupLayouts := []*wgpu.BindGroupLayout{pushLayout}
	if hasFragment {
		bindGroupLayouts = append(bindGroupLayouts, b.tableLayout)
	}
	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return fmt.Errorf("pipeline %q: failed to create pipeline layout: %w", p.Key(), err)
	}

	attributes := make([]wgpu.VertexAttribute, 0, len(p.VertexAttributes()))
	for _, a := range p.VertexAttributes() {
		attributes = append(attributes, wgpu.VertexAttribute{
			Format:         vertexFormatToWGPU(a.Format),
			Offset:         a.Offset,
			ShaderLocation: a.ShaderLocation,
		})
	}

	var fragment *wgpu.FragmentState
	if hasFragment {
		fragment = &wgpu.FragmentState{
			Module:     module.module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    formatToWGPU(p.ColorFormat()),
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		}
	}

	biasConstant, biasClamp, biasSlope := p.DepthBias()
	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Key() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module.module,
			EntryPoint: p.VertexEntryPoint(),
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: p.VertexStride(),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes:  attributes,
				},
			},
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  topologyToWGPU(p.Topology()),
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullModeToWGPU(p.CullMode()),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            formatToWGPU(p.DepthFormat()),
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			// WebGPU expresses the constant bias in integer depth units;
			// fractional factors truncate.
			DepthBias:           int32(biasConstant),
			DepthBiasSlopeScale: biasSlope,
			DepthBiasClamp:      biasClamp,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline %q: failed to create render pipeline: %w", p.Key(), err)
	}

	pushBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.Key() + " Constants Buffer",
		Size:  maxPushConstantSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("pipeline %q: failed to create constants buffer: %w", p.Key(), err)
	}
	pushBindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  p.Key() + " Constants Bind Group",
		Layout: pushLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  pushBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline %q: failed to create constants bind group: %w", p.Key(), err)
	}

	p.SetHandle(&wgpuPipeline{
		renderPipeline:   created,
		pushBuffer:       pushBuffer,
		pushBindGroup:    pushBindGroup,
		usesTextureTable: hasFragment,
	})
	return nil
}

func (b *wgpuDeviceBackendImpl) TextureID(t Texture) uint32 {
	wt, ok := t.(*wgpuTexture)
	if !ok || !wt.sampled {
		panic("TextureID: texture was not created with shader-resource usage")
	}
	return wt.tableSlot
}

func (b *wgpuDeviceBackendImpl) SwapchainFormat() common.Format {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return common.FormatUndefined
	}
	// The mapping must preserve sRGB-ness: a pipeline whose color target is the
	// swapchain format has to round-trip back to the exact surface format or
	// render-pass validation rejects the attachment.
	switch *b.surfaceFormat {
	case wgpu.TextureFormatRGBA8Unorm:
		return common.FormatRGBA8Unorm
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return common.FormatRGBA8UnormSrgb
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return common.FormatBGRA8UnormSrgb
	default:
		return common.FormatBGRA8Unorm
	}
}

func (b *wgpuDeviceBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Defensive: if a previous frame's surface texture is still held, avoid
	// attempting to acquire another one.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire swapchain texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("failed to create swapchain view: %w", err)
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	b.frameSurface = surfaceTexture
	b.frameView = view
	b.frameEncoder = encoder
	b.frameCmd = &wgpuCommandList{backend: b}
	b.boundHandle = nil
	return nil
}

func (b *wgpuDeviceBackendImpl) CommandList() CommandList {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frameCmd
}

func (b *wgpuDeviceBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return errors.New("EndFrame called without a frame in flight")
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.releaseFrame()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	b.releaseFrame()
	return nil
}

func (b *wgpuDeviceBackendImpl) releaseFrame() {
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
	b.frameCmd = nil
	b.boundHandle = nil
}

func (b *wgpuDeviceBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	b.releaseSceneDepth()
	if b.tableBindGroup != nil {
		b.tableBindGroup.Release()
	}
	if b.placeholderView != nil {
		b.placeholderView.Release()
	}
	if b.placeholder != nil {
		b.placeholder.Release()
	}
	if b.tableSampler != nil {
		b.tableSampler.Release()
	}
	if b.tableLayout != nil {
		b.tableLayout.Release()
	}
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}

// wgpuCommandList implements CommandList over the frame's command encoder.
type wgpuCommandList struct {
	backend *wgpuDeviceBackendImpl
}

var _ CommandList = &wgpuCommandList{}

func (c *wgpuCommandList) BeginEvent(label string) {
	c.backend.frameEncoder.PushDebugGroup(label)
}

func (c *wgpuCommandList) EndEvent() {
	c.backend.frameEncoder.PopDebugGroup()
}

func (c *wgpuCommandList) TransitionTexture(t Texture, state common.TextureState) {
	// WebGPU tracks resource hazards internally; the transition is part of the
	// recording contract for backends with explicit barriers and for the test
	// recorder, and needs no work here.
	if _, ok := t.(*wgpuTexture); !ok {
		panic("TransitionTexture: texture was not created by this backend")
	}
}

func (c *wgpuCommandList) BeginRenderPass(depth Texture) {
	b := c.backend
	dt, ok := depth.(*wgpuTexture)
	if !ok {
		panic("BeginRenderPass: depth texture was not created by this backend")
	}

	b.framePass = b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		// No color attachments, this is a depth-only pass.
		ColorAttachments: nil,
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            dt.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore, // Must store, the depth is sampled next pass
			DepthClearValue: 1.0,
		},
	})
}

func (c *wgpuCommandList) BeginSwapchainRenderPass(depthFormat common.Format, clearColor common.Color) {
	b := c.backend
	if err := b.ensureSceneDepth(formatToWGPU(depthFormat)); err != nil {
		panic(err)
	}

	rgba := clearColor.RGBA()
	b.framePass = b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.frameView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(rgba[0]),
					G: float64(rgba[1]),
					B: float64(rgba[2]),
					A: float64(rgba[3]),
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.sceneDepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard, // Scratch depth, not needed after the pass
			DepthClearValue: 1.0,
		},
	})
}

func (c *wgpuCommandList) BindPipeline(p pipeline.Pipeline) {
	b := c.backend
	handle, ok := p.Handle().(*wgpuPipeline)
	if !ok {
		panic(fmt.Sprintf("BindPipeline: pipeline %q is not registered with this backend", p.Key()))
	}

	b.framePass.SetPipeline(handle.renderPipeline)
	b.framePass.SetBindGroup(0, handle.pushBindGroup, nil)
	if handle.usesTextureTable {
		if b.tableDirty {
			if err := b.rebuildTableBindGroup(); err != nil {
				panic(err)
			}
		}
		b.framePass.SetBindGroup(1, b.tableBindGroup, nil)
	}
	b.boundHandle = handle
}

func (c *wgpuCommandList) SetViewport(width, height float32) {
	c.backend.framePass.SetViewport(0, 0, width, height, 0, 1)
}

func (c *wgpuCommandList) SetScissor(width, height uint32) {
	c.backend.framePass.SetScissorRect(0, 0, width, height)
}

func (c *wgpuCommandList) BindVertexBuffer(buf Buffer) {
	wb, ok := buf.(*wgpuBuffer)
	if !ok {
		panic("BindVertexBuffer: buffer was not created by this backend")
	}
	c.backend.framePass.SetVertexBuffer(0, wb.buffer, 0, wgpu.WholeSize)
}

func (c *wgpuCommandList) BindIndexBuffer(buf Buffer, format common.IndexFormat) {
	wb, ok := buf.(*wgpuBuffer)
	if !ok {
		panic("BindIndexBuffer: buffer was not created by this backend")
	}
	wgpuFormat := wgpu.IndexFormatUint16
	if format == common.IndexFormatUint32 {
		wgpuFormat = wgpu.IndexFormatUint32
	}
	c.backend.framePass.SetIndexBuffer(wb.buffer, wgpuFormat, 0, wgpu.WholeSize)
}

func (c *wgpuCommandList) PushConstants(data []byte) {
	b := c.backend
	if b.boundHandle == nil {
		panic("PushConstants: no pipeline bound")
	}
	if len(data) > maxPushConstantSize {
		panic(fmt.Sprintf("PushConstants: block of %d bytes exceeds the %d byte limit", len(data), maxPushConstantSize))
	}
	// Queue writes are ordered before the frame's single submission, so one
	// write per pipeline per frame lands before any draw that reads it.
	b.queue.WriteBuffer(b.boundHandle.pushBuffer, 0, data)
}

func (c *wgpuCommandList) DrawIndexed(indexCount, instanceCount uint32) {
	c.backend.framePass.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

func (c *wgpuCommandList) EndRenderPass() {
	b := c.backend
	b.framePass.End()
	b.framePass = nil
	b.boundHandle = nil
}

// formatToWGPU maps the GPU-neutral format enum to the backend's native enum.
func formatToWGPU(f common.Format) wgpu.TextureFormat {
	switch f {
	case common.FormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case common.FormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8Unorm
	case common.FormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case common.FormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8UnormSrgb
	case common.FormatDepth32Float:
		return wgpu.TextureFormatDepth32Float
	default:
		return wgpu.TextureFormatUndefined
	}
}

func vertexFormatToWGPU(f common.Format) wgpu.VertexFormat {
	switch f {
	case common.FormatRGB32Float:
		return wgpu.VertexFormatFloat32x3
	default:
		return wgpu.VertexFormatUndefined
	}
}

func cullModeToWGPU(m common.CullMode) wgpu.CullMode {
	switch m {
	case common.CullModeFront:
		return wgpu.CullModeFront
	case common.CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func topologyToWGPU(t common.Topology) wgpu.PrimitiveTopology {
	switch t {
	case common.TopologyTriangleList:
		fallthrough
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}
