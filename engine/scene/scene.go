package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/Carmen-Shannon/shadowcast/engine/gpu"
	"github.com/Carmen-Shannon/shadowcast/engine/pipeline"
)

// Scene owns the shadow-mapped demo scene: its geometry buffers, the shadow
// map, the shared shader module, and the two pipelines. RenderFrame records
// one complete frame (caster pass then lit pass) on the device.
type Scene interface {
	// RenderFrame advances the animation clock by delta and records one frame:
	// the depth-only caster pass into the shadow map, then the lit pass into
	// the swapchain sampling it.
	//
	// Parameters:
	//   - delta: seconds elapsed since the previous frame
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or submitted
	RenderFrame(delta float32) error

	// Resize updates the viewport extent used by the lit pass. The caller is
	// responsible for reconfiguring the device's swapchain.
	//
	// Parameters:
	//   - width, height: the new viewport size in pixels
	Resize(width, height int)

	// Time returns the scene's accumulated animation time in seconds.
	//
	// Returns:
	//   - float32: the animation time
	Time() float32

	// Release frees all GPU resources the scene owns, in reverse creation
	// order. The scene must not be used afterwards.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	device        gpu.Device
	width, height int
	time          float32

	clearColor common.Color
	meshColor  common.Color

	vertexBuffer gpu.Buffer
	indexBuffer  gpu.Buffer
	indexCount   uint32

	shadowMap   gpu.Texture
	shadowMapID uint32

	shader         gpu.ShaderModule
	shadowPipeline pipeline.Pipeline
	mainPipeline   pipeline.Pipeline
}

var _ Scene = &scene{}

// NewScene builds the demo scene on the given device: uploads the cube
// geometry, creates the shadow map, compiles the shared shader module, and
// registers the caster and lit pipelines.
//
// Parameters:
//   - device: the GPU device resources are created on
//   - width, height: the initial viewport size in pixels
//   - options: variadic list of BuilderOption functions
//
// Returns:
//   - Scene: the built scene
//   - error: an error if any GPU resource could not be created
func NewScene(device gpu.Device, width, height int, options ...BuilderOption) (Scene, error) {
	s := &scene{
		mu:            &sync.Mutex{},
		device:        device,
		width:         width,
		height:        height,
		clearColor: common.Color{R: 25, G: 25, B: 30, A: 255},
		meshColor:  common.Color{R: 200, G: 200, B: 200, A: 255},
	}
	for _, opt := range options {
		opt(s)
	}

	vertices, indices := BuildGeometry()
	s.indexCount = uint32(len(indices))

	var err error
	s.vertexBuffer, err = device.CreateBuffer("Scene Vertex Buffer", common.BufferUsageVertex, common.SliceToBytes(vertices))
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	s.indexBuffer, err = device.CreateBuffer("Scene Index Buffer", common.BufferUsageIndex, common.SliceToBytes(indices))
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("failed to create index buffer: %w", err)
	}

	// The map extent is fixed: the shader's PCF kernel steps by 1/ShadowMapSize
	// and must match the texture it samples.
	s.shadowMap, err = device.CreateTexture(common.TextureDescriptor{
		Label:  "ShadowMap",
		Width:  ShadowMapSize,
		Height: ShadowMapSize,
		Depth:  1,
		Format: common.FormatDepth32Float,
		Usage:  common.TextureUsageDepthStencil | common.TextureUsageShaderResource,
	})
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("failed to create shadow map: %w", err)
	}
	s.shadowMapID = device.TextureID(s.shadowMap)

	s.shader, err = device.CompileShader("Shadow Scene Shader", ShaderSource)
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("failed to compile scene shader: %w", err)
	}

	// Both pipelines share the shader module and the 24-byte vertex stride; the
	// caster pipeline only reads the position attribute.
	s.shadowPipeline = pipeline.NewPipeline("shadow-caster",
		pipeline.WithModule(s.shader),
		pipeline.WithVertexEntryPoint(ShadowVertexEntryPoint),
		pipeline.WithVertexLayout(VertexStride,
			common.VertexAttribute{ShaderLocation: 0, Format: common.FormatRGB32Float, Offset: 0, Semantic: "POSITION"},
		),
		pipeline.WithDepthFormat(common.FormatDepth32Float),
		pipeline.WithCullMode(common.CullModeFront), // cull front faces to avoid self-shadowing acne
		pipeline.WithDepthBias(ShadowDepthBiasConstant, ShadowDepthBiasClamp, ShadowDepthBiasSlope),
	)
	if err := device.RegisterPipeline(s.shadowPipeline); err != nil {
		s.Release()
		return nil, fmt.Errorf("failed to register caster pipeline: %w", err)
	}

	s.mainPipeline = pipeline.NewPipeline("main-lit",
		pipeline.WithModule(s.shader),
		pipeline.WithVertexEntryPoint(MainVertexEntryPoint),
		pipeline.WithFragmentEntryPoint(MainFragmentEntryPoint),
		pipeline.WithVertexLayout(VertexStride,
			common.VertexAttribute{ShaderLocation: 0, Format: common.FormatRGB32Float, Offset: 0, Semantic: "POSITION"},
			common.VertexAttribute{ShaderLocation: 1, Format: common.FormatRGB32Float, Offset: 12, Semantic: "NORMAL"},
		),
		pipeline.WithColorFormat(device.SwapchainFormat()),
		pipeline.WithDepthFormat(common.FormatDepth32Float),
		pipeline.WithCullMode(common.CullModeBack),
	)
	if err := device.RegisterPipeline(s.mainPipeline); err != nil {
		s.Release()
		return nil, fmt.Errorf("failed to register lit pipeline: %w", err)
	}

	return s, nil
}

func (s *scene) RenderFrame(delta float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.time += delta
	matrices := ComputeFrameMatrices(s.time, float32(s.width)/float32(s.height))

	if err := s.device.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	cmd := s.device.CommandList()

	// Pass 1: render caster depth from the light's point of view.
	cmd.BeginEvent("Shadow Pass")
	cmd.TransitionTexture(s.shadowMap, common.TextureStateDepthWrite)
	cmd.BeginRenderPass(s.shadowMap)
	cmd.BindPipeline(s.shadowPipeline)

	cmd.SetViewport(ShadowMapSize, ShadowMapSize)
	cmd.SetScissor(ShadowMapSize, ShadowMapSize)

	cmd.BindVertexBuffer(s.vertexBuffer)
	cmd.BindIndexBuffer(s.indexBuffer, common.IndexFormatUint16)

	var shadowPush ShadowPushConstants
	common.Mul4(shadowPush.LightMVP[:], matrices.LightViewProj[:], matrices.Model[:])
	cmd.PushConstants(shadowPush.Marshal())
	cmd.DrawIndexed(s.indexCount, 1)

	cmd.EndRenderPass()
	cmd.EndEvent()

	// Pass 2: lit render sampling the shadow map just written.
	cmd.BeginEvent("Main Pass")
	cmd.TransitionTexture(s.shadowMap, common.TextureStateShaderRead)
	cmd.BeginSwapchainRenderPass(common.FormatDepth32Float, s.clearColor)
	cmd.BindPipeline(s.mainPipeline)

	cmd.SetViewport(float32(s.width), float32(s.height))
	cmd.SetScissor(uint32(s.width), uint32(s.height))

	cmd.BindVertexBuffer(s.vertexBuffer)
	cmd.BindIndexBuffer(s.indexBuffer, common.IndexFormatUint16)

	mainPush := MainPushConstants{
		ViewProj:      matrices.CamViewProj,
		Model:         matrices.Model,
		LightViewProj: matrices.LightViewProj,
		CameraPos:     matrices.CameraPos,
		LightDir:      matrices.LightDir,
		Color:         s.meshColor.RGBA(),
		ShadowMapID:   s.shadowMapID,
	}
	cmd.PushConstants(mainPush.Marshal())
	cmd.DrawIndexed(s.indexCount, 1)

	cmd.EndRenderPass()
	cmd.EndEvent()

	if err := s.device.EndFrame(); err != nil {
		return fmt.Errorf("failed to submit frame: %w", err)
	}
	return nil
}

func (s *scene) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *scene) Time() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range []pipeline.Pipeline{s.mainPipeline, s.shadowPipeline} {
		if p == nil {
			continue
		}
		if h, ok := p.Handle().(interface{ Release() }); ok {
			h.Release()
		}
	}
	s.mainPipeline = nil
	s.shadowPipeline = nil

	if s.shader != nil {
		s.shader.Release()
		s.shader = nil
	}
	if s.shadowMap != nil {
		s.shadowMap.Release()
		s.shadowMap = nil
	}
	if s.indexBuffer != nil {
		s.indexBuffer.Release()
		s.indexBuffer = nil
	}
	if s.vertexBuffer != nil {
		s.vertexBuffer.Release()
		s.vertexBuffer = nil
	}
}
