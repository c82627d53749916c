package scene

import (
	"encoding/binary"
	"testing"

	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/Carmen-Shannon/shadowcast/engine/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) (Scene, *gputest.RecordingDevice) {
	t.Helper()
	device := gputest.NewDevice()
	s, err := NewScene(device, 1280, 720)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s, device
}

func TestNewSceneRegistersPipelines(t *testing.T) {
	_, device := newTestScene(t)

	caster := device.Pipeline("shadow-caster")
	require.NotNil(t, caster)
	assert.Equal(t, ShadowVertexEntryPoint, caster.VertexEntryPoint())
	assert.Empty(t, caster.FragmentEntryPoint())
	assert.Equal(t, common.CullModeFront, caster.CullMode())
	assert.Equal(t, common.FormatUndefined, caster.ColorFormat())
	assert.Equal(t, common.FormatDepth32Float, caster.DepthFormat())
	constant, clamp, slope := caster.DepthBias()
	assert.Equal(t, float32(1.25), constant)
	assert.Equal(t, float32(0), clamp)
	assert.Equal(t, float32(1.75), slope)
	assert.Len(t, caster.VertexAttributes(), 1)
	assert.Equal(t, uint64(VertexStride), caster.VertexStride())

	lit := device.Pipeline("main-lit")
	require.NotNil(t, lit)
	assert.Equal(t, MainVertexEntryPoint, lit.VertexEntryPoint())
	assert.Equal(t, MainFragmentEntryPoint, lit.FragmentEntryPoint())
	assert.Equal(t, common.CullModeBack, lit.CullMode())
	assert.Equal(t, device.SwapchainFormat(), lit.ColorFormat())
	assert.Len(t, lit.VertexAttributes(), 2)
	constant, clamp, slope = lit.DepthBias()
	assert.Zero(t, constant)
	assert.Zero(t, clamp)
	assert.Zero(t, slope)
}

func TestRenderFrameCommandSequence(t *testing.T) {
	s, device := newTestScene(t)
	require.NoError(t, s.RenderFrame(0.016))

	var ops []gputest.Op
	for _, c := range device.Commands() {
		ops = append(ops, c.Op)
	}
	want := []gputest.Op{
		gputest.OpBeginFrame,
		gputest.OpBeginEvent,
		gputest.OpTransitionTexture,
		gputest.OpBeginRenderPass,
		gputest.OpBindPipeline,
		gputest.OpSetViewport,
		gputest.OpSetScissor,
		gputest.OpBindVertexBuffer,
		gputest.OpBindIndexBuffer,
		gputest.OpPushConstants,
		gputest.OpDrawIndexed,
		gputest.OpEndRenderPass,
		gputest.OpEndEvent,
		gputest.OpBeginEvent,
		gputest.OpTransitionTexture,
		gputest.OpBeginSwapchainPass,
		gputest.OpBindPipeline,
		gputest.OpSetViewport,
		gputest.OpSetScissor,
		gputest.OpBindVertexBuffer,
		gputest.OpBindIndexBuffer,
		gputest.OpPushConstants,
		gputest.OpDrawIndexed,
		gputest.OpEndRenderPass,
		gputest.OpEndEvent,
		gputest.OpEndFrame,
	}
	assert.Equal(t, want, ops)
}

func TestRenderFramePassDetails(t *testing.T) {
	s, device := newTestScene(t)
	require.NoError(t, s.RenderFrame(0.016))

	events := device.CommandsByOp(gputest.OpBeginEvent)
	require.Len(t, events, 2)
	assert.Equal(t, "Shadow Pass", events[0].Label)
	assert.Equal(t, "Main Pass", events[1].Label)

	// The shadow map is transitioned to depth-write before the caster pass and
	// to shader-read before the lit pass.
	transitions := device.CommandsByOp(gputest.OpTransitionTexture)
	require.Len(t, transitions, 2)
	assert.Equal(t, "ShadowMap", transitions[0].Label)
	assert.Equal(t, common.TextureStateDepthWrite, transitions[0].State)
	assert.Equal(t, "ShadowMap", transitions[1].Label)
	assert.Equal(t, common.TextureStateShaderRead, transitions[1].State)

	pipelines := device.CommandsByOp(gputest.OpBindPipeline)
	require.Len(t, pipelines, 2)
	assert.Equal(t, "shadow-caster", pipelines[0].Pipeline)
	assert.Equal(t, "main-lit", pipelines[1].Pipeline)

	// Caster pass covers the shadow map, lit pass the window.
	viewports := device.CommandsByOp(gputest.OpSetViewport)
	require.Len(t, viewports, 2)
	assert.Equal(t, float32(ShadowMapSize), viewports[0].Width)
	assert.Equal(t, float32(ShadowMapSize), viewports[0].Height)
	assert.Equal(t, float32(1280), viewports[1].Width)
	assert.Equal(t, float32(720), viewports[1].Height)

	swapchain := device.CommandsByOp(gputest.OpBeginSwapchainPass)
	require.Len(t, swapchain, 1)
	assert.Equal(t, common.FormatDepth32Float, swapchain[0].Format)
	assert.Equal(t, common.Color{R: 25, G: 25, B: 30, A: 255}, swapchain[0].ClearColor)

	// Both passes draw the full scene in one indexed call.
	draws := device.CommandsByOp(gputest.OpDrawIndexed)
	require.Len(t, draws, 2)
	for _, d := range draws {
		assert.Equal(t, uint32(108), d.IndexCount)
		assert.Equal(t, uint32(1), d.InstanceCount)
	}
}

func TestRenderFramePushConstantCoherence(t *testing.T) {
	s, device := newTestScene(t)
	require.NoError(t, s.RenderFrame(0.5))

	pushes := device.CommandsByOp(gputest.OpPushConstants)
	require.Len(t, pushes, 2)
	require.Len(t, pushes[0].Data, 64)
	require.Len(t, pushes[1].Data, 256)

	// With an identity model matrix the caster's lightMVP equals the lit
	// block's lightViewProj; both passes must see the same light transform.
	assert.Equal(t, pushes[0].Data, pushes[1].Data[128:192])

	// The lit block carries the shadow map's bindless id.
	shadowMapID := binary.LittleEndian.Uint32(pushes[1].Data[240:244])
	assert.Equal(t, uint32(0), shadowMapID)
}

func TestShadowMapExtentMatchesSampleFootprint(t *testing.T) {
	s, device := newTestScene(t)

	// The shader's PCF kernel steps by 1/ShadowMapSize, so the map the caster
	// pass writes must have exactly that extent.
	rt, ok := s.(*scene).shadowMap.(*gputest.RecordingTexture)
	require.True(t, ok)
	assert.Equal(t, uint32(ShadowMapSize), rt.Desc.Width)
	assert.Equal(t, uint32(ShadowMapSize), rt.Desc.Height)

	require.NoError(t, s.RenderFrame(0.016))
	viewports := device.CommandsByOp(gputest.OpSetViewport)
	require.NotEmpty(t, viewports)
	assert.Equal(t, float32(ShadowMapSize), viewports[0].Width)
	assert.Equal(t, float32(ShadowMapSize), viewports[0].Height)
}

func TestRenderFrameAccumulatesTime(t *testing.T) {
	s, _ := newTestScene(t)
	require.NoError(t, s.RenderFrame(0.5))
	require.NoError(t, s.RenderFrame(0.5))
	assert.InDelta(t, 1.0, s.Time(), 1e-6)
}

func TestRenderFrameAnimatesLight(t *testing.T) {
	s, device := newTestScene(t)
	require.NoError(t, s.RenderFrame(0.016))
	first := device.CommandsByOp(gputest.OpPushConstants)[0].Data

	device.Reset()
	require.NoError(t, s.RenderFrame(1.0))
	second := device.CommandsByOp(gputest.OpPushConstants)[0].Data

	// The orbiting light changes the caster transform between frames.
	assert.NotEqual(t, first, second)
}

func TestResizeChangesLitViewportOnly(t *testing.T) {
	s, device := newTestScene(t)
	s.Resize(800, 600)
	require.NoError(t, s.RenderFrame(0.016))

	viewports := device.CommandsByOp(gputest.OpSetViewport)
	require.Len(t, viewports, 2)
	assert.Equal(t, float32(ShadowMapSize), viewports[0].Width)
	assert.Equal(t, float32(800), viewports[1].Width)
	assert.Equal(t, float32(600), viewports[1].Height)

	scissors := device.CommandsByOp(gputest.OpSetScissor)
	require.Len(t, scissors, 2)
	assert.Equal(t, float32(800), scissors[1].Width)
}

func TestSceneBuilderOptions(t *testing.T) {
	device := gputest.NewDevice()
	s, err := NewScene(device, 640, 480,
		WithClearColor(common.Color{R: 1, G: 2, B: 3, A: 255}),
		WithMeshColor(common.Color{R: 255, A: 255}),
	)
	require.NoError(t, err)
	defer s.Release()

	require.NoError(t, s.RenderFrame(0.016))

	swapchain := device.CommandsByOp(gputest.OpBeginSwapchainPass)
	require.Len(t, swapchain, 1)
	assert.Equal(t, common.Color{R: 1, G: 2, B: 3, A: 255}, swapchain[0].ClearColor)

	pushes := device.CommandsByOp(gputest.OpPushConstants)
	require.Len(t, pushes, 2)
	// Mesh color red channel lands at the color field's first float.
	assert.Equal(t, float32(1.0), f32At(t, pushes[1].Data, 224))
	assert.Equal(t, float32(0.0), f32At(t, pushes[1].Data, 228))
}
