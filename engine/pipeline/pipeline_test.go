package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/stretchr/testify/assert"
)

type stubModule struct{}

func (stubModule) Release() {}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("test")

	assert.Equal(t, "test", p.Key())
	assert.Nil(t, p.Module())
	assert.Empty(t, p.VertexEntryPoint())
	assert.Empty(t, p.FragmentEntryPoint())
	assert.Equal(t, common.TopologyTriangleList, p.Topology())
	assert.Equal(t, common.CullModeNone, p.CullMode())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, common.FormatUndefined, p.ColorFormat())
	assert.Equal(t, common.FormatUndefined, p.DepthFormat())

	constant, clamp, slope := p.DepthBias()
	assert.Zero(t, constant)
	assert.Zero(t, clamp)
	assert.Zero(t, slope)
	assert.Nil(t, p.Handle())
}

func TestNewPipelineOptions(t *testing.T) {
	m := stubModule{}
	p := NewPipeline("caster",
		WithModule(m),
		WithVertexEntryPoint("vsShadow"),
		WithVertexLayout(24,
			common.VertexAttribute{ShaderLocation: 0, Format: common.FormatRGB32Float, Offset: 0, Semantic: "POSITION"},
		),
		WithDepthFormat(common.FormatDepth32Float),
		WithCullMode(common.CullModeFront),
		WithDepthBias(1.25, 0, 1.75),
		WithDepthTest(true),
		WithDepthWrite(true),
	)

	assert.Equal(t, m, p.Module())
	assert.Equal(t, "vsShadow", p.VertexEntryPoint())
	assert.Empty(t, p.FragmentEntryPoint())
	assert.Equal(t, uint64(24), p.VertexStride())
	assert.Len(t, p.VertexAttributes(), 1)
	assert.Equal(t, common.FormatDepth32Float, p.DepthFormat())
	assert.Equal(t, common.CullModeFront, p.CullMode())

	constant, clamp, slope := p.DepthBias()
	assert.Equal(t, float32(1.25), constant)
	assert.Equal(t, float32(0), clamp)
	assert.Equal(t, float32(1.75), slope)
}

func TestPipelineHandleRoundTrip(t *testing.T) {
	p := NewPipeline("test")
	assert.Nil(t, p.Handle())

	handle := &struct{ id int }{id: 42}
	p.SetHandle(handle)
	assert.Same(t, handle, p.Handle())
}

func TestPipelineFragmentEntryPointMarksFullPipeline(t *testing.T) {
	depthOnly := NewPipeline("caster", WithVertexEntryPoint("vsShadow"))
	full := NewPipeline("lit",
		WithVertexEntryPoint("vsMain"),
		WithFragmentEntryPoint("fsMain"),
		WithColorFormat(common.FormatBGRA8Unorm),
	)

	assert.Empty(t, depthOnly.FragmentEntryPoint())
	assert.Equal(t, "fsMain", full.FragmentEntryPoint())
	assert.Equal(t, common.FormatBGRA8Unorm, full.ColorFormat())
}
