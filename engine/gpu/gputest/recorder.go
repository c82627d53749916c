// Package gputest provides an in-memory Device implementation that records
// every command instead of talking to a GPU. Tests use it to assert on frame
// structure: pass ordering, state transitions, bindings, and constant uploads.
package gputest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/Carmen-Shannon/shadowcast/engine/gpu"
	"github.com/Carmen-Shannon/shadowcast/engine/pipeline"
)

// Op identifies a recorded command.
type Op string

const (
	OpBeginFrame         Op = "BeginFrame"
	OpEndFrame           Op = "EndFrame"
	OpBeginEvent         Op = "BeginEvent"
	OpEndEvent           Op = "EndEvent"
	OpTransitionTexture  Op = "TransitionTexture"
	OpBeginRenderPass    Op = "BeginRenderPass"
	OpBeginSwapchainPass Op = "BeginSwapchainRenderPass"
	OpBindPipeline       Op = "BindPipeline"
	OpSetViewport        Op = "SetViewport"
	OpSetScissor         Op = "SetScissor"
	OpBindVertexBuffer   Op = "BindVertexBuffer"
	OpBindIndexBuffer    Op = "BindIndexBuffer"
	OpPushConstants      Op = "PushConstants"
	OpDrawIndexed        Op = "DrawIndexed"
	OpEndRenderPass      Op = "EndRenderPass"
)

// Command is one recorded device command. Only the fields relevant to the
// command's Op are populated.
type Command struct {
	Op Op

	// Label is the debug-scope label (BeginEvent) or resource label
	// (buffer/texture commands).
	Label string

	// State is the target state of a TransitionTexture command.
	State common.TextureState

	// Pipeline is the bound pipeline's key (BindPipeline).
	Pipeline string

	// Format is the index format (BindIndexBuffer) or scratch depth format
	// (BeginSwapchainRenderPass).
	Format common.Format

	// IndexFormat is the index element width for BindIndexBuffer.
	IndexFormat common.IndexFormat

	// ClearColor is the color attachment clear value (BeginSwapchainRenderPass).
	ClearColor common.Color

	// Data is a copy of the constant block bytes (PushConstants).
	Data []byte

	// Width and Height carry viewport/scissor extents.
	Width, Height float32

	// IndexCount and InstanceCount carry DrawIndexed arguments.
	IndexCount, InstanceCount uint32
}

// RecordingBuffer is the Buffer handle produced by a RecordingDevice.
type RecordingBuffer struct {
	Label    string
	Usage    common.BufferUsage
	Size     int
	Released bool
}

func (b *RecordingBuffer) Release() {
	b.Released = true
}

// RecordingTexture is the Texture handle produced by a RecordingDevice. It
// tracks the last state it was transitioned to so tests can assert the
// depth-write/shader-read ordering of a frame.
type RecordingTexture struct {
	Desc     common.TextureDescriptor
	Released bool

	// CurrentState is the state of the most recent transition. HasState is
	// false until the first transition.
	CurrentState common.TextureState
	HasState     bool

	id uint32
}

func (t *RecordingTexture) Release() {
	t.Released = true
}

// RecordingShaderModule is the ShaderModule handle produced by a RecordingDevice.
type RecordingShaderModule struct {
	Label    string
	Source   string
	Released bool
}

func (s *RecordingShaderModule) Release() {
	s.Released = true
}

// RecordingDevice implements gpu.Device by recording every command into an
// in-memory list. The zero value is not usable; construct with NewDevice.
type RecordingDevice struct {
	mu *sync.Mutex

	commands  []Command
	pipelines map[string]pipeline.Pipeline

	swapchainFormat common.Format
	nextTextureID   uint32
	frameOpen       bool
	passOpen        bool
}

var _ gpu.Device = &RecordingDevice{}

// NewDevice creates a RecordingDevice with a BGRA8 swapchain format.
//
// Returns:
//   - *RecordingDevice: the recording device
func NewDevice() *RecordingDevice {
	return &RecordingDevice{
		mu:              &sync.Mutex{},
		pipelines:       map[string]pipeline.Pipeline{},
		swapchainFormat: common.FormatBGRA8Unorm,
	}
}

// Commands returns a copy of every command recorded so far, across frames.
//
// Returns:
//   - []Command: the recorded commands in order
func (d *RecordingDevice) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Command, len(d.commands))
	copy(out, d.commands)
	return out
}

// CommandsByOp returns the recorded commands matching the given op, in order.
//
// Parameters:
//   - op: the op to filter by
//
// Returns:
//   - []Command: the matching commands
func (d *RecordingDevice) CommandsByOp(op Op) []Command {
	var out []Command
	for _, c := range d.Commands() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset discards all recorded commands. Resources and pipelines survive.
func (d *RecordingDevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = nil
}

func (d *RecordingDevice) record(c Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = append(d.commands, c)
}

func (d *RecordingDevice) CreateBuffer(label string, usage common.BufferUsage, data []byte) (gpu.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("buffer %q: initial data must not be empty", label)
	}
	return &RecordingBuffer{
		Label: label,
		Usage: usage,
		Size:  len(data),
	}, nil
}

func (d *RecordingDevice) CreateTexture(desc common.TextureDescriptor) (gpu.Texture, error) {
	if desc.Format == common.FormatUndefined {
		return nil, fmt.Errorf("texture %q: format must be set", desc.Label)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	t := &RecordingTexture{Desc: desc}
	if desc.Usage&common.TextureUsageShaderResource != 0 {
		t.id = d.nextTextureID
		d.nextTextureID++
	}
	return t, nil
}

func (d *RecordingDevice) CompileShader(label, source string) (gpu.ShaderModule, error) {
	return &RecordingShaderModule{Label: label, Source: source}, nil
}

func (d *RecordingDevice) RegisterPipeline(p pipeline.Pipeline) error {
	if p.Module() == nil {
		return fmt.Errorf("pipeline %q: a shader module must be set", p.Key())
	}
	if p.VertexEntryPoint() == "" {
		return fmt.Errorf("pipeline %q: a vertex entry point must be set", p.Key())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pipelines[p.Key()] = p
	p.SetHandle(p.Key())
	return nil
}

// Pipeline returns a registered pipeline descriptor by key, or nil.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - pipeline.Pipeline: the registered descriptor, or nil if unknown
func (d *RecordingDevice) Pipeline(key string) pipeline.Pipeline {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pipelines[key]
}

func (d *RecordingDevice) TextureID(t gpu.Texture) uint32 {
	rt, ok := t.(*RecordingTexture)
	if !ok || rt.Desc.Usage&common.TextureUsageShaderResource == 0 {
		panic("TextureID: texture was not created with shader-resource usage")
	}
	return rt.id
}

func (d *RecordingDevice) SwapchainFormat() common.Format {
	return d.swapchainFormat
}

func (d *RecordingDevice) Resize(width, height int) {}

func (d *RecordingDevice) BeginFrame() error {
	d.mu.Lock()
	if d.frameOpen {
		d.mu.Unlock()
		return fmt.Errorf("BeginFrame: frame already open")
	}
	d.frameOpen = true
	d.mu.Unlock()
	d.record(Command{Op: OpBeginFrame})
	return nil
}

func (d *RecordingDevice) CommandList() gpu.CommandList {
	return &recordingCommandList{device: d}
}

func (d *RecordingDevice) EndFrame() error {
	d.mu.Lock()
	if !d.frameOpen {
		d.mu.Unlock()
		return fmt.Errorf("EndFrame: no frame open")
	}
	if d.passOpen {
		d.mu.Unlock()
		return fmt.Errorf("EndFrame: render pass still open")
	}
	d.frameOpen = false
	d.mu.Unlock()
	d.record(Command{Op: OpEndFrame})
	return nil
}

func (d *RecordingDevice) Release() {}

// recordingCommandList implements gpu.CommandList against a RecordingDevice.
type recordingCommandList struct {
	device *RecordingDevice
}

var _ gpu.CommandList = &recordingCommandList{}

func (c *recordingCommandList) BeginEvent(label string) {
	c.device.record(Command{Op: OpBeginEvent, Label: label})
}

func (c *recordingCommandList) EndEvent() {
	c.device.record(Command{Op: OpEndEvent})
}

func (c *recordingCommandList) TransitionTexture(t gpu.Texture, state common.TextureState) {
	rt, ok := t.(*RecordingTexture)
	if !ok {
		panic("TransitionTexture: texture was not created by this device")
	}
	rt.CurrentState = state
	rt.HasState = true
	c.device.record(Command{Op: OpTransitionTexture, Label: rt.Desc.Label, State: state})
}

func (c *recordingCommandList) BeginRenderPass(depth gpu.Texture) {
	rt, ok := depth.(*RecordingTexture)
	if !ok {
		panic("BeginRenderPass: depth texture was not created by this device")
	}
	if rt.HasState && rt.CurrentState != common.TextureStateDepthWrite {
		panic(fmt.Sprintf("BeginRenderPass: texture %q is not in the depth-write state", rt.Desc.Label))
	}
	c.device.mu.Lock()
	if c.device.passOpen {
		c.device.mu.Unlock()
		panic("BeginRenderPass: a render pass is already open")
	}
	c.device.passOpen = true
	c.device.mu.Unlock()
	c.device.record(Command{Op: OpBeginRenderPass, Label: rt.Desc.Label})
}

func (c *recordingCommandList) BeginSwapchainRenderPass(depthFormat common.Format, clearColor common.Color) {
	c.device.mu.Lock()
	if c.device.passOpen {
		c.device.mu.Unlock()
		panic("BeginSwapchainRenderPass: a render pass is already open")
	}
	c.device.passOpen = true
	c.device.mu.Unlock()
	c.device.record(Command{Op: OpBeginSwapchainPass, Format: depthFormat, ClearColor: clearColor})
}

func (c *recordingCommandList) BindPipeline(p pipeline.Pipeline) {
	if p.Handle() == nil {
		panic(fmt.Sprintf("BindPipeline: pipeline %q is not registered", p.Key()))
	}
	c.device.record(Command{Op: OpBindPipeline, Pipeline: p.Key()})
}

func (c *recordingCommandList) SetViewport(width, height float32) {
	c.device.record(Command{Op: OpSetViewport, Width: width, Height: height})
}

func (c *recordingCommandList) SetScissor(width, height uint32) {
	c.device.record(Command{Op: OpSetScissor, Width: float32(width), Height: float32(height)})
}

func (c *recordingCommandList) BindVertexBuffer(b gpu.Buffer) {
	rb, ok := b.(*RecordingBuffer)
	if !ok {
		panic("BindVertexBuffer: buffer was not created by this device")
	}
	c.device.record(Command{Op: OpBindVertexBuffer, Label: rb.Label})
}

func (c *recordingCommandList) BindIndexBuffer(b gpu.Buffer, format common.IndexFormat) {
	rb, ok := b.(*RecordingBuffer)
	if !ok {
		panic("BindIndexBuffer: buffer was not created by this device")
	}
	c.device.record(Command{Op: OpBindIndexBuffer, Label: rb.Label, IndexFormat: format})
}

func (c *recordingCommandList) PushConstants(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	c.device.record(Command{Op: OpPushConstants, Data: cp})
}

func (c *recordingCommandList) DrawIndexed(indexCount, instanceCount uint32) {
	c.device.record(Command{Op: OpDrawIndexed, IndexCount: indexCount, InstanceCount: instanceCount})
}

func (c *recordingCommandList) EndRenderPass() {
	c.device.mu.Lock()
	if !c.device.passOpen {
		c.device.mu.Unlock()
		panic("EndRenderPass: no render pass open")
	}
	c.device.passOpen = false
	c.device.mu.Unlock()
	c.device.record(Command{Op: OpEndRenderPass})
}
