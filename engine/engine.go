package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/shadowcast/engine/gpu"
	"github.com/Carmen-Shannon/shadowcast/engine/profiler"
	"github.com/Carmen-Shannon/shadowcast/engine/scene"
	"github.com/Carmen-Shannon/shadowcast/engine/window"
)

// engine implements the Engine interface.
// Owns the window, the GPU device bound to its surface, and the scene, and
// drives the render loop on the window's message thread. GPU command
// recording is single-threaded: one frame is fully recorded and submitted
// per message-loop iteration.
type engine struct {
	window window.Window
	device gpu.Device
	scene  scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	quitOnce sync.Once

	// Pre-creation config collected from builder options.
	deviceOptions []gpu.DeviceBuilderOption
	sceneOptions  []scene.BuilderOption
}

// Engine is the main entry point: it wires the window, GPU device, and scene
// together and runs the render loop until the window closes.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene being rendered.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// EnableProfiler enables frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// Run starts the render loop and blocks until the window closes.
	Run()

	// Quit closes the window, ending the render loop. Safe to call multiple
	// times; subsequent calls are no-ops.
	Quit()

	// Release frees the scene and device. Call after Run returns.
	Release()
}

// NewEngine creates the window (unless one is supplied), the GPU device bound
// to its surface, and the scene, and wires resize handling between them.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the device or scene could not be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow(
			window.WithTitle("Shadowcast"),
			window.WithWidth(1280),
			window.WithHeight(720),
		)
	}

	device, err := gpu.NewDevice(gpu.BackendTypeWGPU, e.window, e.deviceOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GPU device: %w", err)
	}
	e.device = device

	s, err := scene.NewScene(device, e.window.Width(), e.window.Height(), e.sceneOptions...)
	if err != nil {
		device.Release()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	e.scene = s

	e.window.SetResizeCallback(func(width, height int) {
		if width == 0 || height == 0 {
			// Minimized; keep the old swapchain until the window comes back.
			return
		}
		e.device.Resize(width, height)
		e.scene.Resize(width, height)
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	e.window.SetUpdateCallback(func() {
		delta := e.window.DeltaTime()
		if err := e.scene.RenderFrame(delta); err != nil {
			log.Printf("frame failed, shutting down: %v", err)
			e.Quit()
			return
		}
		if e.profilingEnabled {
			e.profiler.Tick()
		}
	})
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			log.Printf("failed to close window: %v", err)
		}
	})
}

func (e *engine) Release() {
	if e.scene != nil {
		e.scene.Release()
		e.scene = nil
	}
	if e.device != nil {
		e.device.Release()
		e.device = nil
	}
}
