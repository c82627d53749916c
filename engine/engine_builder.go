package engine

import (
	"github.com/Carmen-Shannon/shadowcast/engine/gpu"
	"github.com/Carmen-Shannon/shadowcast/engine/scene"
	"github.com/Carmen-Shannon/shadowcast/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame statistics output.
//
// Parameters:
//   - enabled: if true, enables profiling output
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a custom configured window for the engine to use rather than
// allowing the engine to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithDeviceOptions forwards options to the GPU device created during
// engine construction (present mode, software fallback, etc.).
//
// Parameters:
//   - options: device builder options to forward
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDeviceOptions(options ...gpu.DeviceBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.deviceOptions = append(e.deviceOptions, options...)
	}
}

// WithSceneOptions forwards options to the scene created during engine
// construction (clear color, mesh color, shadow map size).
//
// Parameters:
//   - options: scene builder options to forward
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSceneOptions(options ...scene.BuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.sceneOptions = append(e.sceneOptions, options...)
	}
}
