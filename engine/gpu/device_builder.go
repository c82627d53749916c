package gpu

// DeviceBuilderOption is a functional option applied to a device during
// construction via NewDevice.
type DeviceBuilderOption func(*device)

// WithPresentMode sets the surface present mode which controls how frames are
// delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - DeviceBuilderOption: a function that applies the present mode option
func WithPresentMode(mode PresentMode) DeviceBuilderOption {
	return func(d *device) {
		d.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces the backend to use a CPU/software fallback
// adapter instead of hardware GPU acceleration. This requires a software
// Vulkan ICD to be installed on the system (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - DeviceBuilderOption: a function that applies the fallback adapter option
func WithForceSoftwareRenderer(force bool) DeviceBuilderOption {
	return func(d *device) {
		d.forceFallbackAdapter = force
	}
}
