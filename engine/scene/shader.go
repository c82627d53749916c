package scene

import (
	_ "embed"
)

// ShaderSource is the WGSL source for the scene's single shader module. It
// exports three entry points shared by both pipelines; the uniform struct
// layouts must match ShadowPushConstants and MainPushConstants exactly.
//
//go:embed assets/shadow_scene.wgsl
var ShaderSource string

// Shader entry point names exported by ShaderSource.
const (
	// ShadowVertexEntryPoint is the depth-only caster pass vertex stage.
	ShadowVertexEntryPoint = "vsShadow"

	// MainVertexEntryPoint is the lit pass vertex stage.
	MainVertexEntryPoint = "vsMain"

	// MainFragmentEntryPoint is the lit pass fragment stage.
	MainFragmentEntryPoint = "fsMain"
)
