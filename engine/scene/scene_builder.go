package scene

import (
	"github.com/Carmen-Shannon/shadowcast/common"
)

// BuilderOption is a functional option used to configure a Scene during construction.
type BuilderOption func(*scene)

// WithClearColor sets the lit pass's background clear color.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - BuilderOption: a function that sets the clear color for this scene
func WithClearColor(c common.Color) BuilderOption {
	return func(s *scene) {
		s.clearColor = c
	}
}

// WithMeshColor sets the base color shared by all scene geometry.
//
// Parameters:
//   - c: the mesh base color
//
// Returns:
//   - BuilderOption: a function that sets the mesh color for this scene
func WithMeshColor(c common.Color) BuilderOption {
	return func(s *scene) {
		s.meshColor = c
	}
}
