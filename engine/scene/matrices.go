package scene

import (
	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/chewxy/math32"
)

// Light orbit parameters. The directional light circles the scene origin at a
// fixed height, completing one revolution every 4*pi seconds.
const (
	lightOrbitRadius = 6.0
	lightHeight      = 8.0
	lightOrbitRate   = 0.5
)

// Light frustum extents. The orthographic volume is sized to contain the whole
// ground slab from the light's orbit height.
const (
	lightFrustumExtent = 10.0
	lightNearPlane     = 1.0
	lightFarPlane      = 25.0
)

// Camera parameters. The camera is fixed, looking at the scene origin.
const (
	cameraFovY = 60.0 * math32.Pi / 180.0
	cameraNear = 0.1
	cameraFar  = 100.0
)

var cameraPos = [3]float32{0, 4, 8}

// FrameMatrices holds the per-frame transform state both render passes consume:
// the light's position, direction, and view-projection, and the camera's
// position and view-projection. Both passes of one frame must be fed from the
// same FrameMatrices value so the shadow projection in the main pass matches
// the depth the caster pass wrote.
type FrameMatrices struct {
	// LightPos is the light's world position on its orbit.
	LightPos [3]float32

	// LightDir is the unit vector from the light toward the scene origin.
	LightDir [3]float32

	// LightViewProj is the light's orthographic view-projection matrix
	// (column-major).
	LightViewProj [16]float32

	// CameraPos is the camera's fixed world position.
	CameraPos [3]float32

	// CamViewProj is the camera's perspective view-projection matrix
	// (column-major).
	CamViewProj [16]float32

	// Model is the scene's model matrix (identity; geometry is pre-positioned
	// in world space).
	Model [16]float32
}

// ComputeFrameMatrices evaluates the animated light orbit and the fixed camera
// for one frame.
//
// Parameters:
//   - time: the scene's accumulated animation time in seconds
//   - aspect: the viewport aspect ratio (width/height)
//
// Returns:
//   - FrameMatrices: the frame's transform state
func ComputeFrameMatrices(time, aspect float32) FrameMatrices {
	var m FrameMatrices

	m.LightPos = [3]float32{
		math32.Sin(time*lightOrbitRate) * lightOrbitRadius,
		lightHeight,
		math32.Cos(time*lightOrbitRate) * lightOrbitRadius,
	}
	m.LightDir = [3]float32{-m.LightPos[0], -m.LightPos[1], -m.LightPos[2]}
	common.Normalize3(m.LightDir[:])

	var lightProj, lightView [16]float32
	common.Ortho(lightProj[:],
		-lightFrustumExtent, lightFrustumExtent,
		-lightFrustumExtent, lightFrustumExtent,
		lightNearPlane, lightFarPlane)
	common.LookAt(lightView[:],
		m.LightPos[0], m.LightPos[1], m.LightPos[2],
		0, 0, 0,
		0, 1, 0)
	common.Mul4(m.LightViewProj[:], lightProj[:], lightView[:])

	m.CameraPos = cameraPos

	var camProj, camView [16]float32
	common.Perspective(camProj[:], cameraFovY, aspect, cameraNear, cameraFar)
	common.LookAt(camView[:],
		cameraPos[0], cameraPos[1], cameraPos[2],
		0, 0, 0,
		0, 1, 0)
	common.Mul4(m.CamViewProj[:], camProj[:], camView[:])

	common.Identity(m.Model[:])

	return m
}
