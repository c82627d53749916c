package scene

// Shadow map parameters. The depth bias triple is applied by the caster
// pipeline's rasterizer; front-face culling plus the slope-scaled bias keeps
// self-shadowing acne off the lit surfaces.
const (
	// ShadowMapSize is the shadow map's width and height in texels.
	ShadowMapSize = 2048

	// ShadowDepthBiasConstant is the caster pipeline's constant depth bias.
	ShadowDepthBiasConstant = 1.25

	// ShadowDepthBiasClamp is the caster pipeline's maximum bias (0 = unclamped).
	ShadowDepthBiasClamp = 0.0

	// ShadowDepthBiasSlope is the caster pipeline's slope-scaled depth bias.
	ShadowDepthBiasSlope = 1.75

	// shadowSampleBias is the comparison bias applied in the shader's depth
	// test, in normalized depth units.
	shadowSampleBias = 0.0005
)

// DepthSampler returns the stored shadow-map depth at normalized coordinates
// (u, v) in [0, 1]. Implementations mirror the GPU's clamp-to-edge sampling.
type DepthSampler func(u, v float32) float32

// ShadowFactor is the CPU reference of the shader's shadow lookup. It projects
// a light-space coordinate to shadow-map UV space, runs the 3x3 PCF kernel
// against the sampled depths, and returns the occlusion factor in [0, 1]:
// 0 fully lit, 1 fully shadowed.
//
// Fragments behind the light's far plane or whose UV falls outside [0, 1] are
// lit (factor 0) rather than clamped, so geometry outside the light frustum
// never darkens.
//
// Parameters:
//   - shadowCoord: the fragment's light-space clip coordinate (x, y, z, w)
//   - sample: the shadow-map depth lookup
//
// Returns:
//   - float32: the occlusion factor in [0, 1]
func ShadowFactor(shadowCoord [4]float32, sample DepthSampler) float32 {
	px := shadowCoord[0] / shadowCoord[3]
	py := shadowCoord[1] / shadowCoord[3]
	pz := shadowCoord[2] / shadowCoord[3]

	u := px*0.5 + 0.5
	v := 1.0 - (py*0.5 + 0.5)

	currentDepth := pz

	if currentDepth > 1.0 || u < 0.0 || u > 1.0 || v < 0.0 || v > 1.0 {
		return 0.0
	}

	var shadow float32
	texelSize := float32(1.0) / float32(ShadowMapSize)

	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			pcfDepth := sample(u+float32(x)*texelSize, v+float32(y)*texelSize)
			if currentDepth-shadowSampleBias > pcfDepth {
				shadow += 1.0
			}
		}
	}
	return shadow / 9.0
}
