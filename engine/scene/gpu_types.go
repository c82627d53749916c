package scene

import (
	"encoding/binary"
	"math"
)

// ShadowPushConstants is the caster pass's per-frame constant block.
// Matches the WGSL ShadowUniforms struct layout exactly (see ShaderSource).
// Size: 64 bytes.
type ShadowPushConstants struct {
	LightMVP [16]float32 // offset 0: light view-projection * model, column-major (64 bytes)
}

// Size returns the size of the marshaled block in bytes.
//
// Returns:
//   - int: the block size in bytes
func (s *ShadowPushConstants) Size() int {
	return 64
}

// Marshal serializes the block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (s *ShadowPushConstants) Marshal() []byte {
	buf := make([]byte, 64)
	putMat4(buf[0:64], &s.LightMVP)
	return buf
}

// MainPushConstants is the lit pass's per-frame constant block.
// Matches the WGSL MainUniforms struct layout exactly (see ShaderSource):
// vec3 fields are padded to 16 bytes and the block is rounded up to 256 bytes
// per WGSL uniform struct rules.
type MainPushConstants struct {
	ViewProj      [16]float32 // offset   0: camera view-projection, column-major (64 bytes)
	Model         [16]float32 // offset  64: model matrix, column-major (64 bytes)
	LightViewProj [16]float32 // offset 128: light view-projection, column-major (64 bytes)
	CameraPos     [3]float32  // offset 192: camera world position (12 bytes + 4 pad)
	LightDir      [3]float32  // offset 208: unit light direction (12 bytes + 4 pad)
	Color         [4]float32  // offset 224: mesh base color, normalized RGBA (16 bytes)
	ShadowMapID   uint32      // offset 240: bindless shadow-map texture id (4 bytes + 12 pad)
}

// Size returns the size of the marshaled block in bytes.
//
// Returns:
//   - int: the block size in bytes
func (m *MainPushConstants) Size() int {
	return 256
}

// Marshal serializes the block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 256-byte buffer ready for GPU upload
func (m *MainPushConstants) Marshal() []byte {
	buf := make([]byte, 256)
	putMat4(buf[0:64], &m.ViewProj)
	putMat4(buf[64:128], &m.Model)
	putMat4(buf[128:192], &m.LightViewProj)
	putVec3(buf[192:204], m.CameraPos)
	putVec3(buf[208:220], m.LightDir)
	binary.LittleEndian.PutUint32(buf[224:228], math.Float32bits(m.Color[0]))
	binary.LittleEndian.PutUint32(buf[228:232], math.Float32bits(m.Color[1]))
	binary.LittleEndian.PutUint32(buf[232:236], math.Float32bits(m.Color[2]))
	binary.LittleEndian.PutUint32(buf[236:240], math.Float32bits(m.Color[3]))
	binary.LittleEndian.PutUint32(buf[240:244], m.ShadowMapID)
	return buf
}

// putMat4 writes a column-major 4x4 matrix into a 64-byte destination.
func putMat4(dst []byte, m *[16]float32) {
	for i, f := range m {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(f))
	}
}

// putVec3 writes a 3-component vector into a 12-byte destination.
func putVec3(dst []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(v[2]))
}
