package gpu

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/shadowcast/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestSwapchainFormatRoundTripsToNative(t *testing.T) {
	tests := []struct {
		name   string
		native wgpu.TextureFormat
		want   common.Format
	}{
		{"bgra8", wgpu.TextureFormatBGRA8Unorm, common.FormatBGRA8Unorm},
		{"bgra8 srgb", wgpu.TextureFormatBGRA8UnormSrgb, common.FormatBGRA8UnormSrgb},
		{"rgba8", wgpu.TextureFormatRGBA8Unorm, common.FormatRGBA8Unorm},
		{"rgba8 srgb", wgpu.TextureFormatRGBA8UnormSrgb, common.FormatRGBA8UnormSrgb},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			native := test.native
			b := &wgpuDeviceBackendImpl{mu: &sync.Mutex{}, surfaceFormat: &native}

			got := b.SwapchainFormat()
			assert.Equal(t, test.want, got)

			// A pipeline targeting the swapchain builds its color target from
			// this value; it must map back to the exact surface format, sRGB
			// encoding included.
			assert.Equal(t, native, formatToWGPU(got))
		})
	}
}

func TestSwapchainFormatBeforeConfigure(t *testing.T) {
	b := &wgpuDeviceBackendImpl{mu: &sync.Mutex{}}
	assert.Equal(t, common.FormatUndefined, b.SwapchainFormat())
}
