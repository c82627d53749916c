package window

import (
	"testing"

	"github.com/Carmen-Shannon/shadowcast/engine/gpu"
	"github.com/stretchr/testify/assert"
)

// The device consumes windows through gpu.Surface, not the full Window
// interface; Window must keep satisfying it. Were gpu to import this package
// again, this file would also fail to build as an import cycle.
var _ gpu.Surface = Window(nil)

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	WithTitle("Shadowcast")(w)
	WithWidth(1920)(w)
	WithHeight(1080)(w)

	assert.Equal(t, "Shadowcast", w.title)
	assert.Equal(t, 1920, w.Width())
	assert.Equal(t, 1080, w.Height())
}
