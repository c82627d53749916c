package main

import (
	"log"

	"github.com/Carmen-Shannon/shadowcast/engine"
	"github.com/Carmen-Shannon/shadowcast/engine/gpu"
	"github.com/Carmen-Shannon/shadowcast/engine/window"
)

func main() {
	eng, err := engine.NewEngine(
		engine.WithProfiling(true),
		engine.WithWindow(window.NewWindow(
			window.WithTitle("Shadowcast - Shadow Mapping"),
			window.WithWidth(1280),
			window.WithHeight(720),
		)),
		engine.WithDeviceOptions(
			gpu.WithPresentMode(gpu.PresentModeVSync),
		),
	)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer eng.Release()

	eng.Run()
}
