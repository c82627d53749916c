package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame pacing and heap statistics for the render loop.
// Stats are written to the log once per reporting interval.
type Profiler struct {
	frameCount    int
	worstFrame    time.Duration
	lastFrameTime time.Time
	lastReport    time.Time
	interval      time.Duration

	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler reporting once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastFrameTime: now,
		lastReport:    now,
		interval:      time.Second,
	}
}

// Tick records one rendered frame. When the reporting interval has elapsed it
// logs average FPS, the worst frame time in the interval, live heap size, and
// the heap allocation rate, then resets the interval counters.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := time.Now()

	frameTime := now.Sub(p.lastFrameTime)
	p.lastFrameTime = now
	p.frameCount++
	if frameTime > p.worstFrame {
		p.worstFrame = frameTime
	}

	elapsed := now.Sub(p.lastReport)
	if elapsed < p.interval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	log.Printf("[Profiler] FPS: %.2f | Worst Frame: %.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s",
		fps, float64(p.worstFrame.Microseconds())/1000.0, heapMB, allocRateMB)

	p.frameCount = 0
	p.worstFrame = 0
	p.lastReport = now
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
