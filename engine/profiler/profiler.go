package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting interval worth of measurements.
type Stats struct {
	FPS          float64
	FrameTime    time.Duration // mean frame time over the interval
	SlowestFrame time.Duration
	Objects      int // entities and sprites in the scene at the last frame
	HeapMB       float64
	AllocRateMB  float64 // MB allocated per second
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64 // longest GC pause since the previous report
	SysMB        float64
}

// Profiler tracks frame rate and memory statistics and logs them once per interval.
type Profiler struct {
	frameCount     int
	objects        int
	lastTime       time.Time
	lastFrame      time.Time
	slowest        time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	now            func() time.Time
	report         func(Stats)
}

// NewProfiler creates a Profiler reporting every interval. A non-positive interval means one second.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - *Profiler: the newly created profiler
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	p := &Profiler{
		updateInterval: interval,
		now:            time.Now,
		report:         logStats,
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p
}

// SetObjects records how many objects the current frame draws.
func (p *Profiler) SetObjects(n int) {
	p.objects = n
}

// Last returns the most recent report.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame after presenting.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := p.now()
	p.slowest = max(p.slowest, now.Sub(p.lastFrame))
	p.lastFrame = now

	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:    elapsed / time.Duration(p.frameCount),
		SlowestFrame: p.slowest,
		Objects:      p.objects,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      p.memStats.NumGC,
		SysMB:        float64(p.memStats.Sys) / 1024 / 1024,
	}
	s.LastPauseUs, s.MaxPauseUs = gcPauses(&p.memStats, p.lastGCCount)

	p.last = s
	p.report(s)

	p.frameCount = 0
	p.slowest = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// gcPauses returns the last GC pause and the longest pause since sinceCount, in microseconds.
// PauseNs is a circular buffer of the last 256 pauses.
func gcPauses(m *runtime.MemStats, sinceCount uint32) (last, longest uint64) {
	count := m.NumGC
	if count == 0 {
		return 0, 0
	}
	last = m.PauseNs[(count-1)%256] / 1000
	start := sinceCount
	if count-start > 256 {
		start = count - 256
	}
	for i := start; i < count; i++ {
		longest = max(longest, m.PauseNs[i%256]/1000)
	}
	return last, longest
}

func logStats(s Stats) {
	log.Printf("[Profiler] FPS: %.2f | Frame: %v (worst %v) | Objects: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.FrameTime.Round(time.Microsecond), s.SlowestFrame.Round(time.Microsecond), s.Objects,
		s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
}
