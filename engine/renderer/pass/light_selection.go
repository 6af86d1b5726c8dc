package pass

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// minEntitiesPerTask keeps small scenes on the calling goroutine.
const minEntitiesPerTask = 64

// lightBounds is the world-space bounding sphere of an entity and the lights chosen for it.
type lightBounds struct {
	center mgl32.Vec3
	radius float32
	lights [light.PerEntity]uint32
	count  int
}

// lightSelector ranks the lights affecting each entity, splitting the entities across a worker pool.
// Each task owns one light.Selector so scratch space is never shared.
type lightSelector struct {
	pool      worker.DynamicWorkerPool
	workers   int
	selectors []light.Selector
}

func newLightSelector(workers int) *lightSelector {
	ls := &lightSelector{
		workers:   max(workers, 1),
		selectors: make([]light.Selector, max(workers, 1)),
	}
	if ls.workers > 1 {
		ls.pool = worker.NewDynamicWorkerPool(ls.workers, 256, 1*time.Second)
	}
	return ls
}

// taskRanges splits n items into at most parts contiguous ranges of at least minSize items.
func taskRanges(n, parts, minSize int) [][2]int {
	if n == 0 {
		return nil
	}
	parts = max(min(parts, n/minSize), 1)
	ranges := make([][2]int, parts)
	for i := range ranges {
		ranges[i] = [2]int{i * n / parts, (i + 1) * n / parts}
	}
	return ranges
}

// run fills the lights and count of every entry in bounds.
func (ls *lightSelector) run(bounds []lightBounds, candidates []light.Candidate) {
	ranges := taskRanges(len(bounds), ls.workers, minEntitiesPerTask)
	if ls.workers == 1 || len(ranges) <= 1 {
		for i := range ranges {
			selectRange(&ls.selectors[0], bounds[ranges[i][0]:ranges[i][1]], candidates)
		}
		return
	}

	// The WaitGroup is the per-frame barrier.
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		sel := &ls.selectors[i]
		chunk := bounds[r[0]:r[1]]
		ls.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				selectRange(sel, chunk, candidates)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// release stops the worker pool. The selector falls back to the calling goroutine afterwards.
func (ls *lightSelector) release() {
	if ls.pool != nil {
		ls.pool.Stop()
		ls.pool = nil
	}
	ls.workers = 1
}

func selectRange(sel *light.Selector, bounds []lightBounds, candidates []light.Candidate) {
	for i := range bounds {
		b := &bounds[i]
		b.lights, b.count = sel.Select(candidates, b.center, b.radius)
	}
}
