package benchmark

import (
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"hwbench/internal/clock"
)

// Threads runs workers goroutines, each pinned to an OS thread and
// incrementing one shared atomic counter until a stop flag is raised.
// The result reflects contention on the counter, not parallel speedup.
func Threads(c clock.Clock, d time.Duration, workers int) Result {
	if d <= 0 || workers <= 0 {
		return NotRun
	}

	var (
		ops  atomic.Uint64
		stop atomic.Bool
		g    errgroup.Group
	)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			for !stop.Load() {
				ops.Add(1)
			}
			return nil
		})
	}

	c.Sleep(d)
	stop.Store(true)
	_ = g.Wait()

	return Result(float64(ops.Load()) / d.Seconds() / 1e6)
}

// ScalingPoint is one level of a scaling run.
type ScalingPoint struct {
	Workers int
	// Max is set for the level that represents full hardware concurrency.
	Max    bool
	Result Result
}

// Metric returns the table name for the point.
func (p ScalingPoint) Metric() string {
	if p.Max {
		return MetricThreadsMax
	}
	return ThreadsMetric(p.Workers)
}

// ScalingProfile is the ordered result of a scaling run.
type ScalingProfile []ScalingPoint

// Get returns the result for a worker count.
func (p ScalingProfile) Get(workers int) (Result, bool) {
	for _, pt := range p {
		if pt.Workers == workers {
			return pt.Result, true
		}
	}
	return NotRun, false
}

// ScalingLevels returns levels followed by the hardware concurrency as
// the final max level.
func ScalingLevels(levels []int, hardware int) []ScalingPoint {
	points := make([]ScalingPoint, 0, len(levels)+1)
	for _, n := range levels {
		points = append(points, ScalingPoint{Workers: n})
	}
	return append(points, ScalingPoint{Workers: hardware, Max: true})
}

// Measure returns the point with its result filled in. A point above
// hardware is recorded as NotRun and never executed.
func (p ScalingPoint) Measure(c clock.Clock, d time.Duration, hardware int) ScalingPoint {
	p.Result = NotRun
	if p.Workers <= hardware {
		p.Result = Threads(c, d, p.Workers)
	}
	return p
}
