package benchmark

import (
	"runtime"
	"sync/atomic"
	"time"

	"hwbench/internal/clock"
)

// DefaultCheckInterval is how many steps run between deadline checks.
// Overshoot past the deadline is at most one batch.
const DefaultCheckInterval = 1024

// Workload is a unit of compute for the Runner. Step must mutate state
// owned by the workload and Value must expose that state, so the loop has
// an observable result.
type Workload interface {
	Step()
	Value() uint64
}

// sink receives every workload's final value so the compiler cannot
// prove a measurement loop dead.
var sink atomic.Uint64

func publish(v uint64) {
	sink.Store(v)
}

// Runner executes workloads until a deadline on its clock.
type Runner struct {
	clock         clock.Clock
	checkInterval int
}

// NewRunner returns a Runner. A non-positive checkInterval selects
// DefaultCheckInterval.
func NewRunner(c clock.Clock, checkInterval int) *Runner {
	if c == nil {
		c = clock.Real()
	}
	if checkInterval <= 0 {
		checkInterval = DefaultCheckInterval
	}
	return &Runner{clock: c, checkInterval: checkInterval}
}

// Run repeats w.Step until d has elapsed and returns completed
// iterations per second, in millions. The clock is read once per batch
// of checkInterval steps. A non-positive duration runs nothing.
func (r *Runner) Run(w Workload, d time.Duration) Result {
	if d <= 0 {
		return NotRun
	}

	deadline := r.clock.Now().Add(d)
	var ops uint64
	for r.clock.Now().Before(deadline) {
		for i := 0; i < r.checkInterval; i++ {
			w.Step()
		}
		ops += uint64(r.checkInterval)
	}

	publish(w.Value())
	runtime.KeepAlive(w)

	return Result(float64(ops) / d.Seconds() / 1e6)
}

// Integer measures integer ALU throughput for d.
func (r *Runner) Integer(d time.Duration) Result {
	return r.Run(NewIntegerWorkload(), d)
}

// Float measures floating-point throughput for d.
func (r *Runner) Float(d time.Duration) Result {
	return r.Run(NewFloatWorkload(), d)
}
