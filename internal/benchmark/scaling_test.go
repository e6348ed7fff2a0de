package benchmark

import (
	"testing"
	"time"

	"hwbench/internal/clock"

	"github.com/stretchr/testify/assert"
)

func TestThreads_SingleWorker(t *testing.T) {
	got := Threads(clock.Real(), 50*time.Millisecond, 1)
	assert.True(t, got.Valid(), "expected positive throughput, got %v", got)
}

func TestThreads_Invalid(t *testing.T) {
	assert.Equal(t, NotRun, Threads(clock.Real(), 0, 1))
	assert.Equal(t, NotRun, Threads(clock.Real(), time.Millisecond, 0))
}

func TestScalingPoint_Measure_SkipsAboveHardware(t *testing.T) {
	fake := clock.Fake(time.Unix(0, 0))

	pt := ScalingPoint{Workers: 8, Result: 123}.Measure(fake, time.Second, 2)

	assert.Equal(t, NotRun, pt.Result)
	assert.Equal(t, 8, pt.Workers)
	assert.Equal(t, time.Unix(0, 0), fake.Now(), "skipped levels must not sleep on the clock")
}

func TestScalingPoint_Measure(t *testing.T) {
	fake := clock.Fake(time.Unix(0, 0))

	pt := ScalingPoint{Workers: 1, Max: true}.Measure(fake, time.Second, 1)

	assert.True(t, pt.Max)
	assert.GreaterOrEqual(t, float64(pt.Result), 0.0)
	assert.Equal(t, time.Unix(0, 0).Add(time.Second), fake.Now())
}

func TestScalingProfile_Get(t *testing.T) {
	profile := ScalingProfile{{Workers: 1, Result: 10}, {Workers: 2, Max: true, Result: 15}}

	got, ok := profile.Get(2)
	assert.True(t, ok)
	assert.Equal(t, Result(15), got)

	_, ok = profile.Get(3)
	assert.False(t, ok)
}

func TestScalingPoint_Metric(t *testing.T) {
	assert.Equal(t, "threads_4_mops", ScalingPoint{Workers: 4}.Metric())
	assert.Equal(t, MetricThreadsMax, ScalingPoint{Workers: 16, Max: true}.Metric())
}
