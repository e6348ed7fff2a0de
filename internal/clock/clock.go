package clock

import "time"

// Clock abstracts the time source used by benchmarks. Production code
// uses Real(); tests inject a FakeClock so timing is deterministic.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
