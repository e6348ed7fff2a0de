package benchmark

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"hwbench/internal/clock"
)

// MiB is one mebibyte, the unit behind every "MB" in results.
const MiB = 1 << 20

const slotSize = 8

// Bandwidth times one sequential write pass over a fresh buffer of size
// bytes and returns MB/s. Which cache tier the buffer lands in depends
// only on the hardware.
func Bandwidth(c clock.Clock, size int) Result {
	if size <= 0 {
		return NotRun
	}
	buf := make([]byte, size)

	start := c.Now()
	for i := range buf {
		buf[i] = byte(i)
	}
	elapsed := atLeastNanosecond(c.Now().Sub(start))

	publish(uint64(buf[len(buf)-1]))
	runtime.KeepAlive(buf)

	return Result(float64(size) / MiB / elapsed.Seconds())
}

// ChainOrder selects how the latency chain is linked.
type ChainOrder string

const (
	// ChainRandom links slots into one random cycle, defeating the
	// prefetcher. This is the default.
	ChainRandom ChainOrder = "random"
	// ChainSequential links each slot to the next. Prefetch friendly,
	// so it reports lower latency than ChainRandom.
	ChainSequential ChainOrder = "sequential"
)

// ParseChainOrder validates a chain order name.
func ParseChainOrder(s string) (ChainOrder, error) {
	switch o := ChainOrder(s); o {
	case ChainRandom, ChainSequential:
		return o, nil
	}
	return "", fmt.Errorf("unknown latency chain %q (want %q or %q)", s, ChainRandom, ChainSequential)
}

// Latency builds an index chain over size bytes and follows it once per
// slot. Each load's address is the previous load's value. Returns
// nanoseconds per access.
func Latency(c clock.Clock, size int, order ChainOrder, seed uint64) Result {
	if size <= 0 {
		return NotRun
	}
	chain := buildChain(size/slotSize, order, seed)
	count := len(chain)

	idx := uint64(0)
	start := c.Now()
	for i := 0; i < count; i++ {
		idx = chain[idx]
	}
	elapsed := atLeastNanosecond(c.Now().Sub(start))

	publish(idx)
	runtime.KeepAlive(chain)

	return Result(float64(elapsed.Nanoseconds()) / float64(count))
}

// buildChain returns a next-index table that forms a single cycle over
// all slots. Fewer than two slots are rounded up to two.
func buildChain(slots int, order ChainOrder, seed uint64) []uint64 {
	if slots < 2 {
		slots = 2
	}
	chain := make([]uint64, slots)

	if order == ChainSequential {
		for i := range chain {
			chain[i] = uint64(i + 1)
		}
		chain[slots-1] = 0
		return chain
	}

	// Sattolo's algorithm: a uniformly random permutation with exactly
	// one cycle.
	for i := range chain {
		chain[i] = uint64(i)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := slots - 1; i > 0; i-- {
		j := rng.IntN(i)
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func atLeastNanosecond(d time.Duration) time.Duration {
	if d < time.Nanosecond {
		return time.Nanosecond
	}
	return d
}
