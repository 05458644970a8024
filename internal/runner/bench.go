package runner

import (
	"context"
	"time"

	"github.com/vovakirdan/firewall-defense/internal/core"
)

// BenchResult reports raw simulation throughput.
type BenchResult struct {
	Ticks          int
	Episodes       int // Episodes started, including the unfinished last one
	Elapsed        time.Duration
	TicksPerSecond float64
}

// Bench steps no-op actions for ticks ticks, resetting with the next seed
// whenever an episode ends.
func (r *Runner) Bench(ctx context.Context, seed int64, ticks int) (BenchResult, error) {
	sim := core.New(r.params, seed)
	res := BenchResult{Episodes: 1}

	start := time.Now()
	for res.Ticks < ticks {
		// Poll ctx sparsely.
		if res.Ticks%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		if sim.Step(core.NoOpAction).Done() {
			seed++
			sim.Reset(seed)
			res.Episodes++
		}
		res.Ticks++
	}
	res.Elapsed = time.Since(start)

	if secs := res.Elapsed.Seconds(); secs > 0 {
		res.TicksPerSecond = float64(res.Ticks) / secs
	}

	r.logger.Info("Benchmark finished",
		"ticks", res.Ticks,
		"episodes", res.Episodes,
		"elapsed", res.Elapsed,
		"ticks_per_sec", int(res.TicksPerSecond),
	)
	return res, nil
}
