package replay

import (
	"fmt"

	"github.com/vovakirdan/firewall-defense/internal/core"
)

// DivergenceError reports the first tick whose state differs from the recording.
type DivergenceError struct {
	Tick uint32
	Want Hash
	Got  Hash
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("replay diverged at tick %d: want %s, got %s", e.Tick, e.Want, e.Got)
}

// Play re-runs the recorded actions on a fresh simulation and returns it
// together with the summed reward.
func Play(rep *Replay) (*core.Simulation, float64, error) {
	params := rep.Params.Core()
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	sim := core.New(params, rep.Seed)
	var total float64
	for i, a := range rep.Actions {
		if a < 0 || a >= core.NumActions {
			return nil, 0, fmt.Errorf("action %d at tick %d out of range", a, i+1)
		}
		total += sim.Step(a).Reward
	}
	return sim, total, nil
}

// Verify re-runs rep and checks every checkpoint and the final hash.
func Verify(rep *Replay) error {
	params := rep.Params.Core()
	if err := params.Validate(); err != nil {
		return err
	}

	sim := core.New(params, rep.Seed)
	next := 0
	for i, a := range rep.Actions {
		if a < 0 || a >= core.NumActions {
			return fmt.Errorf("action %d at tick %d out of range", a, i+1)
		}
		res := sim.Step(a)

		for next < len(rep.Checkpoints) && rep.Checkpoints[next].Tick == res.Tick {
			snap := sim.Snapshot()
			if got := Hash(snap.Hash()); got != rep.Checkpoints[next].Hash {
				return &DivergenceError{Tick: res.Tick, Want: rep.Checkpoints[next].Hash, Got: got}
			}
			next++
		}
	}

	snap := sim.Snapshot()
	if snap.Tick != rep.FinalTick {
		return fmt.Errorf("replay ended at tick %d, recording says %d", snap.Tick, rep.FinalTick)
	}
	if got := Hash(snap.Hash()); got != rep.FinalHash {
		return &DivergenceError{Tick: snap.Tick, Want: rep.FinalHash, Got: got}
	}
	return nil
}
