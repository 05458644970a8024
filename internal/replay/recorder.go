package replay

import "github.com/vovakirdan/firewall-defense/internal/core"

// Recorder captures an episode as it is played.
type Recorder struct {
	every int
	rep   *Replay
}

// NewRecorder creates a recorder that stores a checkpoint hash every
// checkpointEvery ticks. Zero disables checkpoints.
func NewRecorder(checkpointEvery int) *Recorder {
	return &Recorder{every: max(checkpointEvery, 0)}
}

// Begin starts a new recording for sim, which must have just been reset.
func (r *Recorder) Begin(sim *core.Simulation, id, policy string) {
	r.rep = &Replay{
		Version: FormatVersion,
		ID:      id,
		Policy:  policy,
		Seed:    sim.Seed(),
		Params:  FromCore(sim.Params()),
		Actions: make([]int, 0, 256),
	}
}

// Record appends the action that produced the current state of sim.
func (r *Recorder) Record(action int, res core.StepResult, sim *core.Simulation) {
	if r.rep == nil {
		return
	}
	r.rep.Actions = append(r.rep.Actions, action)
	r.rep.TotalReward += res.Reward

	if r.every > 0 && int(res.Tick)%r.every == 0 {
		snap := sim.Snapshot()
		r.rep.Checkpoints = append(r.rep.Checkpoints, Checkpoint{Tick: res.Tick, Hash: Hash(snap.Hash())})
	}
}

// Finish seals the recording with the final state of sim and returns it.
// The recorder is empty afterwards.
func (r *Recorder) Finish(sim *core.Simulation) *Replay {
	rep := r.rep
	r.rep = nil
	if rep == nil {
		return nil
	}
	snap := sim.Snapshot()
	rep.FinalTick = snap.Tick
	rep.FinalHash = Hash(snap.Hash())
	return rep
}
