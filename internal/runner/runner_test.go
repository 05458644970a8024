package runner

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/firewall-defense/internal/config"
	"github.com/vovakirdan/firewall-defense/internal/core"
	"github.com/vovakirdan/firewall-defense/internal/logging"
	"github.com/vovakirdan/firewall-defense/internal/registry"
	"github.com/vovakirdan/firewall-defense/internal/replay"
)

// memSaver collects summaries in memory.
type memSaver struct {
	mu    sync.Mutex
	saved []Summary
	err   error
}

func (m *memSaver) SaveEpisodeSummary(sum Summary) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, sum)
	return "stored-id", nil
}

// scriptedPolicy replays a fixed action list, then no-ops.
type scriptedPolicy struct {
	actions []int
	next    int
	resets  []int64
}

func (p *scriptedPolicy) ID() string    { return "scripted" }
func (p *scriptedPolicy) Title() string { return "Scripted" }
func (p *scriptedPolicy) Reset(seed int64) {
	p.next = 0
	p.resets = append(p.resets, seed)
}
func (p *scriptedPolicy) Act(*core.Snapshot, *[core.NumActions]bool) int {
	if p.next >= len(p.actions) {
		return core.NoOpAction
	}
	a := p.actions[p.next]
	p.next++
	return a
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Replay.Dir = t.TempDir()
	cfg.Replay.CheckpointEvery = 5
	return cfg
}

func TestRunEpisodeNoopBreaches(t *testing.T) {
	saver := &memSaver{}
	r := New(testConfig(t), saver, logging.Discard())
	r.SetDifficulty("normal")

	policy := &scriptedPolicy{}
	res, err := r.RunEpisode(context.Background(), policy, 1)
	require.NoError(t, err)

	assert.Equal(t, 17, res.Ticks)
	assert.True(t, res.Terminated)
	assert.False(t, res.Truncated)
	assert.Equal(t, -1.0, res.Reward)
	assert.Equal(t, "stored-id", res.ID)
	assert.Equal(t, []int64{1}, policy.resets)

	require.Len(t, saver.saved, 1)
	assert.Equal(t, "scripted", saver.saved[0].Policy)
	assert.Equal(t, "normal", saver.saved[0].Difficulty)
	assert.Equal(t, res.FinalHash, saver.saved[0].FinalHash)
}

func TestRunEpisodeMatchesDirectSimulation(t *testing.T) {
	// The second placement waits out the global cooldown.
	actions := make([]int, core.GCDTicks+2)
	actions[1] = core.EncodeAction(2, 3)
	actions[core.GCDTicks+1] = core.EncodeAction(5, 5)
	r := New(testConfig(t), nil, logging.Discard())

	res, err := r.RunEpisode(context.Background(), &scriptedPolicy{actions: actions}, 9)
	require.NoError(t, err)

	sim := core.New(core.DefaultParams(), 9)
	var total float64
	for i := 0; ; i++ {
		a := core.NoOpAction
		if i < len(actions) {
			a = actions[i]
		}
		step := sim.Step(a)
		total += step.Reward
		if step.Done() {
			break
		}
	}
	snap := sim.Snapshot()
	assert.Equal(t, snap.Hash(), res.FinalHash)
	assert.Equal(t, int(snap.Tick), res.Ticks)
	assert.Equal(t, total, res.Reward)
	assert.Equal(t, 2, res.WallsPlaced)
}

func TestRunEpisodeRecordsReplay(t *testing.T) {
	r := New(testConfig(t), nil, logging.Discard())
	r.SetRecording(true)

	res, err := r.RunEpisode(context.Background(), &scriptedPolicy{actions: []int{core.EncodeAction(4, 4)}}, 21)
	require.NoError(t, err)
	require.NotNil(t, res.Replay)
	require.NotEmpty(t, res.ReplayPath)

	_, err = os.Stat(res.ReplayPath)
	require.NoError(t, err)

	rep, err := replay.Load(res.ReplayPath)
	require.NoError(t, err)
	assert.Equal(t, "scripted", rep.Policy)
	assert.Len(t, rep.Actions, res.Ticks)
	assert.Equal(t, replay.Hash(res.FinalHash), rep.FinalHash)
	assert.NoError(t, replay.Verify(rep))
}

func TestRunEpisodeSaverFailureIsLogged(t *testing.T) {
	r := New(testConfig(t), &memSaver{err: errors.New("disk full")}, logging.Discard())

	res, err := r.RunEpisode(context.Background(), &scriptedPolicy{}, 2)
	require.NoError(t, err)
	assert.NotEqual(t, "stored-id", res.ID)
}

func TestRunEpisodeCancelled(t *testing.T) {
	saver := &memSaver{}
	r := New(testConfig(t), saver, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RunEpisode(ctx, &scriptedPolicy{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, saver.saved)
}

func TestRunEpisodeRejectsBadAction(t *testing.T) {
	r := New(testConfig(t), nil, logging.Discard())
	_, err := r.RunEpisode(context.Background(), &scriptedPolicy{actions: []int{core.NumActions}}, 1)
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	saver := &memSaver{}
	r := New(testConfig(t), saver, logging.Discard())

	var factory registry.Factory = func() registry.Policy { return &scriptedPolicy{} }
	seeds := []int64{1, 2, 3, 4, 5, 6}

	results, err := r.RunBatch(context.Background(), factory, seeds, 3)
	require.NoError(t, err)
	require.Len(t, results, len(seeds))

	for i, res := range results {
		assert.Equal(t, seeds[i], res.Seed)
		assert.Equal(t, 17, res.Ticks)

		single, err := New(testConfig(t), nil, logging.Discard()).RunEpisode(context.Background(), &scriptedPolicy{}, seeds[i])
		require.NoError(t, err)
		assert.Equal(t, single.FinalHash, res.FinalHash, "seed %d", seeds[i])
	}
	assert.Len(t, saver.saved, len(seeds))
}

func TestRunBatchEmpty(t *testing.T) {
	r := New(testConfig(t), nil, logging.Discard())
	results, err := r.RunBatch(context.Background(), func() registry.Policy { return &scriptedPolicy{} }, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBench(t *testing.T) {
	r := New(testConfig(t), nil, logging.Discard())

	res, err := r.Bench(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Ticks)
	// No-op episodes breach after 17 ticks.
	assert.Equal(t, 1+100/17, res.Episodes)
}
