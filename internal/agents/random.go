package agents

import (
	"golang.org/x/exp/rand"

	"github.com/vovakirdan/firewall-defense/internal/core"
	"github.com/vovakirdan/firewall-defense/internal/observe"
	"github.com/vovakirdan/firewall-defense/internal/registry"
)

// Random samples uniformly among the actions the mask allows.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy seeded with seed.
func NewRandom(seed int64) *Random {
	p := &Random{}
	p.Reset(seed)
	return p
}

func (p *Random) ID() string    { return "random" }
func (p *Random) Title() string { return "Uniform random" }

// Reset reseeds the policy so episodes with the same seed repeat.
func (p *Random) Reset(seed int64) {
	p.rng = rand.New(rand.NewSource(uint64(seed)))
}

func (p *Random) Act(_ *core.Snapshot, mask *[core.NumActions]bool) int {
	valid := observe.ValidActions(mask)
	if len(valid) == 0 {
		return core.NoOpAction
	}
	return valid[p.rng.Intn(len(valid))]
}

func init() {
	registry.Register("random", func() registry.Policy {
		return NewRandom(0)
	})
}
