// Package agents provides the built-in action policies. Each policy
// registers itself with the registry from init().
package agents

import (
	"github.com/vovakirdan/firewall-defense/internal/core"
	"github.com/vovakirdan/firewall-defense/internal/registry"
)

// Noop never places a wall. It is the baseline every other policy should beat.
type Noop struct{}

func (Noop) ID() string       { return "noop" }
func (Noop) Title() string    { return "No-op" }
func (Noop) Reset(seed int64) {}

func (Noop) Act(*core.Snapshot, *[core.NumActions]bool) int {
	return core.NoOpAction
}

func init() {
	registry.Register("noop", func() registry.Policy {
		return Noop{}
	})
}
