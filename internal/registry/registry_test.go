package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/firewall-defense/internal/core"
)

type stubPolicy struct{ id string }

func (p *stubPolicy) ID() string       { return p.id }
func (p *stubPolicy) Title() string    { return "Stub " + p.id }
func (p *stubPolicy) Reset(seed int64) {}
func (p *stubPolicy) Act(*core.Snapshot, *[core.NumActions]bool) int {
	return core.NoOpAction
}

func TestRegisterCreateList(t *testing.T) {
	Register("test_b", func() Policy { return &stubPolicy{id: "test_b"} })
	Register("test_a", func() Policy { return &stubPolicy{id: "test_a"} })

	assert.True(t, Exists("test_a"))
	assert.False(t, Exists("test_missing"))

	p, err := Create("test_b")
	require.NoError(t, err)
	assert.Equal(t, "test_b", p.ID())

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	assert.IsIncreasing(t, ids)
	assert.Contains(t, List(), PolicyInfo{ID: "test_a", Title: "Stub test_a"})
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("definitely_not_registered")
	assert.ErrorContains(t, err, "unknown policy")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Policy { return &stubPolicy{id: "test_dup"} })
	assert.Panics(t, func() {
		Register("test_dup", func() Policy { return &stubPolicy{id: "test_dup"} })
	})
}

func TestCreateReturnsFreshInstances(t *testing.T) {
	Register("test_fresh", func() Policy { return &stubPolicy{id: "test_fresh"} })

	a, err := Create("test_fresh")
	require.NoError(t, err)
	b, err := Create("test_fresh")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}
