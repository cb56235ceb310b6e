package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "revealing", domain.PhaseRevealing.String())
	assert.Equal(t, "traversing", domain.PhaseTraversing.String())
	assert.Equal(t, "hiding", domain.PhaseHiding.String())
	assert.Equal(t, "unknown", domain.Phase(42).String())
}

func TestPhase_JSON(t *testing.T) {
	snap := domain.Snapshot{Phase: domain.PhaseHiding, RevealAmount: 0.25}

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"phase":"hiding"`)

	var decoded domain.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.PhaseHiding, decoded.Phase)

	var p domain.Phase
	assert.Error(t, p.UnmarshalText([]byte("sleeping")))
	_, err = domain.Phase(9).MarshalText()
	assert.Error(t, err)
}

func TestPose_Facing(t *testing.T) {
	p := domain.Pose{Heading: 0}
	assert.InDelta(t, 1.0, p.Facing().X, 1e-12)
	assert.InDelta(t, 0.0, p.Facing().Y, 1e-12)

	v := domain.Vec2{X: 3, Y: 4}
	assert.Equal(t, 5.0, v.Len())
	assert.InDelta(t, 1.0, v.Normalize().Len(), 1e-12)
	assert.Equal(t, domain.Vec2{}, domain.Vec2{}.Normalize())
}
