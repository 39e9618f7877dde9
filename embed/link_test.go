package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vne-sim/vne-engine/substrate"
)

func hostLeafHost(t *testing.T, bwA, bwB int) *substrate.SubstrateState {
	t.Helper()
	s, err := substrate.LoadTopology(substrate.Descriptor{
		NumLeafSwitches: 1,
		Hosts: []substrate.HostEntry{
			{Name: "h0", AllocatedCores: 10},
			{Name: "h1", AllocatedCores: 10},
		},
		LinksDetails: []substrate.LinkDetail{
			{Node1: "h0", Node2: "l0", AssignedBandwidth: bwA},
			{Node1: "l0", Node2: "h1", AssignedBandwidth: bwB},
		},
	})
	require.NoError(t, err)
	return s
}

// TestLinkEmbedder_Accept: feasible path h0-l0-h1 with enough bandwidth.
func TestLinkEmbedder_Accept(t *testing.T) {
	s := hostLeafHost(t, 20, 20)
	tok := substrate.NewSnapshotToken(s)

	le := NewLinkEmbedder(nil)
	path, ok := shortestFeasiblePath(s, 0, 1, 5)
	require.True(t, ok)
	assert.Equal(t, []substrate.NodeId{0, 2, 1}, path)

	for i := 0; i+1 < len(path); i++ {
		s.DebitBandwidth(tok, path[i], path[i+1], 5)
	}
	e1, _ := s.Edge(0, 2)
	e2, _ := s.Edge(2, 1)
	assert.Equal(t, 15, e1.AvailableBw)
	assert.Equal(t, 15, e2.AvailableBw)
	assert.True(t, s.IsUsed(0, 2))
	assert.True(t, s.IsUsed(2, 1))
	_ = le
}

// TestShortestFeasiblePath_NoPathWhenBandwidthTooLow: bandwidth too low on
// one edge, so no feasible path exists.
func TestShortestFeasiblePath_NoPathWhenBandwidthTooLow(t *testing.T) {
	s := hostLeafHost(t, 2, 20)
	_, ok := shortestFeasiblePath(s, 0, 1, 5)
	assert.False(t, ok)
}

// TestShortestFeasiblePath_SameHost: src == dst yields the single-node path
// and debits nothing.
func TestShortestFeasiblePath_SameHost(t *testing.T) {
	s := hostLeafHost(t, 20, 20)
	path, ok := shortestFeasiblePath(s, 0, 0, 5)
	require.True(t, ok)
	assert.Equal(t, []substrate.NodeId{0}, path)
}

// TestShortestFeasiblePath_Deterministic: repeated calls over identical
// state produce identical paths.
func TestShortestFeasiblePath_Deterministic(t *testing.T) {
	s := hostLeafHost(t, 20, 20)
	first, ok := shortestFeasiblePath(s, 0, 1, 5)
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := shortestFeasiblePath(s, 0, 1, 5)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}
