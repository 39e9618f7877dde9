package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vne-sim/vne-engine/substrate"
)

func twoHostSubstrate(t *testing.T) *substrate.SubstrateState {
	t.Helper()
	s, err := substrate.LoadTopology(substrate.Descriptor{
		NumLeafSwitches: 1,
		Hosts: []substrate.HostEntry{
			{Name: "h0", AllocatedCores: 10},
			{Name: "h1", AllocatedCores: 10},
		},
		LinksDetails: []substrate.LinkDetail{
			{Node1: "h0", Node2: "l0", AssignedBandwidth: 20},
			{Node1: "l0", Node2: "h1", AssignedBandwidth: 20},
		},
	})
	require.NoError(t, err)
	return s
}

func TestAggregator_AcceptanceRatioAndPathLength(t *testing.T) {
	s := twoHostSubstrate(t)
	tok := substrate.NewSnapshotToken(s)
	s.PlaceVm(tok, 0, 1, 0, 4)
	s.DebitBandwidth(tok, 0, 2, 5)
	s.Commit(tok)

	agg := NewAggregator("energy-aware")
	agg.RecordAccepted(9, 9, 1, 1, []int{2})
	agg.RecordRejected()

	report := agg.Report(s, 20, s.Hosts[0].AvailableCpu+s.Hosts[1].AvailableCpu, 40, s.TotalAvailableBandwidth())

	assert.Equal(t, 2, report.VnrCount)
	assert.Equal(t, 1, report.AcceptedCount)
	assert.Equal(t, 50.0, report.AcceptanceRatio)
	assert.Equal(t, 1, report.ServersUsed)
	assert.Equal(t, 1, report.IdleServers)
	assert.Equal(t, 1, report.LinksUsed)
	assert.Equal(t, 1, report.IdleLinks)
	assert.Equal(t, 2.0, report.AvgPathLength)
	assert.Equal(t, 1.0, report.AvgRevenueToCost)
}

func TestAggregator_ZeroDenominatorsDoNotPanic(t *testing.T) {
	s := substrate.NewSubstrateState()
	agg := NewAggregator("energy-aware")
	report := agg.Report(s, 0, 0, 0, 0)
	assert.Equal(t, 0.0, report.AcceptanceRatio)
	assert.Equal(t, 0.0, report.AvgNodeStress)
	assert.Equal(t, 0.0, report.AvgLinkStress)
}
