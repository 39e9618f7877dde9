package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vne-sim/vne-engine/substrate"
	"github.com/vne-sim/vne-engine/vnr"
)

func oneHost(cpu int) *substrate.SubstrateState {
	s, _ := substrate.LoadTopology(substrate.Descriptor{
		Hosts: []substrate.HostEntry{{Name: "h0", AllocatedCores: cpu}},
	})
	return s
}

func twoHosts(cpu0, cpu1 int) *substrate.SubstrateState {
	s, _ := substrate.LoadTopology(substrate.Descriptor{
		Hosts: []substrate.HostEntry{
			{Name: "h0", AllocatedCores: cpu0},
			{Name: "h1", AllocatedCores: cpu1},
		},
	})
	return s
}

// TestNodeEmbedder_TrivialAccept: one host h0=8, one VM demanding 3.
func TestNodeEmbedder_TrivialAccept(t *testing.T) {
	s := oneHost(8)
	tok := substrate.NewSnapshotToken(s)
	v := vnr.Vnr{VnrID: 1, VmCpu: []int{3}}

	ne := NewNodeEmbedder(EnergyAwareScorer{}, nil)
	mapping, err := ne.Embed(s, tok, &v)
	require.NoError(t, err)
	assert.Equal(t, substrate.HostId(0), mapping[0])
	assert.Equal(t, 5, s.Hosts[0].AvailableCpu)
}

// TestNodeEmbedder_RejectOnCpu: h0=2, h1=2; VNR demands 3.
func TestNodeEmbedder_RejectOnCpu(t *testing.T) {
	s := twoHosts(2, 2)
	tok := substrate.NewSnapshotToken(s)
	v := vnr.Vnr{VnrID: 2, VmCpu: []int{3}}

	ne := NewNodeEmbedder(EnergyAwareScorer{}, nil)
	_, err := ne.Embed(s, tok, &v)
	require.Error(t, err)
	var nf *NoFeasibleHostError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 0, nf.VmIndex)
}

// TestNodeEmbedder_TieBreak: two identical hosts, one VM -> VM1 to h0.
func TestNodeEmbedder_TieBreak(t *testing.T) {
	s := twoHosts(10, 10)
	tok := substrate.NewSnapshotToken(s)
	v := vnr.Vnr{VnrID: 5, VmCpu: []int{4}}

	ne := NewNodeEmbedder(EnergyAwareScorer{}, nil)
	mapping, err := ne.Embed(s, tok, &v)
	require.NoError(t, err)
	assert.Equal(t, substrate.HostId(0), mapping[0])
}

// TestNodeEmbedder_StatsFloor: single host in the SN; sigma must be
// floored so the VM still gets placed rather than the score blowing up.
func TestNodeEmbedder_StatsFloor(t *testing.T) {
	s := oneHost(16)
	tok := substrate.NewSnapshotToken(s)
	v := vnr.Vnr{VnrID: 6, VmCpu: []int{5}}

	ne := NewNodeEmbedder(EnergyAwareScorer{}, nil)
	mapping, err := ne.Embed(s, tok, &v)
	require.NoError(t, err)
	assert.Equal(t, substrate.HostId(0), mapping[0])
	assert.Equal(t, 11, s.Hosts[0].AvailableCpu)
}

// TestNodeEmbedder_NoCoLocation: two VMs of one VNR never land on the
// same host even when a single host could fit both individually.
func TestNodeEmbedder_NoCoLocation(t *testing.T) {
	s := twoHosts(10, 10)
	tok := substrate.NewSnapshotToken(s)
	v := vnr.Vnr{VnrID: 3, VmCpu: []int{4, 4}}

	ne := NewNodeEmbedder(EnergyAwareScorer{}, nil)
	mapping, err := ne.Embed(s, tok, &v)
	require.NoError(t, err)
	assert.NotEqual(t, mapping[0], mapping[1])
}

func TestFirstFitScorer_PicksLowestFeasibleHostId(t *testing.T) {
	s := twoHosts(2, 10)
	tok := substrate.NewSnapshotToken(s)
	v := vnr.Vnr{VnrID: 9, VmCpu: []int{3}}

	ne := NewNodeEmbedder(FirstFitScorer{}, nil)
	mapping, err := ne.Embed(s, tok, &v)
	require.NoError(t, err)
	assert.Equal(t, substrate.HostId(1), mapping[0])
}
