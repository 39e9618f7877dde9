package substrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoHostOneLeaf(t *testing.T) *SubstrateState {
	t.Helper()
	s, err := LoadTopology(Descriptor{
		NumLeafSwitches: 1,
		Hosts: []HostEntry{
			{Name: "h0", AllocatedCores: 10},
			{Name: "h1", AllocatedCores: 10},
		},
		LinksDetails: []LinkDetail{
			{Node1: "h0", Node2: "l0", AssignedBandwidth: 20},
			{Node1: "l0", Node2: "h1", AssignedBandwidth: 20},
		},
	})
	if err != nil {
		t.Fatalf("LoadTopology: %v", err)
	}
	return s
}

// TestSnapshot_RollbackRestoresHostAndEdges verifies I3: after a rollback,
// a VNR's tentative mutations leave no trace.
func TestSnapshot_RollbackRestoresHostAndEdges(t *testing.T) {
	s := twoHostOneLeaf(t)
	tok := NewSnapshotToken(s)

	s.PlaceVm(tok, 0, 7, 0, 4)
	s.DebitBandwidth(tok, 0, 2, 5) // h0 <-> l0

	assert.Equal(t, 6, s.Hosts[0].AvailableCpu)
	assert.Len(t, s.Hosts[0].Vms, 1)
	e, _ := s.Edge(0, 2)
	assert.Equal(t, 15, e.AvailableBw)
	assert.True(t, s.IsUsed(0, 2))

	s.Rollback(tok)

	assert.Equal(t, 10, s.Hosts[0].AvailableCpu)
	assert.Empty(t, s.Hosts[0].Vms)
	assert.Equal(t, 20, e.AvailableBw)
	assert.False(t, s.IsUsed(0, 2))
}

// TestSnapshot_RollbackIsIdempotent verifies rollback may be invoked twice
// without changing the outcome.
func TestSnapshot_RollbackIsIdempotent(t *testing.T) {
	s := twoHostOneLeaf(t)
	tok := NewSnapshotToken(s)
	s.PlaceVm(tok, 0, 1, 0, 3)

	s.Rollback(tok)
	s.Rollback(tok)

	assert.Equal(t, 10, s.Hosts[0].AvailableCpu)
	assert.Empty(t, s.Hosts[0].Vms)
}

// TestSnapshot_DoesNotClearLinkUsedFromPriorVnr verifies that an edge
// already marked used by an earlier, committed VNR stays marked used after
// a later VNR's rollback — rollback only undoes flips *this* token made.
func TestSnapshot_DoesNotClearLinkUsedFromPriorVnr(t *testing.T) {
	s := twoHostOneLeaf(t)

	committed := NewSnapshotToken(s)
	s.DebitBandwidth(committed, 0, 2, 5)
	s.Commit(committed)

	rolledBack := NewSnapshotToken(s)
	s.DebitBandwidth(rolledBack, 2, 1, 5) // different edge (l0 <-> h1)
	s.Rollback(rolledBack)

	assert.True(t, s.IsUsed(0, 2), "prior commit's link_used flag must survive a later rollback")
	assert.False(t, s.IsUsed(2, 1))
}

// TestSnapshot_Commit verifies commit is a state no-op: tentative changes
// already in place remain in place.
func TestSnapshot_Commit(t *testing.T) {
	s := twoHostOneLeaf(t)
	tok := NewSnapshotToken(s)
	s.PlaceVm(tok, 0, 1, 0, 4)
	s.Commit(tok)

	assert.Equal(t, 6, s.Hosts[0].AvailableCpu)
	assert.Len(t, s.Hosts[0].Vms, 1)
}
