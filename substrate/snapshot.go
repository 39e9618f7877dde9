package substrate

// SnapshotToken is a per-VNR commit/rollback handle. Rather than eagerly
// copying the whole SubstrateState at VNR entry, it records the
// pre-mutation value of a host or edge the first time — and only the
// first time — this VNR touches it. Snapshot cost is therefore bounded by
// the VNR's own footprint, not by the size of the substrate.
type SnapshotToken struct {
	substrate *SubstrateState

	hostCpu map[HostId]int // pre-VNR AvailableCpu, first touch only
	hostLen map[HostId]int // pre-VNR len(Vms), first touch only
	edgeBw  map[edgeKey]int
	flipped map[edgeKey]bool // link_used edges this VNR set from false to true
}

// NewSnapshotToken allocates a token for a VNR about to begin processing
// against s.
func NewSnapshotToken(s *SubstrateState) *SnapshotToken {
	return &SnapshotToken{
		substrate: s,
		hostCpu:   make(map[HostId]int),
		hostLen:   make(map[HostId]int),
		edgeBw:    make(map[edgeKey]int),
		flipped:   make(map[edgeKey]bool),
	}
}

func (t *SnapshotToken) touchHost(id HostId) {
	if _, ok := t.hostCpu[id]; ok {
		return
	}
	h := t.substrate.Hosts[id]
	t.hostCpu[id] = h.AvailableCpu
	t.hostLen[id] = len(h.Vms)
}

func (t *SnapshotToken) touchEdge(k edgeKey, e *Edge) {
	if _, ok := t.edgeBw[k]; ok {
		return
	}
	t.edgeBw[k] = e.AvailableBw
}

// PlaceVm tentatively deducts cpu from host and appends a PlacedVm,
// recording the host's pre-VNR state on first touch. The caller (the node
// embedder) is responsible for having already verified feasibility
// (AvailableCpu >= cpu); this method does not re-check it.
func (s *SubstrateState) PlaceVm(tok *SnapshotToken, host HostId, vnrID int64, vmIndex int, cpu int) {
	tok.touchHost(host)
	h := s.Hosts[host]
	h.AvailableCpu -= cpu
	h.Vms = append(h.Vms, PlacedVm{VnrID: vnrID, VmIndex: vmIndex, Cpu: cpu})
}

// DebitBandwidth tentatively deducts amount from the residual bandwidth of
// edge (u,v) and marks it used, recording pre-VNR state on first touch.
// As with PlaceVm, feasibility (AvailableBw >= amount) is the caller's
// obligation.
func (s *SubstrateState) DebitBandwidth(tok *SnapshotToken, u, v NodeId, amount int) {
	k := canon(u, v)
	e := s.edges[k]
	tok.touchEdge(k, e)
	e.AvailableBw -= amount
	if s.MarkUsed(u, v) {
		tok.flipped[k] = true
	}
}

// Commit discards the token. Tentative mutations already applied to
// SubstrateState become permanent; there is nothing left to do.
func (s *SubstrateState) Commit(tok *SnapshotToken) {
	_ = tok // no-op: correctness relies on mutations already being in place
}

// Rollback restores every host and edge this token touched to its pre-VNR
// value, and clears link_used for edges this VNR itself flipped.
// SubstrateState after rollback is bit-for-bit what it was before the VNR
// began. Idempotent — calling it twice on the same token is safe (the
// second call restores from state already at its target).
func (s *SubstrateState) Rollback(tok *SnapshotToken) {
	for id, cpu := range tok.hostCpu {
		h := s.Hosts[id]
		h.AvailableCpu = cpu
		h.Vms = h.Vms[:tok.hostLen[id]]
	}
	for k, bw := range tok.edgeBw {
		s.edges[k].AvailableBw = bw
	}
	for k := range tok.flipped {
		delete(s.linkUsed, k)
	}
}
