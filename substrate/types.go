package substrate

import "sort"

// NodeId identifies a node in the substrate graph (a host, leaf switch, or
// spine switch). Dense integers replace string keys ("h3", "l1", "s0");
// Names maps back to them for reporting.
type NodeId int32

// HostId identifies a host. Hosts are also substrate graph nodes, so a
// HostId is simply the NodeId the host was assigned at load time.
type HostId = NodeId

// PlacedVm is a VM placed onto a host. Owned by exactly one Host;
// appended by PlaceVm during node embedding (Commit leaves it in place),
// removed only by rollback.
type PlacedVm struct {
	VnrID   int64
	VmIndex int
	Cpu     int
}

// Host is a substrate compute node with finite CPU capacity.
type Host struct {
	OriginalCpu  int
	AvailableCpu int
	Vms          []PlacedVm
}

// Placed returns the total CPU committed on this host (OriginalCpu -
// AvailableCpu).
func (h *Host) Placed() int {
	return h.OriginalCpu - h.AvailableCpu
}

// edgeKey canonicalizes an undirected edge so it is stored once regardless
// of which endpoint is queried first.
type edgeKey struct {
	lo, hi NodeId
}

func canon(u, v NodeId) edgeKey {
	if u <= v {
		return edgeKey{lo: u, hi: v}
	}
	return edgeKey{lo: v, hi: u}
}

// Edge is the residual-bandwidth state of one undirected substrate link.
// Stored once per canonical pair: reading it from either (u,v) or (v,u)
// yields the same object, so P2 (bandwidth symmetry) holds by construction
// rather than by bookkeeping.
type Edge struct {
	AvailableBw int
	OriginalBw  int
}

// SubstrateState is the engine's single mutable resource: hosts with CPU
// capacity, a symmetric weighted graph of residual bandwidth, and the set
// of edges traversed by at least one committed path.
type SubstrateState struct {
	Hosts map[HostId]*Host

	// Names maps every graph node (host or switch) to its descriptor name,
	// for reporting and for MalformedTopology diagnostics.
	Names map[NodeId]string

	adjacency map[NodeId][]NodeId // ascending NodeId order, fixed at load time
	edges     map[edgeKey]*Edge
	linkUsed  map[edgeKey]bool
}

// NewSubstrateState returns an empty substrate with no hosts or edges.
// Used directly by tests; production code builds a SubstrateState via
// LoadTopology.
func NewSubstrateState() *SubstrateState {
	return &SubstrateState{
		Hosts:     make(map[HostId]*Host),
		Names:     make(map[NodeId]string),
		adjacency: make(map[NodeId][]NodeId),
		edges:     make(map[edgeKey]*Edge),
		linkUsed:  make(map[edgeKey]bool),
	}
}

// HostIds returns all host identifiers in ascending order. Ascending
// HostId order is the deterministic tie-break the node embedder and the
// metrics aggregator both rely on.
func (s *SubstrateState) HostIds() []HostId {
	ids := make([]HostId, 0, len(s.Hosts))
	for id := range s.Hosts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Neighbors returns the nodes adjacent to u in ascending NodeId order.
// Topology is fixed at load time; only residual bandwidth changes
// afterward, so this slice may be returned and iterated without copying.
func (s *SubstrateState) Neighbors(u NodeId) []NodeId {
	return s.adjacency[u]
}

// Edge returns the residual-bandwidth state of the edge (u,v), or false if
// no such edge exists in the topology.
func (s *SubstrateState) Edge(u, v NodeId) (*Edge, bool) {
	e, ok := s.edges[canon(u, v)]
	return e, ok
}

// addEdge registers edge (u,v) with the given bandwidth and makes u,v
// adjacent. Called only during LoadTopology.
func (s *SubstrateState) addEdge(u, v NodeId, bw int) {
	k := canon(u, v)
	if _, exists := s.edges[k]; exists {
		return
	}
	s.edges[k] = &Edge{AvailableBw: bw, OriginalBw: bw}
	s.adjacency[u] = insertSorted(s.adjacency[u], v)
	s.adjacency[v] = insertSorted(s.adjacency[v], u)
}

func insertSorted(ns []NodeId, v NodeId) []NodeId {
	i := sort.Search(len(ns), func(i int) bool { return ns[i] >= v })
	if i < len(ns) && ns[i] == v {
		return ns
	}
	ns = append(ns, 0)
	copy(ns[i+1:], ns[i:])
	ns[i] = v
	return ns
}

// MarkUsed flips the link_used flag for edge (u,v) and reports whether this
// is the first time it was flipped (the caller needs this to know whether
// a rollback should clear it again, versus leaving it set because an
// earlier, already-committed VNR also used it).
func (s *SubstrateState) MarkUsed(u, v NodeId) (firstUse bool) {
	k := canon(u, v)
	if s.linkUsed[k] {
		return false
	}
	s.linkUsed[k] = true
	return true
}

// ClearUsed unconditionally clears the link_used flag for edge (u,v),
// regardless of which VNR set it. Rollback does not call it: it clears
// the flags of the edges its own token flipped directly by key.
func (s *SubstrateState) ClearUsed(u, v NodeId) {
	delete(s.linkUsed, canon(u, v))
}

// IsUsed reports whether edge (u,v) has been traversed by at least one
// committed path.
func (s *SubstrateState) IsUsed(u, v NodeId) bool {
	return s.linkUsed[canon(u, v)]
}

// UsedEdgeCount returns |link_used|, the links_used figure of the report.
func (s *SubstrateState) UsedEdgeCount() int {
	return len(s.linkUsed)
}

// TotalEdgeCount returns the number of undirected edges in the graph.
func (s *SubstrateState) TotalEdgeCount() int {
	return len(s.edges)
}

// AllEdges invokes fn once per undirected edge, in a stable order
// (ascending lo, then ascending hi), for reporting and for invariant
// checks that must walk every edge deterministically.
func (s *SubstrateState) AllEdges(fn func(u, v NodeId, e *Edge)) {
	keys := make([]edgeKey, 0, len(s.edges))
	for k := range s.edges {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}
		return keys[i].hi < keys[j].hi
	})
	for _, k := range keys {
		fn(k.lo, k.hi, s.edges[k])
	}
}

// TotalAvailableBandwidth sums AvailableBw over all undirected edges
// (initial_total_bandwidth / final_total_bandwidth in the report).
func (s *SubstrateState) TotalAvailableBandwidth() int {
	total := 0
	s.AllEdges(func(_, _ NodeId, e *Edge) { total += e.AvailableBw })
	return total
}
