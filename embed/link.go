package embed

import (
	"container/heap"

	"github.com/sirupsen/logrus"

	"github.com/vne-sim/vne-engine/substrate"
	"github.com/vne-sim/vne-engine/vnr"
)

// PathResult is the routed path chosen for one virtual link.
type PathResult struct {
	LinkIndex int
	Path      []substrate.NodeId
}

// pqItem is one entry of the link embedder's priority queue: a candidate
// distance to reach node, tagged with a monotonically increasing insertion
// sequence so equal-distance entries pop in FIFO order.
type pqItem struct {
	dist int
	node substrate.NodeId
	seq  int
}

// pqHeap implements container/heap with deterministic ordering: distance
// first, insertion sequence second.
type pqHeap []pqItem

func (h pqHeap) Len() int { return len(h) }
func (h pqHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].seq < h[j].seq
}
func (h pqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pqHeap) Push(x any)   { *h = append(*h, x.(pqItem)) }
func (h *pqHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// LinkEmbedder routes, for each virtual link of a VNR in order, a
// bandwidth-feasible path between the hosts assigned to its endpoints.
type LinkEmbedder struct {
	Logger *logrus.Logger
}

// NewLinkEmbedder constructs a LinkEmbedder. A nil logger falls back to
// logrus's standard logger.
func NewLinkEmbedder(logger *logrus.Logger) *LinkEmbedder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LinkEmbedder{Logger: logger}
}

// Embed routes every virtual link of v, in order, debiting bandwidth along
// each chosen path as it goes. It stops at the first unroutable virtual
// link and returns NoFeasiblePathError; the caller rolls back the whole
// VNR, including VM placements and any bandwidth already debited.
func (le *LinkEmbedder) Embed(s *substrate.SubstrateState, tok *substrate.SnapshotToken, v *vnr.Vnr, vmToHost map[int]substrate.HostId) ([]PathResult, error) {
	results := make([]PathResult, 0, v.NumVls())

	for idx, link := range v.VmLinks {
		demand := v.BwDemand[idx]
		src := vmToHost[link.I]
		dst := vmToHost[link.J]

		path, ok := shortestFeasiblePath(s, src, dst, demand)
		if !ok {
			le.Logger.WithFields(logrus.Fields{
				"vnr_id": v.VnrID, "link_index": idx, "src": src, "dst": dst, "demand": demand,
			}).Warn("no feasible path")
			return nil, &NoFeasiblePathError{VnrID: v.VnrID, LinkIndex: idx, SrcHost: int32(src), DstHost: int32(dst)}
		}

		for i := 0; i+1 < len(path); i++ {
			s.DebitBandwidth(tok, path[i], path[i+1], demand)
		}

		le.Logger.WithFields(logrus.Fields{
			"vnr_id": v.VnrID, "link_index": idx, "path_len": len(path),
		}).Debug("virtual link routed")

		results = append(results, PathResult{LinkIndex: idx, Path: path})
	}

	return results, nil
}

// shortestFeasiblePath runs a constrained Dijkstra from src to dst, where
// an edge is traversable only if its AvailableBw >= demand, and the
// accumulated path weight is the sum of AvailableBw over traversed edges
// — not hop-count or widest-path. Neighbors are relaxed in ascending
// NodeId order and ties in accumulated weight break on FIFO insertion
// order, so the result is deterministic across runs.
func shortestFeasiblePath(s *substrate.SubstrateState, src, dst substrate.NodeId, demand int) ([]substrate.NodeId, bool) {
	if src == dst {
		return []substrate.NodeId{src}, true
	}

	dist := map[substrate.NodeId]int{src: 0}
	prev := map[substrate.NodeId]substrate.NodeId{}
	visited := map[substrate.NodeId]bool{}

	pq := &pqHeap{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, pqItem{dist: 0, node: src, seq: seq})
	seq++

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if visited[item.node] {
			continue
		}
		if d, ok := dist[item.node]; !ok || item.dist != d {
			continue // stale queue entry superseded by a shorter relaxation
		}
		visited[item.node] = true
		if item.node == dst {
			break
		}

		for _, nb := range s.Neighbors(item.node) {
			if visited[nb] {
				continue
			}
			e, ok := s.Edge(item.node, nb)
			if !ok || e.AvailableBw < demand {
				continue
			}
			nd := dist[item.node] + e.AvailableBw
			if existing, ok := dist[nb]; !ok || nd < existing {
				dist[nb] = nd
				prev[nb] = item.node
				heap.Push(pq, pqItem{dist: nd, node: nb, seq: seq})
				seq++
			}
		}
	}

	if !visited[dst] {
		return nil, false
	}

	path := []substrate.NodeId{dst}
	for cur := dst; cur != src; {
		p := prev[cur]
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
