package engine

import (
	"github.com/vne-sim/vne-engine/embed"
	"github.com/vne-sim/vne-engine/substrate"
)

// EmbeddingResult is the per-VNR outcome: the host chosen for every VM,
// the path chosen for every virtual link, and the revenue/cost figures,
// or a failure with both maps empty.
type EmbeddingResult struct {
	VnrID    int64
	Success  bool
	VmToHost map[int]substrate.HostId
	Paths    []embed.PathResult
	Revenue  float64
	Cost     float64

	// FailureReason carries the rejection cause for observability. Never
	// examined by the engine itself — only the caller's reporting layer.
	FailureReason string
}
