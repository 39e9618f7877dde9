package engine

import (
	"github.com/vne-sim/vne-engine/embed"
	"github.com/vne-sim/vne-engine/substrate"
)

// checkInvariants verifies the resource-bound invariants hold over the
// whole substrate: no host's available_cpu is negative or exceeds its
// original_cpu, and no edge's available_bw is negative or exceeds its
// original_bw. A violation here means the embedders wrote something they
// should not have been able to — InternalInvariantViolationError, not a
// rejectable VNR.
func checkInvariants(s *substrate.SubstrateState) error {
	for _, id := range s.HostIds() {
		h := s.Hosts[id]
		if h.AvailableCpu < 0 || h.AvailableCpu > h.OriginalCpu {
			return &embed.InternalInvariantViolationError{
				Reason: "host available_cpu out of [0, original_cpu] range",
			}
		}
	}

	var violated bool
	s.AllEdges(func(_, _ substrate.NodeId, e *substrate.Edge) {
		if e.AvailableBw < 0 || e.AvailableBw > e.OriginalBw {
			violated = true
		}
	})
	if violated {
		return &embed.InternalInvariantViolationError{
			Reason: "edge available_bw out of [0, original_bw] range",
		}
	}

	return nil
}
