package embed

import "fmt"

// NoFeasibleHostError is surfaced to the VNR outcome, never to the caller
// of engine.Run: it triggers rollback of any VMs already tentatively
// placed for this VNR.
type NoFeasibleHostError struct {
	VnrID   int64
	VmIndex int
}

func (e *NoFeasibleHostError) Error() string {
	return fmt.Sprintf("vnr %d: no feasible host for vm %d", e.VnrID, e.VmIndex)
}

// NoFeasiblePathError is surfaced to the VNR outcome: it triggers full
// per-VNR rollback, including already-placed VMs and any prior VL
// bandwidth debits within the same VNR.
type NoFeasiblePathError struct {
	VnrID      int64
	LinkIndex  int
	SrcHost    int32
	DstHost    int32
}

func (e *NoFeasiblePathError) Error() string {
	return fmt.Sprintf("vnr %d: no feasible path for virtual link %d (host %d -> host %d)",
		e.VnrID, e.LinkIndex, e.SrcHost, e.DstHost)
}

// InternalInvariantViolationError indicates a resource-bound invariant
// has been breached: a bug, not a rejectable VNR. The caller of
// engine.Run must abort the whole run on this error.
type InternalInvariantViolationError struct {
	Reason string
}

func (e *InternalInvariantViolationError) Error() string {
	return fmt.Sprintf("internal invariant violation: %s", e.Reason)
}
