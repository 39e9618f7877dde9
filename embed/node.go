package embed

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vne-sim/vne-engine/substrate"
	"github.com/vne-sim/vne-engine/vnr"
)

// Energy model constants: a linear idle-to-full power curve.
const (
	PIdle = 150.0
	PFull = 300.0
	Alpha = 1.0

	// sigmaFloor avoids dividing by zero when scoring a single-host
	// substrate or a substrate with uniform available_cpu.
	sigmaFloor = 1e-6
)

// HostScorer selects a host for one VM of a VNR. Implementations must be
// deterministic: given the same SubstrateState and the same set of hosts
// already used by this VNR, SelectHost must always return the same host.
type HostScorer interface {
	// SelectHost returns the chosen host and true, or an arbitrary zero
	// value and false if no feasible host exists (every host is either
	// under-capacity for cpu, or already used by this VNR).
	SelectHost(s *substrate.SubstrateState, cpu int, usedByVnr map[substrate.HostId]bool) (substrate.HostId, bool)
}

// EnergyAwareScorer implements the overload- and energy-aware node
// embedding objective: among feasible hosts, pick the one minimizing
// J_k = E_k * exp(alpha*p), where E_k is the post-placement linear power
// estimate and p is the overload probability under a normal model of
// available_cpu across the whole substrate. Ties break on the lowest
// HostId.
type EnergyAwareScorer struct{}

// SelectHost implements HostScorer for EnergyAwareScorer.
func (EnergyAwareScorer) SelectHost(s *substrate.SubstrateState, cpu int, usedByVnr map[substrate.HostId]bool) (substrate.HostId, bool) {
	ids := s.HostIds()

	mu, sigma := hostCpuStats(s, ids)

	bestJ := math.Inf(1)
	var best substrate.HostId
	found := false

	for _, id := range ids {
		if usedByVnr[id] {
			continue
		}
		h := s.Hosts[id]
		ck := h.AvailableCpu
		if ck < cpu {
			continue
		}

		z := (float64(ck-cpu) - mu) / sigma
		p := 1 - distuv.Normal{Mu: 0, Sigma: 1}.CDF(z)

		var ratio float64
		if h.OriginalCpu > 0 {
			ratio = float64(h.Placed()+cpu) / float64(h.OriginalCpu)
		}
		ek := PIdle + (PFull-PIdle)*ratio
		jk := ek * math.Exp(Alpha*p)

		if !found || jk < bestJ {
			bestJ = jk
			best = id
			found = true
		}
	}

	return best, found
}

// hostCpuStats computes the population mean and sample standard deviation
// (unbiased, N-1 denominator) of available_cpu across every host in the
// substrate — not just feasible candidates — flooring sigma to avoid a
// degenerate score.
func hostCpuStats(s *substrate.SubstrateState, ids []substrate.HostId) (mu, sigma float64) {
	data := make([]float64, len(ids))
	for i, id := range ids {
		data[i] = float64(s.Hosts[id].AvailableCpu)
	}
	mu, sigma = stat.MeanStdDev(data, nil)
	if math.IsNaN(sigma) || sigma < sigmaFloor {
		sigma = sigmaFloor
	}
	return mu, sigma
}

// FirstFitScorer is a "first fit" baseline algorithm: it ignores energy
// and overload entirely and picks the first feasible host in ascending
// HostId order. Useful as a comparison point against EnergyAwareScorer in
// the metrics aggregator's per-algorithm report.
type FirstFitScorer struct{}

// SelectHost implements HostScorer for FirstFitScorer.
func (FirstFitScorer) SelectHost(s *substrate.SubstrateState, cpu int, usedByVnr map[substrate.HostId]bool) (substrate.HostId, bool) {
	for _, id := range s.HostIds() {
		if usedByVnr[id] {
			continue
		}
		if s.Hosts[id].AvailableCpu >= cpu {
			return id, true
		}
	}
	return 0, false
}

// NodeEmbedder decides, for each VM of a VNR in order, which host runs
// it. It mutates SubstrateState tentatively via the given SnapshotToken
// and stops at the first infeasible VM.
type NodeEmbedder struct {
	Scorer HostScorer
	Logger *logrus.Logger
}

// NewNodeEmbedder constructs a NodeEmbedder. A nil logger falls back to
// logrus's standard logger, matching cmd/root.go's use of the package-level
// logrus functions.
func NewNodeEmbedder(scorer HostScorer, logger *logrus.Logger) *NodeEmbedder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NodeEmbedder{Scorer: scorer, Logger: logger}
}

// Embed places every VM of v onto a host, in VM-index order, returning the
// VmIndex -> HostId mapping on success. On the first infeasible VM it
// returns NoFeasibleHostError; the caller is responsible for rolling back
// whatever VMs were placed before the failure.
func (ne *NodeEmbedder) Embed(s *substrate.SubstrateState, tok *substrate.SnapshotToken, v *vnr.Vnr) (map[int]substrate.HostId, error) {
	vmToHost := make(map[int]substrate.HostId, v.NumVms())
	used := make(map[substrate.HostId]bool, v.NumVms())

	for i, cpu := range v.VmCpu {
		host, ok := ne.Scorer.SelectHost(s, cpu, used)
		if !ok {
			ne.Logger.WithFields(logrus.Fields{"vnr_id": v.VnrID, "vm_index": i, "cpu": cpu}).
				Warn("no feasible host")
			return nil, &NoFeasibleHostError{VnrID: v.VnrID, VmIndex: i}
		}
		s.PlaceVm(tok, host, v.VnrID, i, cpu)
		used[host] = true
		vmToHost[i] = host
		ne.Logger.WithFields(logrus.Fields{"vnr_id": v.VnrID, "vm_index": i, "host": host, "cpu": cpu}).
			Debug("vm placed")
	}

	return vmToHost, nil
}
