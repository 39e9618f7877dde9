package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/vne-sim/vne-engine/embed"
	"github.com/vne-sim/vne-engine/metrics"
	"github.com/vne-sim/vne-engine/substrate"
	"github.com/vne-sim/vne-engine/vnr"
)

// Run processes vnrDescriptors in order against s using the given
// AlgorithmChoice. Each descriptor is independently decoded,
// node-embedded, link-embedded, and committed or rolled back before the
// next one is considered — there is no suspension point inside a single
// VNR's processing.
//
// Run returns an error only for a run-scoped failure (an unknown
// AlgorithmChoice, or an InternalInvariantViolationError) — the embedding
// pipeline otherwise reports VNR-scoped failures inside the returned
// results, never by returning an error.
func Run(s *substrate.SubstrateState, vnrDescriptors []vnr.Descriptor, choice AlgorithmChoice, logger *logrus.Logger) (metrics.Report, []EmbeddingResult, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	scorer, err := scorerFor(choice)
	if err != nil {
		return metrics.Report{}, nil, err
	}

	nodeEmbedder := embed.NewNodeEmbedder(scorer, logger)
	linkEmbedder := embed.NewLinkEmbedder(logger)
	agg := metrics.NewAggregator(string(choice))

	initialCpu := totalCpu(s)
	initialBw := s.TotalAvailableBandwidth()

	results := make([]EmbeddingResult, 0, len(vnrDescriptors))

	for _, d := range vnrDescriptors {
		v, err := vnr.Decode(d)
		if err != nil {
			logger.WithFields(logrus.Fields{"vnr_id": d.VnrID, "error": err}).Warn("malformed vnr rejected")
			agg.RecordRejected()
			results = append(results, EmbeddingResult{
				VnrID:         d.VnrID,
				VmToHost:      map[int]substrate.HostId{},
				FailureReason: err.Error(),
			})
			continue
		}

		result, err := runOne(s, &v, nodeEmbedder, linkEmbedder, agg, logger)
		if err != nil {
			return agg.Report(s, initialCpu, totalCpu(s), initialBw, s.TotalAvailableBandwidth()), results, err
		}
		results = append(results, result)
	}

	report := agg.Report(s, initialCpu, totalCpu(s), initialBw, s.TotalAvailableBandwidth())
	return report, results, nil
}

// runOne embeds a single validated VNR. It returns a non-nil error only
// for a run-scoped InternalInvariantViolationError; VNR-scoped failures
// (NoFeasibleHostError, NoFeasiblePathError) are folded into the returned
// EmbeddingResult instead.
func runOne(s *substrate.SubstrateState, v *vnr.Vnr, nodeEmbedder *embed.NodeEmbedder, linkEmbedder *embed.LinkEmbedder, agg *metrics.Aggregator, logger *logrus.Logger) (EmbeddingResult, error) {
	tok := substrate.NewSnapshotToken(s)

	vmToHost, err := nodeEmbedder.Embed(s, tok, v)
	if err != nil {
		s.Rollback(tok)
		agg.RecordRejected()
		return EmbeddingResult{VnrID: v.VnrID, VmToHost: map[int]substrate.HostId{}, FailureReason: err.Error()}, nil
	}

	paths, err := linkEmbedder.Embed(s, tok, v, vmToHost)
	if err != nil {
		s.Rollback(tok)
		agg.RecordRejected()
		return EmbeddingResult{VnrID: v.VnrID, VmToHost: map[int]substrate.HostId{}, FailureReason: err.Error()}, nil
	}

	if err := checkInvariants(s); err != nil {
		s.Rollback(tok)
		logger.WithFields(logrus.Fields{"vnr_id": v.VnrID, "error": err}).Error("aborting run")
		return EmbeddingResult{}, err
	}

	s.Commit(tok)

	revenue := computeRevenue(v)
	cost := computeCost(v, paths)
	pathLens := make([]int, len(paths))
	for i, p := range paths {
		pathLens[i] = len(p.Path)
	}
	agg.RecordAccepted(revenue, cost, v.NumVms(), v.NumVls(), pathLens)

	return EmbeddingResult{
		VnrID:    v.VnrID,
		Success:  true,
		VmToHost: vmToHost,
		Paths:    paths,
		Revenue:  revenue,
		Cost:     cost,
	}, nil
}

// computeRevenue computes R = Σ vm_cpu + Σ bw_demand.
func computeRevenue(v *vnr.Vnr) float64 {
	total := 0
	for _, c := range v.VmCpu {
		total += c
	}
	for _, bw := range v.BwDemand {
		total += bw
	}
	return float64(total)
}

// computeCost computes C = Σ vm_cpu + Σ (|path_i|*bw_i).
func computeCost(v *vnr.Vnr, paths []embed.PathResult) float64 {
	total := 0
	for _, c := range v.VmCpu {
		total += c
	}
	for _, p := range paths {
		total += len(p.Path) * v.BwDemand[p.LinkIndex]
	}
	return float64(total)
}

func totalCpu(s *substrate.SubstrateState) int {
	total := 0
	for _, id := range s.HostIds() {
		total += s.Hosts[id].AvailableCpu
	}
	return total
}
