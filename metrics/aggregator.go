package metrics

import (
	"github.com/vne-sim/vne-engine/substrate"
)

// Aggregator accumulates per-VNR outcomes across a run for final
// reporting. One Aggregator is scoped to one AlgorithmChoice, so a caller
// comparing algorithms runs the pipeline twice, each against its own
// Aggregator, and compares the resulting Reports.
type Aggregator struct {
	Algorithm string

	vnrCount      int
	acceptedCount int

	rcRatioSum   float64
	rcRatioCount int

	totalEmbeddedVms int
	totalEmbeddedVls int

	pathLenSum   int
	pathLenCount int
}

// NewAggregator creates an Aggregator scoped to the named algorithm (e.g.
// "energy-aware" or "first-fit").
func NewAggregator(algorithm string) *Aggregator {
	return &Aggregator{Algorithm: algorithm}
}

// RecordRejected accounts for a VNR that was not embedded: it counts
// towards vnr_count but contributes zero to every other figure — a
// rolled-back VNR leaves no trace.
func (a *Aggregator) RecordRejected() {
	a.vnrCount++
}

// RecordAccepted accounts for a committed VNR: revenue, cost,
// embedded-unit counts, and the lengths of every path it contributed.
func (a *Aggregator) RecordAccepted(revenue, cost float64, numVms, numVls int, pathLengths []int) {
	a.vnrCount++
	a.acceptedCount++
	if cost > 0 {
		a.rcRatioSum += revenue / cost
		a.rcRatioCount++
	}
	a.totalEmbeddedVms += numVms
	a.totalEmbeddedVls += numVls
	for _, l := range pathLengths {
		a.pathLenSum += l
		a.pathLenCount++
	}
}

// Report computes the final metrics row from the accumulated per-VNR
// figures plus the final substrate state and the CPU/bandwidth totals
// observed at the start and end of the run.
func (a *Aggregator) Report(s *substrate.SubstrateState, initialCpu, finalCpu, initialBw, finalBw int) Report {
	hostIDs := s.HostIds()
	totalHosts := len(hostIDs)

	serversUsed := 0
	totalEnergy := 0.0
	embeddedEnergy := 0.0
	for _, id := range hostIDs {
		h := s.Hosts[id]
		used := len(h.Vms) > 0
		if used {
			serversUsed++
		}
		var ratio float64
		if h.OriginalCpu > 0 {
			ratio = float64(h.OriginalCpu-h.AvailableCpu) / float64(h.OriginalCpu)
		}
		e := PIdle + (PFull-PIdle)*ratio
		totalEnergy += e
		if used {
			embeddedEnergy += e
		}
	}
	idleServers := totalHosts - serversUsed

	totalEdges := s.TotalEdgeCount()
	linksUsed := s.UsedEdgeCount()
	idleLinks := totalEdges - linksUsed

	acceptanceRatio := 0.0
	if a.vnrCount > 0 {
		acceptanceRatio = 100 * float64(a.acceptedCount) / float64(a.vnrCount)
	}

	avgRC := 0.0
	if a.rcRatioCount > 0 {
		avgRC = a.rcRatioSum / float64(a.rcRatioCount)
	}

	ns := ratioOrZero(float64(a.totalEmbeddedVms), float64(totalHosts))
	ans := ratioOrZero(float64(a.totalEmbeddedVms), float64(serversUsed))
	ls := ratioOrZero(float64(a.totalEmbeddedVls), float64(totalEdges))
	als := ratioOrZero(float64(a.totalEmbeddedVls), float64(linksUsed))

	avgPathLength := 0.0
	if a.pathLenCount > 0 {
		avgPathLength = float64(a.pathLenSum) / float64(a.pathLenCount)
	}

	return Report{
		Algorithm:         a.Algorithm,
		VnrCount:          a.vnrCount,
		AcceptedCount:     a.acceptedCount,
		AcceptanceRatio:   round2(acceptanceRatio),
		ServersUsed:       serversUsed,
		IdleServers:       idleServers,
		LinksUsed:         linksUsed,
		IdleLinks:         idleLinks,
		TotalEmbeddedVms:  a.totalEmbeddedVms,
		TotalEmbeddedVls:  a.totalEmbeddedVls,
		NodeStress:        round2(ns),
		AvgNodeStress:     round2(ans),
		LinkStress:        round2(ls),
		AvgLinkStress:     round2(als),
		AvgPathLength:     round2(avgPathLength),
		AvgRevenueToCost:  round2(avgRC),
		InitialTotalCpu:   initialCpu,
		FinalTotalCpu:     finalCpu,
		InitialTotalBw:    initialBw,
		FinalTotalBw:      finalBw,
		TotalEnergy:       round2(totalEnergy),
		EmbeddedEnergy:    round2(embeddedEnergy),
	}
}

func ratioOrZero(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
