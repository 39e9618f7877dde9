package metrics

import (
	"fmt"
	"math"
)

// Energy model constants, shared with embed.EnergyAwareScorer. Duplicated
// rather than imported to keep metrics free of a dependency on embed — the
// two packages independently implement the same linear idle-to-full power
// curve.
const (
	PIdle = 150.0
	PFull = 300.0
)

// Report is the aggregate row appended at the end of a run: one per
// AlgorithmChoice. All floating-point fields are rounded to two decimals.
type Report struct {
	Algorithm string

	VnrCount        int
	AcceptedCount   int
	AcceptanceRatio float64

	ServersUsed int
	IdleServers int
	LinksUsed   int
	IdleLinks   int

	TotalEmbeddedVms int
	TotalEmbeddedVls int

	NodeStress    float64
	AvgNodeStress float64
	LinkStress    float64
	AvgLinkStress float64

	AvgPathLength    float64
	AvgRevenueToCost float64

	InitialTotalCpu int
	FinalTotalCpu   int
	InitialTotalBw  int
	FinalTotalBw    int

	TotalEnergy    float64
	EmbeddedEnergy float64
}

// Print writes a human-readable summary, in the same
// "=== Section ===" / labeled-line shape as sim.Metrics.Print.
func (r Report) Print() {
	fmt.Printf("=== VNE Embedding Report (%s) ===\n", r.Algorithm)
	fmt.Printf("VNRs                 : %d total, %d accepted\n", r.VnrCount, r.AcceptedCount)
	fmt.Printf("Acceptance Ratio     : %.2f%%\n", r.AcceptanceRatio)
	fmt.Printf("Servers used/idle    : %d / %d\n", r.ServersUsed, r.IdleServers)
	fmt.Printf("Links used/idle      : %d / %d\n", r.LinksUsed, r.IdleLinks)
	fmt.Printf("VMs/VLs embedded     : %d / %d\n", r.TotalEmbeddedVms, r.TotalEmbeddedVls)
	fmt.Printf("Node stress (NS/ANS) : %.2f / %.2f\n", r.NodeStress, r.AvgNodeStress)
	fmt.Printf("Link stress (LS/ALS) : %.2f / %.2f\n", r.LinkStress, r.AvgLinkStress)
	fmt.Printf("Avg path length      : %.2f\n", r.AvgPathLength)
	fmt.Printf("Avg revenue/cost     : %.2f\n", r.AvgRevenueToCost)
	fmt.Printf("CPU total (init/fin) : %d / %d\n", r.InitialTotalCpu, r.FinalTotalCpu)
	fmt.Printf("BW total (init/fin)  : %d / %d\n", r.InitialTotalBw, r.FinalTotalBw)
	fmt.Printf("Total/Embedded energy: %.2f / %.2f W\n", r.TotalEnergy, r.EmbeddedEnergy)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
