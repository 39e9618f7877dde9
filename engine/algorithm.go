package engine

import (
	"fmt"

	"github.com/vne-sim/vne-engine/embed"
)

// AlgorithmChoice selects the node-embedding strategy. Link embedding is
// the same constrained-shortest-path routing regardless of choice.
type AlgorithmChoice string

const (
	// AlgorithmEnergyAware is the overload- and energy-aware scorer.
	AlgorithmEnergyAware AlgorithmChoice = "energy-aware"

	// AlgorithmFirstFit is a baseline: first feasible host in ascending
	// HostId order, no scoring.
	AlgorithmFirstFit AlgorithmChoice = "first-fit"
)

func scorerFor(choice AlgorithmChoice) (embed.HostScorer, error) {
	switch choice {
	case AlgorithmEnergyAware:
		return embed.EnergyAwareScorer{}, nil
	case AlgorithmFirstFit:
		return embed.FirstFitScorer{}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm choice %q", choice)
	}
}
