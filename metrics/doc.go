// Package metrics aggregates per-VNR outcomes into the acceptance,
// revenue/cost, stress, and energy figures of a run: accrue incrementally
// as VNRs are processed, then compute the derived percentages and
// averages once at the end.
package metrics
