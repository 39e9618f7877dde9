// Package engine orchestrates the full VNE pipeline: it decodes and
// validates each VNR, runs node embedding then link embedding against a
// substrate.SubstrateState, commits or rolls back per-VNR, and accumulates
// a metrics.Report across the stream.
//
// Run is the engine's one entry point: sequential processing of a
// stream, accumulating into a metrics holder, with no suspension point
// inside a single unit of work.
package engine
