// Package embed implements the two embedding stages of the VNE pipeline:
// the node embedder, which scores and selects a host for every VM of a
// VNR, and the link embedder, which routes a bandwidth-feasible path for
// every virtual link between the hosts chosen for its endpoints.
//
// Both stages mutate substrate.SubstrateState directly through a
// substrate.SnapshotToken — there is no staging area. A failure in either
// stage is reported to the caller (engine.Run), which rolls the token
// back; embed itself never rolls back, it only ever mutates forward or
// returns an error.
package embed
