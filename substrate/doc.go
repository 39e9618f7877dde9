// Package substrate provides the mutable state of the physical network the
// embedding engine places virtual network requests onto.
//
// # Reading Guide
//
//   - types.go: HostId/NodeId, Host, Edge and the SubstrateState container
//   - loader.go: decoding an SN descriptor into a SubstrateState
//   - snapshot.go: SnapshotToken, the per-VNR commit/rollback mechanism
//
// SubstrateState is the single mutable resource in the engine. No locking
// is required: the embedding pipeline is strictly sequential and never
// reenters SubstrateState from more than one goroutine.
package substrate
