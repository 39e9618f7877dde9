package vnr

import "fmt"

// VmLink is a virtual link between two VMs of the same VNR, identified by
// VM index with I < J.
type VmLink struct {
	I, J int
}

// Vnr is an immutable Virtual Network Request: an ordered list of VM CPU
// demands and an ordered list of virtual links with parallel bandwidth
// demands.
type Vnr struct {
	VnrID    int64
	VmCpu    []int
	VmLinks  []VmLink
	BwDemand []int // parallel to VmLinks
}

// NumVms returns the number of VMs in the request.
func (v *Vnr) NumVms() int { return len(v.VmCpu) }

// NumVls returns the number of virtual links in the request.
func (v *Vnr) NumVls() int { return len(v.VmLinks) }

// Descriptor is the wire shape of a VNR record: a vnr_id, a VM count, a
// parallel array of per-VM CPU demands, an array of (i,j) virtual link
// endpoints, and a parallel array of bandwidth demands.
type Descriptor struct {
	VnrID           int64   `yaml:"vnr_id" json:"vnr_id"`
	NumVms          int     `yaml:"num_vms" json:"num_vms"`
	VmCpuCores      []int   `yaml:"vm_cpu_cores" json:"vm_cpu_cores"`
	VmLinks         [][2]int `yaml:"vm_links" json:"vm_links"`
	BandwidthValues []int   `yaml:"bandwidth_values" json:"bandwidth_values"`
}

// MalformedVnrError reports a VNR descriptor inconsistency: a VM index
// out of range, a negative demand, or a duplicate virtual link.
// Rejecting a VNR with this error is fatal only to that VNR — no state
// mutation occurs and the caller moves on to the next VNR in the stream.
type MalformedVnrError struct {
	VnrID  int64
	Reason string
}

func (e *MalformedVnrError) Error() string {
	return fmt.Sprintf("malformed vnr %d: %s", e.VnrID, e.Reason)
}
