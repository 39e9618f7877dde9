package vnr

import "strconv"

// Decode validates d and converts it into an immutable Vnr. It is the only
// place MalformedVnrError is raised: once Decode succeeds, every
// downstream component may assume VM indices are in range, i<j holds for
// every virtual link, demands are non-negative, and no virtual link is
// duplicated.
func Decode(d Descriptor) (Vnr, error) {
	if len(d.VmCpuCores) != d.NumVms {
		return Vnr{}, &MalformedVnrError{
			VnrID:  d.VnrID,
			Reason: "len(vm_cpu_cores) does not match num_vms",
		}
	}
	for idx, cpu := range d.VmCpuCores {
		if cpu < 0 {
			return Vnr{}, &MalformedVnrError{
				VnrID:  d.VnrID,
				Reason: "negative vm_cpu_cores at index " + strconv.Itoa(idx),
			}
		}
	}
	if len(d.VmLinks) != len(d.BandwidthValues) {
		return Vnr{}, &MalformedVnrError{
			VnrID:  d.VnrID,
			Reason: "len(vm_links) does not match len(bandwidth_values)",
		}
	}

	links := make([]VmLink, 0, len(d.VmLinks))
	seen := make(map[VmLink]bool, len(d.VmLinks))
	for idx, pair := range d.VmLinks {
		i, j := pair[0], pair[1]
		if i < 0 || j < 0 || i >= d.NumVms || j >= d.NumVms {
			return Vnr{}, &MalformedVnrError{
				VnrID:  d.VnrID,
				Reason: "vm_links entry " + strconv.Itoa(idx) + " references a VM index out of range",
			}
		}
		if i >= j {
			return Vnr{}, &MalformedVnrError{
				VnrID:  d.VnrID,
				Reason: "vm_links entry " + strconv.Itoa(idx) + " must satisfy i<j",
			}
		}
		link := VmLink{I: i, J: j}
		if seen[link] {
			return Vnr{}, &MalformedVnrError{
				VnrID:  d.VnrID,
				Reason: "duplicate virtual link (" + strconv.Itoa(i) + "," + strconv.Itoa(j) + ")",
			}
		}
		seen[link] = true
		links = append(links, link)
		if d.BandwidthValues[idx] < 0 {
			return Vnr{}, &MalformedVnrError{
				VnrID:  d.VnrID,
				Reason: "negative bandwidth_values at index " + strconv.Itoa(idx),
			}
		}
	}

	bw := make([]int, len(d.BandwidthValues))
	copy(bw, d.BandwidthValues)
	cpu := make([]int, len(d.VmCpuCores))
	copy(cpu, d.VmCpuCores)

	return Vnr{
		VnrID:    d.VnrID,
		VmCpu:    cpu,
		VmLinks:  links,
		BwDemand: bw,
	}, nil
}

