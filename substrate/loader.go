package substrate

import (
	"fmt"
)

// HostEntry is one per-host record of an SN descriptor: a name following
// the "h<i>" convention, its allocated CPU cores, and an informational
// list of physical connections. Connections are not consumed by the
// loader — only links_details is.
type HostEntry struct {
	Name           string   `yaml:"name" json:"name"`
	AllocatedCores int      `yaml:"allocated_cores" json:"allocated_cores"`
	Connections    []string `yaml:"connections" json:"connections"`
}

// LinkDetail is one entry of an SN descriptor's links_details.
type LinkDetail struct {
	Node1             string `yaml:"node1" json:"node1"`
	Node2             string `yaml:"node2" json:"node2"`
	AssignedBandwidth int    `yaml:"assigned_bandwidth" json:"assigned_bandwidth"`
}

// Descriptor is the SN descriptor input: spine/leaf/host counts, the
// link list, and per-host core allocations.
type Descriptor struct {
	NumSpineSwitches int          `yaml:"num_spine_switches" json:"num_spine_switches"`
	NumLeafSwitches  int          `yaml:"num_leaf_switches" json:"num_leaf_switches"`
	NumHosts         int          `yaml:"num_hosts" json:"num_hosts"`
	LinksDetails     []LinkDetail `yaml:"links_details" json:"links_details"`
	Hosts            []HostEntry  `yaml:"hosts" json:"hosts"`
}

// MalformedTopologyError reports an SN descriptor inconsistency: a link
// referencing an unknown node, or a host name appearing twice.
type MalformedTopologyError struct {
	Reason string
}

func (e *MalformedTopologyError) Error() string {
	return fmt.Sprintf("malformed topology: %s", e.Reason)
}

func leafName(i int) string { return fmt.Sprintf("l%d", i) }
func spineName(i int) string { return fmt.Sprintf("s%d", i) }

// LoadTopology materializes a SubstrateState from an SN descriptor. Hosts
// are assigned NodeIds 0..len(Hosts)-1 in descriptor order, followed by
// leaf switches l0..l(NumLeafSwitches-1) and spine switches
// s0..s(NumSpineSwitches-1) in index order — a deterministic, dense
// enumeration.
func LoadTopology(d Descriptor) (*SubstrateState, error) {
	s := NewSubstrateState()

	nameToID := make(map[string]NodeId, len(d.Hosts)+d.NumLeafSwitches+d.NumSpineSwitches)
	var next NodeId

	seenHost := make(map[string]bool, len(d.Hosts))
	for _, h := range d.Hosts {
		if seenHost[h.Name] {
			return nil, &MalformedTopologyError{Reason: fmt.Sprintf("host %q appears twice", h.Name)}
		}
		seenHost[h.Name] = true

		id := next
		next++
		nameToID[h.Name] = id
		s.Names[id] = h.Name
		s.Hosts[id] = &Host{OriginalCpu: h.AllocatedCores, AvailableCpu: h.AllocatedCores}
	}

	for i := 0; i < d.NumLeafSwitches; i++ {
		name := leafName(i)
		id := next
		next++
		nameToID[name] = id
		s.Names[id] = name
	}
	for i := 0; i < d.NumSpineSwitches; i++ {
		name := spineName(i)
		id := next
		next++
		nameToID[name] = id
		s.Names[id] = name
	}

	for _, l := range d.LinksDetails {
		u, ok := nameToID[l.Node1]
		if !ok {
			return nil, &MalformedTopologyError{Reason: fmt.Sprintf("link references unknown node %q", l.Node1)}
		}
		v, ok := nameToID[l.Node2]
		if !ok {
			return nil, &MalformedTopologyError{Reason: fmt.Sprintf("link references unknown node %q", l.Node2)}
		}
		s.addEdge(u, v, l.AssignedBandwidth)
	}

	return s, nil
}
