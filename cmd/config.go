// cmd/config.go
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vne-sim/vne-engine/engine"
	"github.com/vne-sim/vne-engine/metrics"
	"github.com/vne-sim/vne-engine/substrate"
	"github.com/vne-sim/vne-engine/vnr"
)

// LoadSubstrateFile reads an SN descriptor from a YAML or JSON file, chosen
// by extension, with strict field checking for YAML so a misspelled key
// fails loudly instead of silently defaulting.
func LoadSubstrateFile(path string) (*substrate.SubstrateState, error) {
	var d substrate.Descriptor
	if err := decodeFile(path, &d); err != nil {
		return nil, err
	}
	return substrate.LoadTopology(d)
}

// vnrFile is the wire shape of a VNR stream file: a top-level list under
// "vnrs", one entry per VNR to embed in order.
type vnrFile struct {
	Vnrs []vnr.Descriptor `yaml:"vnrs" json:"vnrs"`
}

// LoadVnrFile reads an ordered stream of VNR descriptors from a YAML or
// JSON file, chosen by extension.
func LoadVnrFile(path string) ([]vnr.Descriptor, error) {
	var f vnrFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return f.Vnrs, nil
}

// decodeFile dispatches on file extension: ".json" decodes with
// encoding/json, everything else decodes with yaml.v3 in strict mode
// (KnownFields(true)) so a misspelled key fails loudly instead of
// defaulting silently.
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s as JSON: %w", path, err)
		}
		return nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s as YAML: %w", path, err)
	}
	return nil
}

// reportDocument is the YAML shape written by WriteReport: the aggregate
// report followed by the per-VNR outcomes, for offline inspection.
type reportDocument struct {
	Report  metricsReport    `yaml:"report"`
	Results []resultDocument `yaml:"results"`
}

// metricsReport mirrors metrics.Report field-for-field; kept as a distinct
// type so the YAML tags live here rather than on the metrics package, which
// has no reason to know about file formats.
type metricsReport struct {
	Algorithm        string  `yaml:"algorithm"`
	VnrCount         int     `yaml:"vnr_count"`
	AcceptedCount    int     `yaml:"accepted_count"`
	AcceptanceRatio  float64 `yaml:"acceptance_ratio"`
	ServersUsed      int     `yaml:"servers_used"`
	IdleServers      int     `yaml:"idle_servers"`
	LinksUsed        int     `yaml:"links_used"`
	IdleLinks        int     `yaml:"idle_links"`
	TotalEmbeddedVms int     `yaml:"total_embedded_vms"`
	TotalEmbeddedVls int     `yaml:"total_embedded_vls"`
	NodeStress       float64 `yaml:"node_stress"`
	AvgNodeStress    float64 `yaml:"avg_node_stress"`
	LinkStress       float64 `yaml:"link_stress"`
	AvgLinkStress    float64 `yaml:"avg_link_stress"`
	AvgPathLength    float64 `yaml:"avg_path_length"`
	AvgRevenueToCost float64 `yaml:"avg_revenue_to_cost"`
	InitialTotalCpu  int     `yaml:"initial_total_cpu"`
	FinalTotalCpu    int     `yaml:"final_total_cpu"`
	InitialTotalBw   int     `yaml:"initial_total_bw"`
	FinalTotalBw     int     `yaml:"final_total_bw"`
	TotalEnergy      float64 `yaml:"total_energy"`
	EmbeddedEnergy   float64 `yaml:"embedded_energy"`
}

type resultDocument struct {
	VnrID         int64         `yaml:"vnr_id"`
	Success       bool          `yaml:"success"`
	VmToHost      map[int]int32 `yaml:"vm_to_host,omitempty"`
	Revenue       float64       `yaml:"revenue"`
	Cost          float64       `yaml:"cost"`
	FailureReason string        `yaml:"failure_reason,omitempty"`
}

// WriteReport marshals the aggregate report and per-VNR results to path as
// YAML, creating or truncating the file.
func WriteReport(path string, report metrics.Report, results []engine.EmbeddingResult) error {
	doc := reportDocument{
		Report: metricsReport{
			Algorithm:        report.Algorithm,
			VnrCount:         report.VnrCount,
			AcceptedCount:    report.AcceptedCount,
			AcceptanceRatio:  report.AcceptanceRatio,
			ServersUsed:      report.ServersUsed,
			IdleServers:      report.IdleServers,
			LinksUsed:        report.LinksUsed,
			IdleLinks:        report.IdleLinks,
			TotalEmbeddedVms: report.TotalEmbeddedVms,
			TotalEmbeddedVls: report.TotalEmbeddedVls,
			NodeStress:       report.NodeStress,
			AvgNodeStress:    report.AvgNodeStress,
			LinkStress:       report.LinkStress,
			AvgLinkStress:    report.AvgLinkStress,
			AvgPathLength:    report.AvgPathLength,
			AvgRevenueToCost: report.AvgRevenueToCost,
			InitialTotalCpu:  report.InitialTotalCpu,
			FinalTotalCpu:    report.FinalTotalCpu,
			InitialTotalBw:   report.InitialTotalBw,
			FinalTotalBw:     report.FinalTotalBw,
			TotalEnergy:      report.TotalEnergy,
			EmbeddedEnergy:   report.EmbeddedEnergy,
		},
		Results: make([]resultDocument, len(results)),
	}

	for i, r := range results {
		vmToHost := make(map[int]int32, len(r.VmToHost))
		for vm, host := range r.VmToHost {
			vmToHost[vm] = int32(host)
		}
		doc.Results[i] = resultDocument{
			VnrID:         r.VnrID,
			Success:       r.Success,
			VmToHost:      vmToHost,
			Revenue:       r.Revenue,
			Cost:          r.Cost,
			FailureReason: r.FailureReason,
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
