// Package vnr decodes and validates Virtual Network Requests: the small
// graphs of CPU-hungry VMs and bandwidth-hungry virtual links the
// embedding engine places onto a substrate, one at a time, in arrival
// order.
package vnr
