package metrics

import "sort"

// UnknownDevice names samples that carry no host information
const UnknownDevice = "Unknown Device"

// InterfaceMetric is the latest sample of one interface metric
type InterfaceMetric struct {
	Value  Value  `json:"value"`
	Units  string `json:"units"`
	ItemID string `json:"itemid"`
}

// InterfaceData maps metric names to samples for one interface
type InterfaceData map[string]InterfaceMetric

// HostRecord is the normalized snapshot of one device
type HostRecord struct {
	Name       string                   `json:"name"`
	IP         string                   `json:"ip"`
	Ping       Value                    `json:"ping"`
	Loss       Value                    `json:"loss"`
	Latency    Value                    `json:"latency"`
	Items      map[string]Value         `json:"items"`
	Interfaces map[string]InterfaceData `json:"interfaces"`
}

// NewHostRecord creates a record with the defaults used before any
// sample is classified
func NewHostRecord(name string) *HostRecord {
	return &HostRecord{
		Name:       name,
		Ping:       Number(1),
		Loss:       Number(0),
		Latency:    Number(0),
		Items:      make(map[string]Value),
		Interfaces: make(map[string]InterfaceData),
	}
}

// Interface returns the data of one interface
func (h *HostRecord) Interface(name string) (InterfaceData, bool) {
	data, ok := h.Interfaces[name]
	return data, ok
}

// InterfaceNames returns the interface names sorted
func (h *HostRecord) InterfaceNames() []string {
	names := make([]string, 0, len(h.Interfaces))
	for name := range h.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ItemNames returns the raw item labels sorted
func (h *HostRecord) ItemNames() []string {
	names := make([]string, 0, len(h.Items))
	for name := range h.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HostMap is the parsed metrics of one refresh keyed by device name
type HostMap map[string]*HostRecord

// Hosts returns the device names sorted
func (m HostMap) Hosts() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the interface data of a device
func (m HostMap) Lookup(host, iface string) (InterfaceData, bool) {
	rec, ok := m[host]
	if !ok {
		return nil, false
	}
	return rec.Interface(iface)
}
