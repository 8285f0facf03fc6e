package topology

import (
	"sort"

	"noctopo/internal/domain"
)

// Interface items that describe the port rather than measure it
var hiddenMetrics = map[string]bool{
	"Status operacional": true,
	"Tipo de interface":  true,
}

var defaultMetrics = map[string]domain.EdgeMetric{
	"Bits recebidos": {Name: "Bits recebidos", Icon: "⬇️", Enabled: true},
	"Bits enviados":  {Name: "Bits enviados", Icon: "⬆️", Enabled: true},
}

const genericMetricIcon = "📊"

// Interfaces lists the interfaces reported for a device
func (e *Engine) Interfaces(device string) []string {
	rec, ok := e.hosts[device]
	if !ok {
		return []string{}
	}
	return rec.InterfaceNames()
}

// Items lists the raw metric items reported for a device
func (e *Engine) Items(device string) []string {
	rec, ok := e.hosts[device]
	if !ok {
		return []string{}
	}
	return rec.ItemNames()
}

// SuggestEdgeMetrics builds the metric list for a link bound to
// device/iface. Entries already configured are kept as they are, traffic
// counters start enabled, everything else starts disabled. Metrics the
// interface no longer reports are dropped.
func (e *Engine) SuggestEdgeMetrics(device, iface string, existing []domain.EdgeMetric) []domain.EdgeMetric {
	out := make([]domain.EdgeMetric, 0)
	data, ok := e.hosts.Lookup(device, iface)
	if !ok {
		return out
	}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	current := make(map[string]domain.EdgeMetric, len(existing))
	for _, m := range existing {
		current[m.Name] = m
	}

	for _, name := range names {
		if hiddenMetrics[name] {
			continue
		}
		if m, ok := current[name]; ok {
			out = append(out, m)
			continue
		}
		if m, ok := defaultMetrics[name]; ok {
			out = append(out, m)
			continue
		}
		out = append(out, domain.EdgeMetric{Name: name, Icon: genericMetricIcon})
	}
	return out
}
