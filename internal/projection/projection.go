// Package projection writes live metrics onto the derived fields of a
// topology: device status colours and labels, node sizes, link colours and
// traffic labels.
//
// Refresh only ever writes derived fields and resets all of them on every
// pass, so running it twice with the same input gives the same result.
// Missing metrics are a normal condition that renders as "no data".
package projection

import (
	"fmt"
	"strings"

	"noctopo/internal/domain"
	"noctopo/internal/metrics"
)

// Colours used for status and links
const (
	ColorDown     = "#ef4444"
	ColorDegraded = "#f97316"
	ColorUp       = "#10b981"
	ColorNoData   = "#4b5563"

	DefaultEdgeColor = "#4b5563"
	DefaultEdgeWidth = 2.5
)

// Size is the rendered dimension of a device node
type Size struct {
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	IconScale float64 `json:"iconScale" yaml:"icon_scale"`
}

// SizeTable maps size classes to dimensions
type SizeTable map[domain.NodeSize]Size

// DefaultSizes returns the built-in size table
func DefaultSizes() SizeTable {
	return SizeTable{
		domain.NodeSizeSmall:  {Width: 35, Height: 35, IconScale: 20},
		domain.NodeSizeMedium: {Width: 50, Height: 50, IconScale: 28},
		domain.NodeSizeLarge:  {Width: 70, Height: 70, IconScale: 40},
	}
}

// Lookup returns the size of a class, using medium for unknown classes
func (t SizeTable) Lookup(size domain.NodeSize) Size {
	if s, ok := t[size]; ok {
		return s
	}
	if s, ok := t[domain.NodeSizeMedium]; ok {
		return s
	}
	return DefaultSizes()[domain.NodeSizeMedium]
}

// Translator supplies localized label words
type Translator interface {
	T(lang, key string) string
}

// Projector computes derived fields
type Projector struct {
	sizes SizeTable
	tr    Translator
}

// New creates a projector. A nil size table uses DefaultSizes.
func New(sizes SizeTable, tr Translator) *Projector {
	if sizes == nil {
		sizes = DefaultSizes()
	}
	return &Projector{sizes: sizes, tr: tr}
}

// Refresh recomputes every derived field of g from hosts. lang selects the
// label language.
func (p *Projector) Refresh(g *domain.Graph, hosts metrics.HostMap, lang string) {
	for _, n := range g.Nodes() {
		n.Derived = domain.NodeDerived{}
		if n.IsAnchor() {
			continue
		}
		p.projectDevice(n, hosts, lang)
	}
	for _, e := range g.Edges() {
		p.projectEdge(g, e, hosts)
	}
}

func (p *Projector) projectDevice(n *domain.Node, hosts metrics.HostMap, lang string) {
	attrs := domain.DeviceAttrs{}
	if n.Device != nil {
		attrs = *n.Device
	}

	size := p.sizes.Lookup(attrs.NodeSize)
	n.Derived.Width = size.Width
	n.Derived.Height = size.Height
	n.Derived.IconScale = size.IconScale

	rec, ok := hosts[n.ID]
	if !ok {
		n.Derived.StatusColor = ColorNoData
		n.Derived.Label = fmt.Sprintf("%s\n\n%s", n.DisplayName(), p.t(lang, "noData"))
		return
	}

	loss := rec.Loss.Float()
	ping := rec.Ping.Float()
	latency := rec.Latency

	if v, ok := customItem(rec, attrs.CustomPingItem); ok {
		ping = v.Float()
	}
	if v, ok := customItem(rec, attrs.CustomLossItem); ok {
		loss = v.Float()
	}
	if v, ok := customItem(rec, attrs.CustomLatencyItem); ok {
		latency = metrics.Text(v.String() + " ms")
	}

	n.Derived.StatusColor = StatusColor(loss, ping)

	name := attrs.Alias
	if name == "" {
		name = rec.Name
	}
	if name == "" {
		name = n.ID
	}
	n.Derived.Label = fmt.Sprintf("%s\n\n%s: %s\n%s: %s%%",
		name,
		p.t(lang, "latency"), latency.String(),
		p.t(lang, "loss"), metrics.Number(loss).String())
}

func customItem(rec *metrics.HostRecord, item string) (metrics.Value, bool) {
	if item == "" {
		return metrics.Value{}, false
	}
	v, ok := rec.Items[item]
	return v, ok
}

// StatusColor classifies a device from its loss percentage and ping
// result
func StatusColor(loss, ping float64) string {
	switch {
	case loss >= 100 || ping == 0:
		return ColorDown
	case loss > 1:
		return ColorDegraded
	default:
		return ColorUp
	}
}

func (p *Projector) projectEdge(g *domain.Graph, e *domain.Edge, hosts metrics.HostMap) {
	a := e.Attrs

	color := a.Color
	if color == "" {
		color = DefaultEdgeColor
	}
	style := a.Style
	if style == "" {
		style = domain.EdgeStyleSolid
	}
	width := a.Width
	if width <= 0 {
		width = DefaultEdgeWidth
	}

	targetIsAnchor := isAnchor(g, e.Target)
	label := ""

	if data, ok := monitoredInterface(a, hosts); ok {
		var (
			text       strings.Builder
			maxBits    float64
			sawBits    bool
			rawTraffic = a.FormatTraffic != nil && !*a.FormatTraffic
		)
		for _, m := range a.Metrics {
			if !m.Enabled {
				continue
			}
			sample, ok := data[m.Name]
			if !ok {
				continue
			}
			isBits := strings.Contains(strings.ToLower(m.Name), "bits")
			if isBits {
				sawBits = true
				maxBits = max(maxBits, sample.Value.Float())
			}
			if targetIsAnchor {
				continue
			}
			fmt.Fprintf(&text, "%s %s\n", m.Icon, formatSample(sample, isBits, rawTraffic))
		}
		if sawBits {
			color = ColorDown
			if maxBits > 0 {
				color = ColorUp
			}
		}
		if !targetIsAnchor {
			label = strings.TrimSpace(text.String())
		}
	}

	e.Derived = domain.EdgeDerived{
		Color:        color,
		Style:        style,
		Width:        width,
		TrafficLabel: label,
	}

	for _, id := range []string{e.Source, e.Target} {
		if n, err := g.Node(id); err == nil && n.IsAnchor() {
			n.Derived.AnchorColor = color
		}
	}
}

func monitoredInterface(a domain.EdgeAttrs, hosts metrics.HostMap) (metrics.InterfaceData, bool) {
	if !a.Monitored || a.MainDevice == "" || a.Interface == "" {
		return nil, false
	}
	return hosts.Lookup(a.MainDevice, a.Interface)
}

func formatSample(m metrics.InterfaceMetric, isBits, raw bool) string {
	var display string
	switch {
	case m.Units == "bps" || isBits:
		if raw {
			display = m.Value.String() + " bps"
		} else {
			display = FormatTraffic(m.Value.Float())
		}
	case m.Units != "":
		display = m.Value.String() + " " + m.Units
	default:
		display = m.Value.String()
	}
	return strings.Replace(display, "!ms", "ms", 1)
}

func isAnchor(g *domain.Graph, id string) bool {
	n, err := g.Node(id)
	return err == nil && n.IsAnchor()
}

func (p *Projector) t(lang, key string) string {
	if p.tr == nil {
		return key
	}
	return p.tr.T(lang, key)
}
