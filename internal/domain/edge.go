package domain

// EdgeStyle is the line style of a link
type EdgeStyle string

const (
	EdgeStyleSolid  EdgeStyle = "solid"
	EdgeStyleDashed EdgeStyle = "dashed"
	EdgeStyleDotted EdgeStyle = "dotted"
)

// EdgeMetric is one interface metric shown on a monitored link
type EdgeMetric struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Icon    string `json:"icon" yaml:"icon"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// EdgeAttrs holds the persisted attributes of a link segment
type EdgeAttrs struct {
	Monitored     bool         `json:"eMonitored" yaml:"monitored"`
	MainDevice    string       `json:"eMainDevice,omitempty" yaml:"main_device,omitempty"`
	Interface     string       `json:"eInterface,omitempty" yaml:"interface,omitempty"`
	Metrics       []EdgeMetric `json:"eMetrics,omitempty" yaml:"metrics,omitempty" validate:"dive"`
	Width         float64      `json:"eWidth,omitempty" yaml:"width,omitempty" validate:"gte=0"`
	Style         EdgeStyle    `json:"eStyle,omitempty" yaml:"style,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
	Color         string       `json:"eColor,omitempty" yaml:"color,omitempty" validate:"omitempty,iscolor"`
	FormatTraffic *bool        `json:"eFormatTraffic,omitempty" yaml:"format_traffic,omitempty"`
}

// Clone returns a deep copy
func (a EdgeAttrs) Clone() EdgeAttrs {
	if a.Metrics != nil {
		a.Metrics = append([]EdgeMetric(nil), a.Metrics...)
	}
	if a.FormatTraffic != nil {
		v := *a.FormatTraffic
		a.FormatTraffic = &v
	}
	return a
}

// EdgePatch is a partial update of EdgeAttrs; nil fields are left alone
type EdgePatch struct {
	Monitored     *bool         `json:"eMonitored,omitempty"`
	MainDevice    *string       `json:"eMainDevice,omitempty"`
	Interface     *string       `json:"eInterface,omitempty"`
	Metrics       *[]EdgeMetric `json:"eMetrics,omitempty"`
	Width         *float64      `json:"eWidth,omitempty" validate:"omitempty,gte=0"`
	Style         *EdgeStyle    `json:"eStyle,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
	Color         *string       `json:"eColor,omitempty" validate:"omitempty,iscolor"`
	FormatTraffic *bool         `json:"eFormatTraffic,omitempty"`
}

// Apply merges the patch into a copy of attrs
func (a EdgeAttrs) Apply(p EdgePatch) EdgeAttrs {
	a = a.Clone()
	if p.Monitored != nil {
		a.Monitored = *p.Monitored
	}
	if p.MainDevice != nil {
		a.MainDevice = *p.MainDevice
	}
	if p.Interface != nil {
		a.Interface = *p.Interface
	}
	if p.Metrics != nil {
		a.Metrics = append([]EdgeMetric(nil), (*p.Metrics)...)
	}
	if p.Width != nil {
		a.Width = *p.Width
	}
	if p.Style != nil {
		a.Style = *p.Style
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.FormatTraffic != nil {
		v := *p.FormatTraffic
		a.FormatTraffic = &v
	}
	return a
}

// EdgeDerived is recomputed on every metrics refresh and never persisted
type EdgeDerived struct {
	Color        string    `json:"color,omitempty"`
	Style        EdgeStyle `json:"style,omitempty"`
	Width        float64   `json:"width,omitempty"`
	TrafficLabel string    `json:"trafficLabel,omitempty"`
}

// Edge is one drawn segment of a link
type Edge struct {
	ID      string      `json:"id"`
	Source  string      `json:"source"`
	Target  string      `json:"target"`
	LinkID  string      `json:"linkId,omitempty"`
	Attrs   EdgeAttrs   `json:"attrs"`
	Classes ClassSet    `json:"classes,omitempty"`
	Derived EdgeDerived `json:"derived"`
}

// NewEdge creates a segment between two nodes
func NewEdge(id, source, target, linkID string, attrs EdgeAttrs) *Edge {
	return &Edge{
		ID:     id,
		Source: source,
		Target: target,
		LinkID: linkID,
		Attrs:  attrs.Clone(),
	}
}

// Touches reports whether the edge has nodeID as an endpoint
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Other returns the endpoint opposite nodeID
func (e *Edge) Other(nodeID string) string {
	if e.Source == nodeID {
		return e.Target
	}
	return e.Source
}

// Clone returns a deep copy
func (e *Edge) Clone() *Edge {
	c := *e
	c.Attrs = e.Attrs.Clone()
	c.Classes = e.Classes.Clone()
	return &c
}
