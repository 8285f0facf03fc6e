package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ElementGroup separates nodes from edges in the serialized format
type ElementGroup string

const (
	GroupNodes ElementGroup = "nodes"
	GroupEdges ElementGroup = "edges"
)

var validate = validator.New()

// ElementDefinition is the persisted form of one graph element. The same
// shape is used in the panel configuration, history snapshots and backups.
type ElementDefinition struct {
	Group    ElementGroup `json:"group" validate:"required,oneof=nodes edges"`
	Data     ElementData  `json:"data"`
	Position *Position    `json:"position,omitempty"`
	Classes  string       `json:"classes,omitempty"`
}

// ElementData carries the persisted attributes of a node or an edge
type ElementData struct {
	ID string `json:"id" validate:"required"`

	IconType          string   `json:"iconType,omitempty"`
	NodeSize          NodeSize `json:"nodeSize,omitempty" validate:"omitempty,oneof=small medium large"`
	Alias             string   `json:"alias,omitempty"`
	CustomPingItem    string   `json:"customPingItem,omitempty"`
	CustomLossItem    string   `json:"customLossItem,omitempty"`
	CustomLatencyItem string   `json:"customLatencyItem,omitempty"`

	Source        string       `json:"source,omitempty"`
	Target        string       `json:"target,omitempty"`
	LinkID        string       `json:"linkId,omitempty"`
	Monitored     bool         `json:"eMonitored,omitempty"`
	MainDevice    string       `json:"eMainDevice,omitempty"`
	Interface     string       `json:"eInterface,omitempty"`
	Metrics       []EdgeMetric `json:"eMetrics,omitempty" validate:"dive"`
	Width         FlexFloat    `json:"eWidth,omitempty" validate:"gte=0"`
	Style         EdgeStyle    `json:"eStyle,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
	Color         string       `json:"eColor,omitempty" validate:"omitempty,iscolor"`
	FormatTraffic *bool        `json:"eFormatTraffic,omitempty"`
}

// FlexFloat decodes from a JSON number or a numeric string. Anything else
// decodes to zero.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*f = FlexFloat(x)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			n = 0
		}
		*f = FlexFloat(n)
	default:
		*f = 0
	}
	return nil
}

// Validate checks the definition before it is loaded into a graph
func (d *ElementDefinition) Validate() error {
	if d.Group == "" {
		d.Group = GroupNodes
		if d.Data.Source != "" || d.Data.Target != "" {
			d.Group = GroupEdges
		}
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidElement, d.Data.ID, err)
	}
	if d.Group == GroupEdges && (d.Data.Source == "" || d.Data.Target == "") {
		return fmt.Errorf("%w: edge %s needs a source and a target", ErrInvalidElement, d.Data.ID)
	}
	return nil
}

// NodeFromDefinition builds a node. Anchors are recognized by their class.
func NodeFromDefinition(d ElementDefinition) *Node {
	var pos Position
	if d.Position != nil {
		pos = *d.Position
	}
	classes := ParseClasses(d.Classes).Remove(ClassSelected)
	if classes.Has(ClassAnchor) {
		n := NewAnchor(d.Data.ID, pos)
		n.Classes = classes
		return n
	}
	n := NewDevice(d.Data.ID, DeviceAttrs{
		IconType:          d.Data.IconType,
		NodeSize:          d.Data.NodeSize,
		Alias:             d.Data.Alias,
		CustomPingItem:    d.Data.CustomPingItem,
		CustomLossItem:    d.Data.CustomLossItem,
		CustomLatencyItem: d.Data.CustomLatencyItem,
	}, pos)
	n.Classes = classes
	return n
}

// EdgeFromDefinition builds an edge segment
func EdgeFromDefinition(d ElementDefinition) *Edge {
	e := NewEdge(d.Data.ID, d.Data.Source, d.Data.Target, d.Data.LinkID, EdgeAttrs{
		Monitored:     d.Data.Monitored,
		MainDevice:    d.Data.MainDevice,
		Interface:     d.Data.Interface,
		Metrics:       d.Data.Metrics,
		Width:         float64(d.Data.Width),
		Style:         d.Data.Style,
		Color:         d.Data.Color,
		FormatTraffic: d.Data.FormatTraffic,
	})
	e.Classes = ParseClasses(d.Classes).Remove(ClassSelected)
	return e
}

// Definition returns the persisted form of the node
func (n *Node) Definition() ElementDefinition {
	pos := n.Position
	d := ElementDefinition{
		Group:    GroupNodes,
		Data:     ElementData{ID: n.ID},
		Position: &pos,
		Classes:  n.Classes.Remove(ClassSelected).String(),
	}
	if n.IsAnchor() {
		d.Classes = n.Classes.Remove(ClassSelected).Add(ClassAnchor).String()
		return d
	}
	if n.Device != nil {
		d.Data.IconType = n.Device.IconType
		d.Data.NodeSize = n.Device.NodeSize
		d.Data.Alias = n.Device.Alias
		d.Data.CustomPingItem = n.Device.CustomPingItem
		d.Data.CustomLossItem = n.Device.CustomLossItem
		d.Data.CustomLatencyItem = n.Device.CustomLatencyItem
	}
	return d
}

// Definition returns the persisted form of the edge
func (e *Edge) Definition() ElementDefinition {
	a := e.Attrs.Clone()
	return ElementDefinition{
		Group: GroupEdges,
		Data: ElementData{
			ID:            e.ID,
			Source:        e.Source,
			Target:        e.Target,
			LinkID:        e.LinkID,
			Monitored:     a.Monitored,
			MainDevice:    a.MainDevice,
			Interface:     a.Interface,
			Metrics:       a.Metrics,
			Width:         FlexFloat(a.Width),
			Style:         a.Style,
			Color:         a.Color,
			FormatTraffic: a.FormatTraffic,
		},
		Classes: e.Classes.Remove(ClassSelected).String(),
	}
}
