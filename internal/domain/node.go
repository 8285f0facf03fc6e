package domain

// NodeKind tags a node as a monitored device or a layout waypoint
type NodeKind string

const (
	NodeKindDevice NodeKind = "device"
	NodeKindAnchor NodeKind = "anchor"
)

// NodeSize is the configured size class of a device node
type NodeSize string

const (
	NodeSizeSmall  NodeSize = "small"
	NodeSizeMedium NodeSize = "medium"
	NodeSizeLarge  NodeSize = "large"
)

// DeviceAttrs holds the persisted attributes of a device node
type DeviceAttrs struct {
	IconType          string   `json:"iconType,omitempty" yaml:"icon_type,omitempty"`
	NodeSize          NodeSize `json:"nodeSize,omitempty" yaml:"node_size,omitempty" validate:"omitempty,oneof=small medium large"`
	Alias             string   `json:"alias,omitempty" yaml:"alias,omitempty"`
	CustomPingItem    string   `json:"customPingItem,omitempty" yaml:"custom_ping_item,omitempty"`
	CustomLossItem    string   `json:"customLossItem,omitempty" yaml:"custom_loss_item,omitempty"`
	CustomLatencyItem string   `json:"customLatencyItem,omitempty" yaml:"custom_latency_item,omitempty"`
}

// DevicePatch is a partial update of DeviceAttrs; nil fields are left alone
type DevicePatch struct {
	IconType          *string   `json:"iconType,omitempty"`
	NodeSize          *NodeSize `json:"nodeSize,omitempty" validate:"omitempty,oneof=small medium large"`
	Alias             *string   `json:"alias,omitempty"`
	CustomPingItem    *string   `json:"customPingItem,omitempty"`
	CustomLossItem    *string   `json:"customLossItem,omitempty"`
	CustomLatencyItem *string   `json:"customLatencyItem,omitempty"`
}

// Apply merges the patch into a copy of attrs
func (a DeviceAttrs) Apply(p DevicePatch) DeviceAttrs {
	if p.IconType != nil {
		a.IconType = *p.IconType
	}
	if p.NodeSize != nil {
		a.NodeSize = *p.NodeSize
	}
	if p.Alias != nil {
		a.Alias = *p.Alias
	}
	if p.CustomPingItem != nil {
		a.CustomPingItem = *p.CustomPingItem
	}
	if p.CustomLossItem != nil {
		a.CustomLossItem = *p.CustomLossItem
	}
	if p.CustomLatencyItem != nil {
		a.CustomLatencyItem = *p.CustomLatencyItem
	}
	return a
}

// NodeDerived is recomputed on every metrics refresh and never persisted
type NodeDerived struct {
	StatusColor string  `json:"statusColor,omitempty"`
	Label       string  `json:"label,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	IconScale   float64 `json:"iconScale,omitempty"`
	AnchorColor string  `json:"anchorColor,omitempty"`
}

// Node is a device or an anchor on the canvas
type Node struct {
	ID       string       `json:"id"`
	Kind     NodeKind     `json:"kind"`
	Position Position     `json:"position"`
	Classes  ClassSet     `json:"classes,omitempty"`
	Device   *DeviceAttrs `json:"device,omitempty"`
	Derived  NodeDerived  `json:"derived"`
}

// NewDevice creates a device node
func NewDevice(id string, attrs DeviceAttrs, pos Position) *Node {
	if attrs.NodeSize == "" {
		attrs.NodeSize = NodeSizeMedium
	}
	return &Node{
		ID:       id,
		Kind:     NodeKindDevice,
		Position: pos,
		Device:   &attrs,
	}
}

// NewAnchor creates an anchor waypoint
func NewAnchor(id string, pos Position) *Node {
	return &Node{
		ID:       id,
		Kind:     NodeKindAnchor,
		Position: pos,
		Classes:  ClassSet{ClassAnchor},
	}
}

// IsAnchor reports whether the node is a waypoint
func (n *Node) IsAnchor() bool {
	return n.Kind == NodeKindAnchor
}

// DisplayName returns the alias when set, otherwise the id
func (n *Node) DisplayName() string {
	if n.Device != nil && n.Device.Alias != "" {
		return n.Device.Alias
	}
	return n.ID
}

// Clone returns a deep copy
func (n *Node) Clone() *Node {
	c := *n
	c.Classes = n.Classes.Clone()
	if n.Device != nil {
		d := *n.Device
		c.Device = &d
	}
	return &c
}
