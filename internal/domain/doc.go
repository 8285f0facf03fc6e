// Package domain defines the core types of the noctopo topology editor.
//
// The package holds the graph that an operator draws on the canvas and the
// persisted element format it is stored in. It has no knowledge of metrics,
// history or storage.
//
// # Core Types
//
// Node is either a device, keyed by the monitored host name, or an anchor,
// a waypoint used only to bend a link. The kind tag decides which; ids are
// never inspected for structure.
//
// Edge is one drawn segment. A link split by anchors is several segments
// sharing one LinkID.
//
// Graph stores nodes and edges in insertion order so serialization is
// deterministic. It enforces id uniqueness and nothing else.
//
// # Persisted and Derived Fields
//
// Every element separates persisted attributes (DeviceAttrs, EdgeAttrs) from
// derived fields (NodeDerived, EdgeDerived). Derived fields are rewritten on
// every metrics refresh and are dropped by Definition, so snapshots and
// saved configurations never contain them.
//
// # Wire Format
//
// ElementDefinition is the {group, data, position, classes} shape used by
// the panel configuration, undo history and backup files. Anchors carry the
// "anchor" class. Definitions are validated before they are loaded, and a
// failed load leaves the graph untouched.
package domain
