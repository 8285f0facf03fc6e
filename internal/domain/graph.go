package domain

import "fmt"

// Graph holds the nodes and edges of a topology in insertion order.
// It checks id uniqueness only; structural rules live in the topology engine.
type Graph struct {
	nodes     map[string]*Node
	edges     map[string]*Edge
	nodeOrder []string
	edgeOrder []string
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
	}
}

// AddNode inserts a node
func (g *Graph) AddNode(n *Node) error {
	if g.has(n.ID) {
		return fmt.Errorf("add node %s: %w", n.ID, ErrDuplicateID)
	}
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	return nil
}

// AddEdge inserts an edge
func (g *Graph) AddEdge(e *Edge) error {
	if g.has(e.ID) {
		return fmt.Errorf("add edge %s: %w", e.ID, ErrDuplicateID)
	}
	g.edges[e.ID] = e
	g.edgeOrder = append(g.edgeOrder, e.ID)
	return nil
}

func (g *Graph) has(id string) bool {
	_, n := g.nodes[id]
	_, e := g.edges[id]
	return n || e
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	return n, nil
}

// Edge returns the edge with the given id
func (g *Graph) Edge(id string) (*Edge, error) {
	e, ok := g.edges[id]
	if !ok {
		return nil, fmt.Errorf("edge %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// HasNode reports whether a node with the id exists
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether an edge with the id exists
func (g *Graph) HasEdge(id string) bool {
	_, ok := g.edges[id]
	return ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		out = append(out, g.edges[id])
	}
	return out
}

// ConnectedEdges returns the edges touching a node in insertion order
func (g *Graph) ConnectedEdges(nodeID string) []*Edge {
	var out []*Edge
	for _, id := range g.edgeOrder {
		if e := g.edges[id]; e.Touches(nodeID) {
			out = append(out, e)
		}
	}
	return out
}

// EdgesByLink returns the segments sharing a link id
func (g *Graph) EdgesByLink(linkID string) []*Edge {
	var out []*Edge
	for _, id := range g.edgeOrder {
		if e := g.edges[id]; e.LinkID == linkID {
			out = append(out, e)
		}
	}
	return out
}

// RemoveNode deletes a node. Connected edges are left in place.
func (g *Graph) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("remove node %s: %w", id, ErrNotFound)
	}
	delete(g.nodes, id)
	g.nodeOrder = without(g.nodeOrder, id)
	return nil
}

// RemoveEdge deletes an edge
func (g *Graph) RemoveEdge(id string) error {
	if _, ok := g.edges[id]; !ok {
		return fmt.Errorf("remove edge %s: %w", id, ErrNotFound)
	}
	delete(g.edges, id)
	g.edgeOrder = without(g.edgeOrder, id)
	return nil
}

func without(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// PatchDevice merges a partial update into a device node
func (g *Graph) PatchDevice(id string, p DevicePatch) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	if n.Device == nil {
		return fmt.Errorf("patch %s: %w", id, ErrNotDevice)
	}
	attrs := n.Device.Apply(p)
	n.Device = &attrs
	return nil
}

// PatchEdge merges a partial update into an edge
func (g *Graph) PatchEdge(id string, p EdgePatch) error {
	e, err := g.Edge(id)
	if err != nil {
		return err
	}
	e.Attrs = e.Attrs.Apply(p)
	return nil
}

// SetPosition moves a node
func (g *Graph) SetPosition(id string, pos Position) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	n.Position = pos
	return nil
}

// Position returns the position of a node
func (g *Graph) Position(id string) (Position, error) {
	n, err := g.Node(id)
	if err != nil {
		return Position{}, err
	}
	return n.Position, nil
}

// AddClass adds a style class to a node or an edge
func (g *Graph) AddClass(id, class string) error {
	if n, ok := g.nodes[id]; ok {
		n.Classes = n.Classes.Add(class)
		return nil
	}
	if e, ok := g.edges[id]; ok {
		e.Classes = e.Classes.Add(class)
		return nil
	}
	return fmt.Errorf("add class to %s: %w", id, ErrNotFound)
}

// RemoveClass removes a style class from every element
func (g *Graph) RemoveClass(class string) {
	for _, n := range g.nodes {
		n.Classes = n.Classes.Remove(class)
	}
	for _, e := range g.edges {
		e.Classes = e.Classes.Remove(class)
	}
}

// HasClass reports whether an element carries a style class
func (g *Graph) HasClass(id, class string) bool {
	if n, ok := g.nodes[id]; ok {
		return n.Classes.Has(class)
	}
	if e, ok := g.edges[id]; ok {
		return e.Classes.Has(class)
	}
	return false
}

// Clear removes every element
func (g *Graph) Clear() {
	g.nodes = make(map[string]*Node)
	g.edges = make(map[string]*Edge)
	g.nodeOrder = nil
	g.edgeOrder = nil
}

// Len returns the node and edge counts
func (g *Graph) Len() (nodes, edges int) {
	return len(g.nodes), len(g.edges)
}

// Elements returns the persisted definitions, nodes first
func (g *Graph) Elements() []ElementDefinition {
	defs := make([]ElementDefinition, 0, len(g.nodeOrder)+len(g.edgeOrder))
	for _, n := range g.Nodes() {
		defs = append(defs, n.Definition())
	}
	for _, e := range g.Edges() {
		defs = append(defs, e.Definition())
	}
	return defs
}

// Load replaces the graph contents with defs. The graph is unchanged when
// any definition is invalid.
func (g *Graph) Load(defs []ElementDefinition) error {
	next, err := BuildGraph(defs)
	if err != nil {
		return err
	}
	*g = *next
	return nil
}

// BuildGraph validates defs and builds a new graph from them
func BuildGraph(defs []ElementDefinition) (*Graph, error) {
	g := NewGraph()
	var edges []ElementDefinition
	for i := range defs {
		d := defs[i]
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.Group == GroupEdges {
			edges = append(edges, d)
			continue
		}
		if err := g.AddNode(NodeFromDefinition(d)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidElement, err)
		}
	}
	for _, d := range edges {
		if !g.HasNode(d.Data.Source) || !g.HasNode(d.Data.Target) {
			return nil, fmt.Errorf("%w: edge %s references a missing node", ErrInvalidElement, d.Data.ID)
		}
		if err := g.AddEdge(EdgeFromDefinition(d)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidElement, err)
		}
	}
	return g, nil
}
