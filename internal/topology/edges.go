package topology

import (
	"fmt"

	"noctopo/internal/domain"
)

// Terminals returns the devices reachable from start by walking through
// anchors only. start itself is not included.
func (e *Engine) Terminals(start string) []string {
	visited := map[string]bool{start: true}
	stack := []string{start}
	var out []string

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ed := range e.graph.ConnectedEdges(cur) {
			other := ed.Other(cur)
			if visited[other] {
				continue
			}
			visited[other] = true
			n, err := e.graph.Node(other)
			if err != nil {
				continue
			}
			if n.IsAnchor() {
				stack = append(stack, other)
				continue
			}
			out = append(out, other)
		}
	}
	return out
}

// connected reports whether a logical link already joins a and b
func (e *Engine) connected(a, b string) bool {
	for _, t := range e.Terminals(a) {
		if t == b {
			return true
		}
	}
	return false
}

// AddEdge links two devices with a new single-segment link
func (e *Engine) AddEdge(source, target string, attrs domain.EdgeAttrs) (*domain.Edge, error) {
	if err := e.checkLink(source, target); err != nil {
		return nil, fmt.Errorf("add edge: %w", err)
	}
	if err := validate.Struct(attrs); err != nil {
		return nil, fmt.Errorf("add edge: %w: %v", domain.ErrInvalidElement, err)
	}

	ed := domain.NewEdge(e.freshID("edge"), source, target, e.freshID("link"), attrs.Clone())
	if err := e.graph.AddEdge(ed); err != nil {
		return nil, err
	}
	if err := e.commit(); err != nil {
		return nil, err
	}
	return ed, nil
}

func (e *Engine) checkLink(source, target string) error {
	if source == target {
		return fmt.Errorf("%s: %w", source, domain.ErrSelfLink)
	}
	for _, id := range []string{source, target} {
		if _, err := e.device(id); err != nil {
			return err
		}
	}
	if e.connected(source, target) {
		return fmt.Errorf("%s and %s: %w", source, target, domain.ErrDuplicateConnection)
	}
	return nil
}

// EditEdge patches every segment of the link the edge belongs to
func (e *Engine) EditEdge(id string, patch domain.EdgePatch) error {
	if err := validate.Struct(patch); err != nil {
		return fmt.Errorf("edit edge: %w: %v", domain.ErrInvalidElement, err)
	}
	ed, err := e.graph.Edge(id)
	if err != nil {
		return fmt.Errorf("edit edge: %w", err)
	}

	segments := []*domain.Edge{ed}
	if ed.LinkID != "" {
		segments = e.graph.EdgesByLink(ed.LinkID)
	}
	for _, s := range segments {
		if err := e.graph.PatchEdge(s.ID, patch); err != nil {
			return err
		}
	}
	return e.commit()
}

// RemoveEdge removes one segment. Anchors left with fewer than two
// connections are removed too, walking outward until a device or a
// healthy anchor is reached.
func (e *Engine) RemoveEdge(id string) error {
	ed, err := e.graph.Edge(id)
	if err != nil {
		return fmt.Errorf("remove edge: %w", err)
	}
	e.mustRemoveEdge(id)
	e.pruneStubs(ed.Source, ed.Target)
	return e.commit()
}

func (e *Engine) pruneStubs(ids ...string) {
	queue := append([]string(nil), ids...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n, err := e.graph.Node(id)
		if err != nil || !n.IsAnchor() {
			continue
		}
		edges := e.graph.ConnectedEdges(id)
		if len(edges) >= 2 {
			continue
		}
		for _, ed := range edges {
			e.mustRemoveEdge(ed.ID)
			queue = append(queue, ed.Other(id))
		}
		e.mustRemoveNode(id)
	}
}

// InsertAnchor splits an edge in two around a new anchor at pos. Both
// segments keep the attributes and the link id of the original.
func (e *Engine) InsertAnchor(edgeID string, pos domain.Position) (*domain.Node, error) {
	ed, err := e.graph.Edge(edgeID)
	if err != nil {
		return nil, fmt.Errorf("insert anchor: %w", err)
	}
	linkID := ed.LinkID
	if linkID == "" {
		linkID = ed.ID
	}

	anchor := domain.NewAnchor(e.freshID("anchor"), pos)
	e.mustRemoveEdge(ed.ID)
	if err := e.graph.AddNode(anchor); err != nil {
		return nil, err
	}
	first := domain.NewEdge(e.freshID("edge"), ed.Source, anchor.ID, linkID, ed.Attrs.Clone())
	if err := e.graph.AddEdge(first); err != nil {
		return nil, err
	}
	second := domain.NewEdge(e.freshID("edge"), anchor.ID, ed.Target, linkID, ed.Attrs.Clone())
	if err := e.graph.AddEdge(second); err != nil {
		return nil, err
	}

	if err := e.commit(); err != nil {
		return nil, err
	}
	return anchor, nil
}

// RemoveAnchor deletes an anchor with exactly two connections and joins
// its neighbours with a single segment carrying the first connection's
// attributes
func (e *Engine) RemoveAnchor(id string) (*domain.Edge, error) {
	n, err := e.graph.Node(id)
	if err != nil {
		return nil, fmt.Errorf("remove anchor: %w", err)
	}
	if !n.IsAnchor() {
		return nil, fmt.Errorf("remove anchor %s: %w", id, domain.ErrNotAnchor)
	}
	edges := e.graph.ConnectedEdges(id)
	if len(edges) != 2 {
		return nil, fmt.Errorf("remove anchor %s has %d connections: %w", id, len(edges), domain.ErrAnchorDegree)
	}

	e1, e2 := edges[0], edges[1]
	source, target := e2.Other(id), e1.Other(id)
	if e1.Target == id {
		source, target = e1.Other(id), e2.Other(id)
	}
	linkID := e1.LinkID
	if linkID == "" {
		linkID = e2.LinkID
	}

	e.mustRemoveEdge(e1.ID)
	e.mustRemoveEdge(e2.ID)
	e.mustRemoveNode(id)

	var merged *domain.Edge
	if source != target {
		merged = domain.NewEdge(e.freshID("edge"), source, target, linkID, e1.Attrs.Clone())
		if err := e.graph.AddEdge(merged); err != nil {
			return nil, err
		}
	}
	if err := e.commit(); err != nil {
		return nil, err
	}
	return merged, nil
}

// RemoveElement removes whatever id names: a segment, an anchor or a
// device
func (e *Engine) RemoveElement(id string) error {
	if e.graph.HasEdge(id) {
		return e.RemoveEdge(id)
	}
	n, err := e.graph.Node(id)
	if err != nil {
		return fmt.Errorf("remove element: %w", err)
	}
	if n.IsAnchor() {
		_, err := e.RemoveAnchor(id)
		return err
	}
	return e.DeleteDevice(id)
}

// ResolveEndpoints follows anchor chains outward from both ends of an
// edge and returns the devices the link logically joins
func (e *Engine) ResolveEndpoints(edgeID string) (source, target string, err error) {
	ed, err := e.graph.Edge(edgeID)
	if err != nil {
		return "", "", fmt.Errorf("resolve endpoints: %w", err)
	}
	return e.walk(ed, ed.Source), e.walk(ed, ed.Target), nil
}

func (e *Engine) walk(from *domain.Edge, start string) string {
	cur, prev := start, from
	seen := map[string]bool{}
	for !seen[cur] {
		seen[cur] = true
		n, err := e.graph.Node(cur)
		if err != nil || !n.IsAnchor() {
			return cur
		}
		var next *domain.Edge
		for _, ed := range e.graph.ConnectedEdges(cur) {
			if ed.ID != prev.ID {
				next = ed
				break
			}
		}
		if next == nil {
			return cur
		}
		cur, prev = next.Other(cur), next
	}
	return cur
}

// freshID returns a generated id not used by any element
func (e *Engine) freshID(prefix string) string {
	for {
		id := e.newID(prefix)
		if !e.graph.HasNode(id) && !e.graph.HasEdge(id) {
			return id
		}
	}
}
