package topology

import (
	"errors"
	"fmt"

	"noctopo/internal/domain"
)

// DeviceSpec describes a device to add
type DeviceSpec struct {
	ID       string           `json:"id" validate:"required"`
	Position *domain.Position `json:"position,omitempty"`
	domain.DeviceAttrs
}

// DeviceEdit changes a device. A NewID different from the current id
// re-keys the device.
type DeviceEdit struct {
	NewID string `json:"newId,omitempty"`
	domain.DevicePatch
}

// Impact lists what a re-key or delete of a device destroys
type Impact struct {
	Anchors []string `json:"anchors"`
	Edges   []string `json:"edges"`
}

// AddDevice places a new device on the canvas
func (e *Engine) AddDevice(spec DeviceSpec) (*domain.Node, error) {
	if err := validate.Struct(spec); err != nil {
		return nil, fmt.Errorf("add device: %w: %v", domain.ErrInvalidElement, err)
	}
	if e.graph.HasNode(spec.ID) {
		return nil, fmt.Errorf("add device %s: %w", spec.ID, domain.ErrDuplicateDevice)
	}
	if e.graph.HasEdge(spec.ID) {
		return nil, fmt.Errorf("add device %s: %w", spec.ID, domain.ErrDuplicateID)
	}

	pos := e.center
	if spec.Position != nil {
		pos = *spec.Position
	}
	n := domain.NewDevice(spec.ID, spec.DeviceAttrs, pos)
	if err := e.graph.AddNode(n); err != nil {
		return nil, err
	}
	if err := e.commit(); err != nil {
		return nil, err
	}
	return n, nil
}

// EditDevice updates a device in place, or re-keys it when edit.NewID
// differs from id. A re-key removes the device with every anchor chain
// hanging off it and recreates it under the new id at the same position.
func (e *Engine) EditDevice(id string, edit DeviceEdit) (*domain.Node, error) {
	if err := validate.Struct(edit.DevicePatch); err != nil {
		return nil, fmt.Errorf("edit device: %w: %v", domain.ErrInvalidElement, err)
	}
	n, err := e.device(id)
	if err != nil {
		return nil, fmt.Errorf("edit device: %w", err)
	}

	if edit.NewID == "" || edit.NewID == id {
		if err := e.graph.PatchDevice(id, edit.DevicePatch); err != nil {
			return nil, err
		}
		if err := e.commit(); err != nil {
			return nil, err
		}
		return n, nil
	}

	if e.graph.HasNode(edit.NewID) {
		return nil, fmt.Errorf("rekey %s to %s: %w", id, edit.NewID, domain.ErrDuplicateDevice)
	}
	if e.graph.HasEdge(edit.NewID) {
		return nil, fmt.Errorf("rekey %s to %s: %w", id, edit.NewID, domain.ErrDuplicateID)
	}

	pos := n.Position
	attrs := n.Device.Apply(edit.DevicePatch)
	e.removeWithAnchors(id)

	rekeyed := domain.NewDevice(edit.NewID, attrs, pos)
	if err := e.graph.AddNode(rekeyed); err != nil {
		return nil, err
	}
	if err := e.commit(); err != nil {
		return nil, err
	}
	return rekeyed, nil
}

// RekeyImpact reports the anchors and edges that a re-key or delete of the
// device would remove
func (e *Engine) RekeyImpact(id string) (Impact, error) {
	if _, err := e.device(id); err != nil {
		return Impact{}, err
	}
	anchors := e.anchorClosure(id)
	impact := Impact{Anchors: anchors, Edges: make([]string, 0)}
	for _, ed := range e.closureEdges(id, anchors) {
		impact.Edges = append(impact.Edges, ed.ID)
	}
	return impact, nil
}

// DeleteDevice removes a device with every anchor chain hanging off it
func (e *Engine) DeleteDevice(id string) error {
	if _, err := e.device(id); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	e.removeWithAnchors(id)
	return e.commit()
}

// MoveNode records a drag. Moving a node to where it already is records
// nothing.
func (e *Engine) MoveNode(id string, pos domain.Position) error {
	n, err := e.graph.Node(id)
	if err != nil {
		return fmt.Errorf("move node: %w", err)
	}
	if n.Position == pos {
		return nil
	}
	n.Position = pos
	return e.commit()
}

func (e *Engine) device(id string) (*domain.Node, error) {
	n, err := e.graph.Node(id)
	if err != nil {
		return nil, err
	}
	if n.IsAnchor() || n.Device == nil {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrNotDevice)
	}
	return n, nil
}

// anchorClosure returns the anchors reachable from id through anchors
// only, breadth first
func (e *Engine) anchorClosure(id string) []string {
	seen := map[string]bool{id: true}
	queue := []string{id}
	anchors := make([]string, 0)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ed := range e.graph.ConnectedEdges(cur) {
			other := ed.Other(cur)
			if seen[other] {
				continue
			}
			n, err := e.graph.Node(other)
			if err != nil || !n.IsAnchor() {
				continue
			}
			seen[other] = true
			anchors = append(anchors, other)
			queue = append(queue, other)
		}
	}
	return anchors
}

func (e *Engine) closureEdges(id string, anchors []string) []*domain.Edge {
	members := map[string]bool{id: true}
	for _, a := range anchors {
		members[a] = true
	}
	var out []*domain.Edge
	for _, ed := range e.graph.Edges() {
		if members[ed.Source] || members[ed.Target] {
			out = append(out, ed)
		}
	}
	return out
}

func (e *Engine) removeWithAnchors(id string) {
	anchors := e.anchorClosure(id)
	for _, ed := range e.closureEdges(id, anchors) {
		e.mustRemoveEdge(ed.ID)
	}
	for _, a := range anchors {
		e.mustRemoveNode(a)
	}
	e.mustRemoveNode(id)
}

// mustRemoveNode removes a node the caller has just looked up
func (e *Engine) mustRemoveNode(id string) {
	if err := e.graph.RemoveNode(id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		panic(err)
	}
}

// mustRemoveEdge removes an edge the caller has just looked up
func (e *Engine) mustRemoveEdge(id string) {
	if err := e.graph.RemoveEdge(id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		panic(err)
	}
}
