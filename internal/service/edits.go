package service

import (
	"go.uber.org/zap"

	"noctopo/internal/domain"
	"noctopo/internal/topology"
)

// edit runs one engine operation under the lock and announces the result
func (s *PanelService) edit(op string, fn func(e *topology.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.engine); err != nil {
		s.logger.Debug("edit rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	s.publish(EventTopologyChanged, s.engine.View())
	return nil
}

// AddDevice adds a device to the panel
func (s *PanelService) AddDevice(spec topology.DeviceSpec) (*domain.Node, error) {
	var n *domain.Node
	err := s.edit("add_device", func(e *topology.Engine) (err error) {
		n, err = e.AddDevice(spec)
		return err
	})
	return clonedNode(n, err)
}

// EditDevice updates or re-keys a device
func (s *PanelService) EditDevice(id string, edit topology.DeviceEdit) (*domain.Node, error) {
	var n *domain.Node
	err := s.edit("edit_device", func(e *topology.Engine) (err error) {
		n, err = e.EditDevice(id, edit)
		return err
	})
	return clonedNode(n, err)
}

// RekeyImpact reports what re-keying a device would remove
func (s *PanelService) RekeyImpact(id string) (topology.Impact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.RekeyImpact(id)
}

// DeleteDevice removes a device with its anchor chains
func (s *PanelService) DeleteDevice(id string) error {
	return s.edit("delete_device", func(e *topology.Engine) error {
		return e.DeleteDevice(id)
	})
}

// MoveNode records a node drag
func (s *PanelService) MoveNode(id string, pos domain.Position) error {
	return s.edit("move_node", func(e *topology.Engine) error {
		return e.MoveNode(id, pos)
	})
}

// AddEdge links two devices
func (s *PanelService) AddEdge(source, target string, attrs domain.EdgeAttrs) (*domain.Edge, error) {
	var ed *domain.Edge
	err := s.edit("add_edge", func(e *topology.Engine) (err error) {
		ed, err = e.AddEdge(source, target, attrs)
		return err
	})
	return clonedEdge(ed, err)
}

// EditEdge patches every segment of a link
func (s *PanelService) EditEdge(id string, patch domain.EdgePatch) error {
	return s.edit("edit_edge", func(e *topology.Engine) error {
		return e.EditEdge(id, patch)
	})
}

// RemoveEdge removes a segment and any anchors it leaves dangling
func (s *PanelService) RemoveEdge(id string) error {
	return s.edit("remove_edge", func(e *topology.Engine) error {
		return e.RemoveEdge(id)
	})
}

// InsertAnchor splits an edge around a new anchor
func (s *PanelService) InsertAnchor(edgeID string, pos domain.Position) (*domain.Node, error) {
	var n *domain.Node
	err := s.edit("insert_anchor", func(e *topology.Engine) (err error) {
		n, err = e.InsertAnchor(edgeID, pos)
		return err
	})
	return clonedNode(n, err)
}

// RemoveAnchor merges the two segments around an anchor
func (s *PanelService) RemoveAnchor(id string) (*domain.Edge, error) {
	var ed *domain.Edge
	err := s.edit("remove_anchor", func(e *topology.Engine) (err error) {
		ed, err = e.RemoveAnchor(id)
		return err
	})
	return clonedEdge(ed, err)
}

// RemoveElement removes a segment, an anchor or a device
func (s *PanelService) RemoveElement(id string) error {
	return s.edit("remove_element", func(e *topology.Engine) error {
		return e.RemoveElement(id)
	})
}

// Undo steps back one edit; it reports false when there is nothing to undo
func (s *PanelService) Undo() (bool, error) {
	return s.step("undo", (*topology.Engine).Undo)
}

// Redo steps forward one edit; it reports false when there is nothing to
// redo
func (s *PanelService) Redo() (bool, error) {
	return s.step("redo", (*topology.Engine).Redo)
}

// step moves through history and announces the topology only when it
// changed
func (s *PanelService) step(op string, fn func(*topology.Engine) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := fn(s.engine)
	if err != nil {
		s.logger.Warn("history step failed", zap.String("op", op), zap.Error(err))
		return false, err
	}
	if ok {
		s.publish(EventTopologyChanged, s.engine.View())
	}
	return ok, nil
}

// ResolveEndpoints returns the devices an edge logically joins
func (s *PanelService) ResolveEndpoints(edgeID string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ResolveEndpoints(edgeID)
}

// Interfaces lists the interfaces reported for a device
func (s *PanelService) Interfaces(device string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Interfaces(device)
}

// Items lists the raw metric items reported for a device, the choices for
// its custom loss, ping and latency bindings
func (s *PanelService) Items(device string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Items(device)
}

// SuggestEdgeMetrics builds the metric list for an interface binding
func (s *PanelService) SuggestEdgeMetrics(device, iface string, existing []domain.EdgeMetric) []domain.EdgeMetric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SuggestEdgeMetrics(device, iface, existing)
}

func clonedNode(n *domain.Node, err error) (*domain.Node, error) {
	if err != nil || n == nil {
		return nil, err
	}
	return n.Clone(), nil
}

func clonedEdge(ed *domain.Edge, err error) (*domain.Edge, error) {
	if err != nil || ed == nil {
		return nil, err
	}
	return ed.Clone(), nil
}
