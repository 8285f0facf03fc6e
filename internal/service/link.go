package service

import (
	"noctopo/internal/domain"
	"noctopo/internal/topology"
)

// LinkSession returns the progress of interactive link creation
func (s *PanelService) LinkSession() topology.LinkSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LinkSession()
}

// EnterLinkMode starts link creation
func (s *PanelService) EnterLinkMode() topology.LinkSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.EnterLinkMode()
	return s.linkChanged()
}

// ExitLinkMode leaves link creation
func (s *PanelService) ExitLinkMode() topology.LinkSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ExitLinkMode()
	return s.linkChanged()
}

// PickNode selects the source or target of the link being drawn
func (s *PanelService) PickNode(id string) (topology.LinkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.engine.PickNode(id)
	return s.linkChanged(), err
}

// CancelLink drops the picked pair
func (s *PanelService) CancelLink() topology.LinkSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.CancelLink()
	return s.linkChanged()
}

// LinkDraft returns the attributes the link form starts from
func (s *PanelService) LinkDraft() domain.EdgeAttrs {
	return topology.LinkDraft(s.Theme())
}

// ConfirmLink creates the link between the picked devices
func (s *PanelService) ConfirmLink(attrs domain.EdgeAttrs) (*domain.Edge, error) {
	var ed *domain.Edge
	err := s.edit("confirm_link", func(e *topology.Engine) (err error) {
		ed, err = e.ConfirmLink(attrs)
		return err
	})
	return clonedEdge(ed, err)
}

func (s *PanelService) linkChanged() topology.LinkSession {
	session := s.engine.LinkSession()
	s.publish(EventLinkChanged, session)
	return session
}
