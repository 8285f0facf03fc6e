package topology

import (
	"fmt"

	"noctopo/internal/domain"
	"noctopo/internal/projection"
)

// LinkState is a step of interactive link creation
type LinkState string

const (
	LinkIdle           LinkState = "idle"
	LinkAwaitingSource LinkState = "awaiting_source"
	LinkAwaitingTarget LinkState = "awaiting_target"
	LinkAttributeEntry LinkState = "attribute_entry"
)

// LinkSession is the progress of link creation
type LinkSession struct {
	State  LinkState `json:"state"`
	Source string    `json:"source,omitempty"`
	Target string    `json:"target,omitempty"`
}

// LinkSession returns the current link creation progress
func (e *Engine) LinkSession() LinkSession {
	return e.link
}

// EnterLinkMode starts picking a source device, discarding any pending
// selection
func (e *Engine) EnterLinkMode() {
	e.clearSelection()
	e.link = LinkSession{State: LinkAwaitingSource}
}

// ExitLinkMode leaves link mode from any step
func (e *Engine) ExitLinkMode() {
	e.clearSelection()
	e.link = LinkSession{State: LinkIdle}
}

// PickNode advances link creation with a clicked node. Picking the
// selected source again deselects it. Picking a target already linked to
// the source ends link mode with ErrDuplicateConnection.
func (e *Engine) PickNode(id string) (LinkSession, error) {
	switch e.link.State {
	case LinkAwaitingSource:
		if _, err := e.device(id); err != nil {
			return e.link, fmt.Errorf("pick source: %w", err)
		}
		if err := e.graph.AddClass(id, domain.ClassSelected); err != nil {
			return e.link, err
		}
		e.link = LinkSession{State: LinkAwaitingTarget, Source: id}

	case LinkAwaitingTarget:
		if id == e.link.Source {
			e.clearSelection()
			e.link = LinkSession{State: LinkAwaitingSource}
			return e.link, nil
		}
		if _, err := e.device(id); err != nil {
			return e.link, fmt.Errorf("pick target: %w", err)
		}
		if e.connected(e.link.Source, id) {
			source := e.link.Source
			e.ExitLinkMode()
			return e.link, fmt.Errorf("link %s and %s: %w", source, id, domain.ErrDuplicateConnection)
		}
		if err := e.graph.AddClass(id, domain.ClassSelected); err != nil {
			return e.link, err
		}
		e.link.State = LinkAttributeEntry
		e.link.Target = id

	default:
		return e.link, fmt.Errorf("pick node in state %s: %w", e.link.State, domain.ErrLinkState)
	}
	return e.link, nil
}

// ConfirmLink creates the link between the picked devices. On failure
// the session stays in attribute entry so the form can be corrected.
func (e *Engine) ConfirmLink(attrs domain.EdgeAttrs) (*domain.Edge, error) {
	if e.link.State != LinkAttributeEntry {
		return nil, fmt.Errorf("confirm link in state %s: %w", e.link.State, domain.ErrLinkState)
	}
	ed, err := e.AddEdge(e.link.Source, e.link.Target, attrs)
	if err != nil {
		return nil, err
	}
	e.link = LinkSession{State: LinkIdle}
	return ed, nil
}

// CancelLink abandons the picked pair and waits for a new source
func (e *Engine) CancelLink() {
	if e.link.State == LinkIdle {
		return
	}
	e.clearSelection()
	e.link = LinkSession{State: LinkAwaitingSource}
}

// LinkDraft returns the attributes the link form starts from
func LinkDraft(theme domain.ThemeSettings) domain.EdgeAttrs {
	color := theme.EdgeColor
	if color == "" {
		color = projection.DefaultEdgeColor
	}
	return domain.EdgeAttrs{
		Color: color,
		Width: projection.DefaultEdgeWidth,
		Style: domain.EdgeStyleSolid,
	}
}

func (e *Engine) clearSelection() {
	e.graph.RemoveClass(domain.ClassSelected)
}
