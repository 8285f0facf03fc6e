package topology

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"noctopo/internal/domain"
	"noctopo/internal/history"
	"noctopo/internal/metrics"
	"noctopo/internal/projection"
)

var validate = validator.New()

// Config configures an Engine
type Config struct {
	// Center is where devices added without a position are placed
	Center domain.Position
	// Language selects the label language of derived fields
	Language string
	// NewID generates element ids; defaults to prefix_uuid
	NewID func(prefix string) string
}

// Engine owns a topology graph, its undo history and the latest metrics.
// Every successful mutation recomputes derived fields and records a
// snapshot; every rejection happens before anything changes.
//
// Engine is not safe for concurrent use.
type Engine struct {
	graph     *domain.Graph
	history   *history.Manager
	projector *projection.Projector
	hosts     metrics.HostMap
	lang      string
	center    domain.Position
	newID     func(prefix string) string
	link      LinkSession
}

// New creates an engine with an empty graph and a single history snapshot
func New(projector *projection.Projector, cfg Config) *Engine {
	if cfg.NewID == nil {
		cfg.NewID = func(prefix string) string {
			return prefix + "_" + uuid.NewString()
		}
	}
	e := &Engine{
		graph:     domain.NewGraph(),
		history:   history.New(),
		projector: projector,
		hosts:     metrics.HostMap{},
		lang:      cfg.Language,
		center:    cfg.Center,
		newID:     cfg.NewID,
		link:      LinkSession{State: LinkIdle},
	}
	_ = e.history.Reset(e.graph)
	return e
}

// Load replaces the graph with defs and resets history to a single
// snapshot. The current graph is kept when defs are invalid.
func (e *Engine) Load(defs []domain.ElementDefinition) error {
	g, err := domain.BuildGraph(defs)
	if err != nil {
		return fmt.Errorf("load topology: %w", err)
	}
	return e.replace(g)
}

// ApplyBackup replaces the graph with the elements of a parsed backup
func (e *Engine) ApplyBackup(b domain.Backup) error {
	if b.Elements == nil {
		return fmt.Errorf("apply backup: missing elements: %w", domain.ErrInvalidBackup)
	}
	g, err := domain.BuildGraph(b.Elements)
	if err != nil {
		return fmt.Errorf("apply backup: %w: %v", domain.ErrInvalidBackup, err)
	}
	return e.replace(g)
}

func (e *Engine) replace(g *domain.Graph) error {
	e.graph = g
	e.link = LinkSession{State: LinkIdle}
	e.refresh()
	return e.history.Reset(e.graph)
}

// SetMetrics installs a new metrics snapshot and recomputes derived fields
func (e *Engine) SetMetrics(hosts metrics.HostMap) {
	if hosts == nil {
		hosts = metrics.HostMap{}
	}
	e.hosts = hosts
	e.refresh()
}

// Metrics returns the current metrics snapshot
func (e *Engine) Metrics() metrics.HostMap {
	return e.hosts
}

// SetLanguage changes the label language and recomputes derived fields
func (e *Engine) SetLanguage(lang string) {
	e.lang = lang
	e.refresh()
}

// Graph returns the live graph. Callers must not mutate it.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Elements returns the persisted definitions of the graph
func (e *Engine) Elements() []domain.ElementDefinition {
	return e.graph.Elements()
}

// History returns the undo/redo summary
func (e *Engine) History() history.State {
	return e.history.State()
}

// MarkSaved records the current state as persisted
func (e *Engine) MarkSaved() {
	e.history.MarkSaved()
}

// Undo steps back one snapshot. It reports false when there is nothing to
// undo.
func (e *Engine) Undo() (bool, error) {
	ok, err := e.history.Undo(e.graph)
	if err != nil || !ok {
		return ok, err
	}
	e.afterRestore()
	return true, nil
}

// Redo steps forward one snapshot. It reports false when there is nothing
// to redo.
func (e *Engine) Redo() (bool, error) {
	ok, err := e.history.Redo(e.graph)
	if err != nil || !ok {
		return ok, err
	}
	e.afterRestore()
	return true, nil
}

func (e *Engine) afterRestore() {
	e.link = LinkSession{State: LinkIdle}
	e.refresh()
}

func (e *Engine) refresh() {
	if e.projector != nil {
		e.projector.Refresh(e.graph, e.hosts, e.lang)
	}
}

// commit finishes a mutation
func (e *Engine) commit() error {
	e.graph.RemoveClass(domain.ClassSelected)
	e.refresh()
	if err := e.history.Push(e.graph); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// View is a copy of the graph with derived fields, safe to hand to
// another goroutine
type View struct {
	Nodes   []*domain.Node `json:"nodes"`
	Edges   []*domain.Edge `json:"edges"`
	History history.State  `json:"history"`
	Link    LinkSession    `json:"link"`
}

// View copies the current state
func (e *Engine) View() View {
	v := View{
		Nodes:   make([]*domain.Node, 0),
		Edges:   make([]*domain.Edge, 0),
		History: e.history.State(),
		Link:    e.link,
	}
	for _, n := range e.graph.Nodes() {
		v.Nodes = append(v.Nodes, n.Clone())
	}
	for _, ed := range e.graph.Edges() {
		v.Edges = append(v.Edges, ed.Clone())
	}
	return v
}
