package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-orz/cache"
	"go.uber.org/zap"

	"noctopo/internal/codec"
	"noctopo/internal/domain"
	"noctopo/internal/metrics"
	"noctopo/internal/repository"
	"noctopo/internal/topology"
)

const trafficCacheTTL = 10 * time.Minute

// Options configures a PanelService
type Options struct {
	PanelID string
	// Theme is used until a saved panel provides one
	Theme domain.ThemeSettings
}

// PanelService provides the operations of one topology panel
type PanelService struct {
	mu       sync.Mutex
	engine   *topology.Engine
	repo     repository.Repository
	eventBus *EventBus
	logger   *zap.Logger

	panelID      string
	defaultTheme domain.ThemeSettings
	theme        domain.ThemeSettings

	frames     []metrics.Frame
	generation uint64
	traffic    cache.Cache[string, []metrics.TrafficPoint]
}

// NewPanelService creates a new panel service
func NewPanelService(engine *topology.Engine, repo repository.Repository, eventBus *EventBus, logger *zap.Logger, opts Options) *PanelService {
	if opts.PanelID == "" {
		opts.PanelID = "default"
	}
	theme := opts.Theme.WithDefaults(domain.DefaultTheme())
	engine.SetLanguage(theme.Language)
	return &PanelService{
		engine:       engine,
		repo:         repo,
		eventBus:     eventBus,
		logger:       logger,
		panelID:      opts.PanelID,
		defaultTheme: theme,
		theme:        theme,
		traffic:      cache.New[string, []metrics.TrafficPoint](trafficCacheTTL),
	}
}

// Load reads the saved panel from the repository. A panel that was never
// saved starts empty.
func (s *PanelService) Load(ctx context.Context) error {
	cfg, err := s.repo.GetPanel(ctx, s.panelID)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Info("no saved panel, starting empty", zap.String("panel", s.panelID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load panel %s: %w", s.panelID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Load(cfg.TopologyData); err != nil {
		return fmt.Errorf("load panel %s: %w", s.panelID, err)
	}
	s.adoptTheme(cfg.ThemeSettings)

	s.logger.Info("panel loaded",
		zap.String("panel", s.panelID),
		zap.Int("elements", len(cfg.TopologyData)))
	s.publish(EventPanelLoaded, s.engine.View())
	return nil
}

// Save persists the current topology and theme
func (s *PanelService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme := s.theme
	cfg := &domain.PanelConfig{
		TopologyData:  s.engine.Elements(),
		ThemeSettings: &theme,
	}
	if err := s.repo.SavePanel(ctx, s.panelID, cfg); err != nil {
		return fmt.Errorf("save panel %s: %w", s.panelID, err)
	}
	s.engine.MarkSaved()

	s.logger.Info("panel saved",
		zap.String("panel", s.panelID),
		zap.Int("elements", len(cfg.TopologyData)))
	s.publish(EventPanelSaved, s.engine.History())
	return nil
}

// Revisions lists earlier saves of the panel, newest first
func (s *PanelService) Revisions(ctx context.Context, limit int) ([]repository.Revision, error) {
	return s.repo.ListRevisions(ctx, s.panelID, limit)
}

// RestoreRevision replaces the topology and theme with an earlier save
func (s *PanelService) RestoreRevision(ctx context.Context, id int64) error {
	cfg, err := s.repo.GetRevision(ctx, s.panelID, id)
	if err != nil {
		return fmt.Errorf("restore revision %d: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Load(cfg.TopologyData); err != nil {
		return fmt.Errorf("restore revision %d: %w", id, err)
	}
	s.adoptTheme(cfg.ThemeSettings)

	s.logger.Info("revision restored", zap.String("panel", s.panelID), zap.Int64("revision", id))
	s.publish(EventPanelLoaded, s.engine.View())
	return nil
}

// View returns a copy of the topology with derived fields
func (s *PanelService) View() topology.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.View()
}

// Theme returns the current theme
func (s *PanelService) Theme() domain.ThemeSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme replaces the theme. Empty fields keep their defaults.
func (s *PanelService) SetTheme(t domain.ThemeSettings) (domain.ThemeSettings, error) {
	if err := t.Validate(); err != nil {
		return domain.ThemeSettings{}, fmt.Errorf("set theme: %w: %v", domain.ErrInvalidElement, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.adoptTheme(&t)
	s.publish(EventThemeChanged, s.theme)
	return s.theme, nil
}

// Language returns the label language of the panel
func (s *PanelService) Language() string {
	return s.Theme().Language
}

func (s *PanelService) adoptTheme(t *domain.ThemeSettings) {
	if t == nil {
		return
	}
	s.theme = t.WithDefaults(s.defaultTheme)
	s.engine.SetLanguage(s.theme.Language)
}

// PushSeries parses a new metrics refresh and reprojects the topology
func (s *PanelService) PushSeries(frames []metrics.Frame) metrics.HostMap {
	hosts := metrics.Parse(frames)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames = frames
	s.generation++
	s.engine.SetMetrics(hosts)

	s.logger.Debug("metrics refreshed",
		zap.Int("frames", len(frames)),
		zap.Int("hosts", len(hosts)))
	s.publish(EventMetricsUpdated, s.engine.View())
	return hosts
}

// Metrics returns the latest parsed metrics
func (s *PanelService) Metrics() metrics.HostMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Metrics()
}

// Traffic is the rx/tx history of a link with the scale its chart uses
type Traffic struct {
	Points []metrics.TrafficPoint `json:"points"`
	Max    float64                `json:"max"`
}

// TrafficHistory returns the rx/tx history of the interface a monitored
// edge is bound to. Unmonitored edges have no history.
func (s *PanelService) TrafficHistory(edgeID string) (Traffic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ed, err := s.engine.Graph().Edge(edgeID)
	if err != nil {
		return Traffic{}, err
	}
	a := ed.Attrs
	if !a.Monitored || a.MainDevice == "" || a.Interface == "" {
		return Traffic{Points: []metrics.TrafficPoint{}}, nil
	}

	key := fmt.Sprintf("%d/%s/%s", s.generation, a.MainDevice, a.Interface)
	points, ok := s.traffic.Get(key)
	if !ok {
		points = metrics.ExtractTrafficHistory(s.frames, a.MainDevice, a.Interface)
		s.traffic.Set(key, points, trafficCacheTTL)
	}
	return Traffic{Points: points, Max: metrics.HistoryMax(points)}, nil
}

// Import replaces the topology with a backup read from r. The theme of
// the backup is adopted when present.
func (s *PanelService) Import(r io.Reader, format string) error {
	importer, _, ok := codec.ForFormat(format)
	if !ok {
		return fmt.Errorf("import: unsupported format %q: %w", format, domain.ErrInvalidBackup)
	}
	backup, err := importer.Parse(r)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.ApplyBackup(*backup); err != nil {
		return err
	}
	s.adoptTheme(backup.ThemeSettings)

	s.logger.Info("backup imported",
		zap.String("format", importer.Format()),
		zap.Int("elements", len(backup.Elements)))
	s.publish(EventBackupImported, s.engine.View())
	return nil
}

// Export writes the topology and theme to w
func (s *PanelService) Export(w io.Writer, format string) error {
	_, exporter, ok := codec.ForFormat(format)
	if !ok {
		return fmt.Errorf("export: unsupported format %q", format)
	}

	s.mu.Lock()
	theme := s.theme
	backup := &domain.Backup{Elements: s.engine.Elements(), ThemeSettings: &theme}
	s.mu.Unlock()

	return exporter.Export(backup, w)
}

func (s *PanelService) publish(t EventType, payload any) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(Event{Type: t, Payload: payload})
}
