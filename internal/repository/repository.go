package repository

import (
	"context"
	"time"

	"noctopo/internal/domain"
)

// Revision summarizes one save of a panel
type Revision struct {
	ID      int64     `json:"id"`
	PanelID string    `json:"panelId"`
	Nodes   int       `json:"nodes"`
	Edges   int       `json:"edges"`
	SavedAt time.Time `json:"savedAt"`
}

// Repository defines the interface for panel configuration access
type Repository interface {
	// GetPanel returns domain.ErrNotFound when the panel was never saved
	GetPanel(ctx context.Context, id string) (*domain.PanelConfig, error)
	SavePanel(ctx context.Context, id string, cfg *domain.PanelConfig) error

	// Revisions are listed newest first
	ListRevisions(ctx context.Context, panelID string, limit int) ([]Revision, error)
	GetRevision(ctx context.Context, panelID string, id int64) (*domain.PanelConfig, error)

	// Close releases resources
	Close() error
}
