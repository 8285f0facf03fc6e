package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"noctopo/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalToNull marshals a pointer to nullable JSON; nil stores NULL
func marshalToNull[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// marshalTopology never stores null for an empty topology
func marshalTopology(defs []domain.ElementDefinition) (string, error) {
	if defs == nil {
		defs = []domain.ElementDefinition{}
	}
	data, err := json.Marshal(defs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func countElements(defs []domain.ElementDefinition) (nodes, edges int) {
	for _, d := range defs {
		if d.Group == domain.GroupEdges {
			edges++
		} else {
			nodes++
		}
	}
	return nodes, edges
}

// ============================================================================
// Time Helpers
// ============================================================================

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// ============================================================================
// Panel Row Scanner
// ============================================================================

// panelRow holds all columns from a panel query for scanning
type panelRow struct {
	ID        string
	Topology  string
	Theme     sql.NullString
	CreatedAt string
	UpdatedAt string
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match panelColumns order exactly
func (r *panelRow) scanArgs() []any {
	return []any{&r.ID, &r.Topology, &r.Theme, &r.CreatedAt, &r.UpdatedAt}
}

// toDomain converts the scanned row to a domain.PanelConfig
func (r *panelRow) toDomain() (*domain.PanelConfig, error) {
	cfg := &domain.PanelConfig{TopologyData: []domain.ElementDefinition{}}
	if err := json.Unmarshal([]byte(r.Topology), &cfg.TopologyData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal topology of %s: %w", r.ID, err)
	}
	if nullToString(r.Theme) != "" {
		var theme domain.ThemeSettings
		if err := unmarshalJSONField(r.Theme, &theme); err != nil {
			return nil, fmt.Errorf("failed to unmarshal theme of %s: %w", r.ID, err)
		}
		cfg.ThemeSettings = &theme
	}
	return cfg, nil
}

const panelColumns = "id, topology, theme, created_at, updated_at"
