package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"noctopo/internal/domain"
	"noctopo/internal/repository"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db, now: time.Now}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS panels (
		id TEXT PRIMARY KEY,
		topology JSON NOT NULL,
		theme JSON,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS panel_revisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		panel_id TEXT NOT NULL,
		topology JSON NOT NULL,
		theme JSON,
		node_count INTEGER NOT NULL DEFAULT 0,
		edge_count INTEGER NOT NULL DEFAULT 0,
		saved_at TEXT NOT NULL,
		FOREIGN KEY (panel_id) REFERENCES panels(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_panel_revisions_panel ON panel_revisions(panel_id, id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}

// GetPanel loads the saved configuration of a panel
func (r *Repository) GetPanel(ctx context.Context, id string) (*domain.PanelConfig, error) {
	var row panelRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+panelColumns+`
		FROM panels WHERE id = ?
	`, id).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("panel %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query panel: %w", err)
	}
	return row.toDomain()
}

// SavePanel stores the configuration of a panel and records a revision
func (r *Repository) SavePanel(ctx context.Context, id string, cfg *domain.PanelConfig) error {
	topology, err := marshalTopology(cfg.TopologyData)
	if err != nil {
		return fmt.Errorf("failed to marshal topology: %w", err)
	}
	theme, err := marshalToNull(cfg.ThemeSettings)
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}
	nodes, edges := countElements(cfg.TopologyData)
	now := formatTime(r.now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO panels (id, topology, theme, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			topology = excluded.topology,
			theme = excluded.theme,
			updated_at = excluded.updated_at
	`, id, topology, theme, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert panel: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO panel_revisions (panel_id, topology, theme, node_count, edge_count, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, topology, theme, nodes, edges, now)
	if err != nil {
		return fmt.Errorf("failed to insert revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListRevisions returns the saves of a panel, newest first. A limit of
// zero or less returns all of them.
func (r *Repository) ListRevisions(ctx context.Context, panelID string, limit int) ([]repository.Revision, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, panel_id, node_count, edge_count, saved_at
		FROM panel_revisions
		WHERE panel_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, panelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	revisions := make([]repository.Revision, 0)
	for rows.Next() {
		var (
			rev     repository.Revision
			savedAt string
		)
		if err := rows.Scan(&rev.ID, &rev.PanelID, &rev.Nodes, &rev.Edges, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		if rev.SavedAt, err = parseTime(savedAt); err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revisions: %w", err)
	}
	return revisions, nil
}

// GetRevision loads the configuration stored by one save
func (r *Repository) GetRevision(ctx context.Context, panelID string, id int64) (*domain.PanelConfig, error) {
	var row panelRow
	err := r.db.QueryRowContext(ctx, `
		SELECT panel_id, topology, theme, saved_at, saved_at
		FROM panel_revisions WHERE panel_id = ? AND id = ?
	`, panelID, id).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("revision %d of %s: %w", id, panelID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query revision: %w", err)
	}
	return row.toDomain()
}
