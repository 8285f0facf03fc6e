package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"noctopo/internal/domain"
)

// JSONCodec handles the {elements, themeSettings} backup file
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

type jsonBackup struct {
	Elements      *[]domain.ElementDefinition `json:"elements"`
	ThemeSettings *domain.ThemeSettings        `json:"themeSettings"`
}

// Parse reads a backup. Malformed JSON and a missing elements list are
// both reported as domain.ErrInvalidBackup.
func (c *JSONCodec) Parse(r io.Reader) (*domain.Backup, error) {
	var raw jsonBackup
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if raw.Elements == nil {
		return nil, fmt.Errorf("%w: no elements", domain.ErrInvalidBackup)
	}
	return &domain.Backup{Elements: *raw.Elements, ThemeSettings: raw.ThemeSettings}, nil
}

// Export writes the backup as indented JSON
func (c *JSONCodec) Export(b *domain.Backup, w io.Writer) error {
	out := *b
	if out.Elements == nil {
		out.Elements = []domain.ElementDefinition{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
