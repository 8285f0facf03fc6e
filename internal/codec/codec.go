// Package codec reads and writes topology backups.
//
// JSON is the native backup format and round-trips everything, including
// the theme. YAML is a readable rendering meant for review and hand edits;
// it can be imported back as well.
package codec

import (
	"io"

	"noctopo/internal/domain"
)

// Importer parses a backup from a stream
type Importer interface {
	Parse(r io.Reader) (*domain.Backup, error)
	Format() string
}

// Exporter writes a backup to a stream
type Exporter interface {
	Export(b *domain.Backup, w io.Writer) error
	Format() string
}

// ForFormat returns the codec registered for a format name
func ForFormat(format string) (Importer, Exporter, bool) {
	switch format {
	case "json", "":
		c := NewJSONCodec()
		return c, c, true
	case "yaml", "yml":
		c := NewYAMLCodec()
		return c, c, true
	}
	return nil, nil, false
}
