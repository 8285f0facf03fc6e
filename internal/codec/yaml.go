package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"noctopo/internal/domain"
)

// YAMLCodec renders a backup as devices, anchors and links
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

type yamlTopology struct {
	Theme   *domain.ThemeSettings `yaml:"theme,omitempty"`
	Devices []yamlDevice          `yaml:"devices"`
	Anchors []yamlAnchor          `yaml:"anchors,omitempty"`
	Links   []yamlLink            `yaml:"links"`
}

type yamlDevice struct {
	ID                 string  `yaml:"id"`
	X                  float64 `yaml:"x"`
	Y                  float64 `yaml:"y"`
	domain.DeviceAttrs `yaml:",inline"`
}

type yamlAnchor struct {
	ID string  `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

type yamlLink struct {
	ID               string `yaml:"id"`
	Source           string `yaml:"source"`
	Target           string `yaml:"target"`
	LinkID           string `yaml:"link,omitempty"`
	domain.EdgeAttrs `yaml:",inline"`
}

// Parse reads a YAML topology back into a backup
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Backup, error) {
	var yt yamlTopology
	if err := yaml.NewDecoder(r).Decode(&yt); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}

	b := &domain.Backup{
		Elements:      make([]domain.ElementDefinition, 0, len(yt.Devices)+len(yt.Anchors)+len(yt.Links)),
		ThemeSettings: yt.Theme,
	}
	for _, d := range yt.Devices {
		n := domain.NewDevice(d.ID, d.DeviceAttrs, domain.Position{X: d.X, Y: d.Y})
		b.Elements = append(b.Elements, n.Definition())
	}
	for _, a := range yt.Anchors {
		n := domain.NewAnchor(a.ID, domain.Position{X: a.X, Y: a.Y})
		b.Elements = append(b.Elements, n.Definition())
	}
	for _, l := range yt.Links {
		e := domain.NewEdge(l.ID, l.Source, l.Target, l.LinkID, l.EdgeAttrs)
		b.Elements = append(b.Elements, e.Definition())
	}
	return b, nil
}

// Export writes the backup as YAML
func (c *YAMLCodec) Export(b *domain.Backup, w io.Writer) error {
	yt := yamlTopology{
		Theme:   b.ThemeSettings,
		Devices: make([]yamlDevice, 0),
		Links:   make([]yamlLink, 0),
	}

	for _, d := range b.Elements {
		if d.Group == domain.GroupEdges {
			e := domain.EdgeFromDefinition(d)
			yt.Links = append(yt.Links, yamlLink{
				ID:        e.ID,
				Source:    e.Source,
				Target:    e.Target,
				LinkID:    e.LinkID,
				EdgeAttrs: e.Attrs,
			})
			continue
		}
		n := domain.NodeFromDefinition(d)
		if n.IsAnchor() {
			yt.Anchors = append(yt.Anchors, yamlAnchor{ID: n.ID, X: n.Position.X, Y: n.Position.Y})
			continue
		}
		yt.Devices = append(yt.Devices, yamlDevice{
			ID:          n.ID,
			X:           n.Position.X,
			Y:           n.Position.Y,
			DeviceAttrs: *n.Device,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yt); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
