package domain

// ThemeSettings holds the panel colours and UI language
type ThemeSettings struct {
	BgColor      string `json:"bgColor" yaml:"bg_color" validate:"omitempty,iscolor"`
	SidebarColor string `json:"sidebarColor" yaml:"sidebar_color" validate:"omitempty,iscolor"`
	NodeBgColor  string `json:"nodeBgColor" yaml:"node_bg_color" validate:"omitempty,iscolor"`
	EdgeColor    string `json:"edgeColor" yaml:"edge_color" validate:"omitempty,iscolor"`
	Language     string `json:"language" yaml:"language"`
}

// DefaultTheme returns the theme used when none is configured
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		BgColor:      "#030712",
		SidebarColor: "#111827",
		NodeBgColor:  "#1f2937",
		EdgeColor:    "#4b5563",
		Language:     "pt-br",
	}
}

// WithDefaults fills empty fields from fallback
func (t ThemeSettings) WithDefaults(fallback ThemeSettings) ThemeSettings {
	if t.BgColor == "" {
		t.BgColor = fallback.BgColor
	}
	if t.SidebarColor == "" {
		t.SidebarColor = fallback.SidebarColor
	}
	if t.NodeBgColor == "" {
		t.NodeBgColor = fallback.NodeBgColor
	}
	if t.EdgeColor == "" {
		t.EdgeColor = fallback.EdgeColor
	}
	if t.Language == "" {
		t.Language = fallback.Language
	}
	return t
}

// Validate checks colour formats
func (t ThemeSettings) Validate() error {
	return validate.Struct(t)
}

// PanelConfig is the persisted panel configuration
type PanelConfig struct {
	TopologyData  []ElementDefinition `json:"topologyData"`
	ThemeSettings *ThemeSettings      `json:"themeSettings,omitempty"`
}

// Backup is the user facing export file
type Backup struct {
	Elements      []ElementDefinition `json:"elements"`
	ThemeSettings *ThemeSettings      `json:"themeSettings,omitempty"`
}
