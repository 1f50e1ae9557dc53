package model

// AppConfig holds user preferences and the defaults applied to new runs.
type AppConfig struct {
	// Default layout settings
	DefaultOffset      float64 `json:"default_offset"`
	DefaultScale       float64 `json:"default_scale"`
	DefaultPadding     float64 `json:"default_padding"`
	DefaultMargin      float64 `json:"default_margin"`
	DefaultGap         float64 `json:"default_gap"`
	DefaultTitleBlock  string  `json:"default_title_block"`
	DefaultSheetPrefix string  `json:"default_sheet_prefix"`

	// Application preferences
	OutputFormats []string `json:"output_formats"` // subset of "json", "pdf", "xlsx", "dxf"
	RecentInputs  []string `json:"recent_inputs"`
}

// DefaultAppConfig returns an AppConfig matching DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultOffset:      defaults.Offset,
		DefaultScale:       defaults.Scale,
		DefaultPadding:     defaults.Padding,
		DefaultMargin:      defaults.Margin,
		DefaultGap:         defaults.Gap,
		DefaultTitleBlock:  defaults.TitleBlock,
		DefaultSheetPrefix: defaults.SheetPrefix,
		OutputFormats:      []string{"json", "pdf"},
		RecentInputs:       []string{},
	}
}

// ApplyToSettings copies the saved defaults into s.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.Offset = c.DefaultOffset
	s.Scale = c.DefaultScale
	s.Padding = c.DefaultPadding
	s.Margin = c.DefaultMargin
	s.Gap = c.DefaultGap
	s.TitleBlock = c.DefaultTitleBlock
	s.SheetPrefix = c.DefaultSheetPrefix
}

// AddRecentInput moves path to the front of RecentInputs, keeping at most max entries.
func (c *AppConfig) AddRecentInput(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentInputs = recent
}
