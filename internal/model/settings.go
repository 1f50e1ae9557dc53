package model

import (
	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
)

// Settings holds the host-owned layout configuration. Lengths are in
// millimetres: model lengths for Offset, paper lengths for the rest.
type Settings struct {
	Offset      float64 `json:"offset" toml:"offset" yaml:"offset"`                   // Clearance around the room in the cut volume
	Scale       float64 `json:"scale" toml:"scale" yaml:"scale"`                      // View scale denominator (20 = 1:20)
	Padding     float64 `json:"padding" toml:"padding" yaml:"padding"`                // Added to each viewport footprint on paper
	Margin      float64 `json:"margin" toml:"margin" yaml:"margin"`                   // Sheet edge margin on paper
	Gap         float64 `json:"gap" toml:"gap" yaml:"gap"`                            // Space between viewports on paper
	TitleBlock  string  `json:"title_block" toml:"title_block" yaml:"title_block"`    // Title block name
	Phase       string  `json:"phase" toml:"phase" yaml:"phase"`                      // Only rooms in this phase; empty = all
	SheetPrefix string  `json:"sheet_prefix" toml:"sheet_prefix" yaml:"sheet_prefix"` // Sheet number prefix
}

// DefaultSettings mirrors the values used by the room-section tool:
// 500 mm clearance, 1:20, 10 mm padding and gap, 50 mm margins on A2.
func DefaultSettings() Settings {
	return Settings{
		Offset:      500.0,
		Scale:       20.0,
		Padding:     10.0,
		Margin:      50.0,
		Gap:         10.0,
		TitleBlock:  "A2",
		SheetPrefix: "RS",
	}
}

// Validate rejects settings that would make every derivation or packing
// attempt meaningless.
func (s Settings) Validate() error {
	switch {
	case !isFinite(s.Scale) || s.Scale <= 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "scale must be > 0, got %v", s.Scale)
	case !isFinite(s.Offset) || s.Offset < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "offset must be >= 0, got %v", s.Offset)
	case !isFinite(s.Padding) || s.Padding < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "padding must be >= 0, got %v", s.Padding)
	case s.SheetPrefix == "":
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "sheet prefix cannot be empty")
	}
	return nil
}

// PackingConfig derives the usable page area from a title block: the sheet
// minus a margin on every side and the title strip.
func (s Settings) PackingConfig(tb TitleBlock) PackingConfig {
	return PackingConfig{
		AvailableWidth:  tb.Width - 2*s.Margin,
		AvailableHeight: tb.Height - 2*s.Margin - tb.TitleAllowance,
		Margin:          s.Margin,
		Gap:             s.Gap,
	}
}

// Validate checks the page capacity before any packing attempt.
func (c PackingConfig) Validate() error {
	switch {
	case !isFinite(c.AvailableWidth) || c.AvailableWidth <= 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "available width must be > 0, got %v", c.AvailableWidth)
	case !isFinite(c.AvailableHeight) || c.AvailableHeight <= 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "available height must be > 0, got %v", c.AvailableHeight)
	case !isFinite(c.Margin) || c.Margin < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "margin must be >= 0, got %v", c.Margin)
	case !isFinite(c.Gap) || c.Gap < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "gap must be >= 0, got %v", c.Gap)
	}
	return nil
}
