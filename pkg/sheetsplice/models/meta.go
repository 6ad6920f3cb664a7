package models

// ColumnMeta holds per-column layout metadata.
// It is created lazily when a column is first customized.
type ColumnMeta struct {
	// Width is the column width in characters (nil uses the sheet default).
	Width *float64 `json:"width,omitempty"`
	// Hidden reports whether the column is hidden.
	Hidden bool `json:"hidden,omitempty"`
	// OutlineLevel is the grouping level (0-7).
	OutlineLevel uint8 `json:"outline_level,omitempty"`
}

// IsDefault reports whether the metadata carries no customization.
func (m ColumnMeta) IsDefault() bool {
	return m.Width == nil && !m.Hidden && m.OutlineLevel == 0
}

// RowMeta holds per-row layout metadata.
type RowMeta struct {
	// Height is the row height in points (nil uses the sheet default).
	Height *float64 `json:"height,omitempty"`
	// Hidden reports whether the row is hidden.
	Hidden bool `json:"hidden,omitempty"`
	// OutlineLevel is the grouping level (0-7).
	OutlineLevel uint8 `json:"outline_level,omitempty"`
}

// IsDefault reports whether the metadata carries no customization.
func (m RowMeta) IsDefault() bool {
	return m.Height == nil && !m.Hidden && m.OutlineLevel == 0
}
