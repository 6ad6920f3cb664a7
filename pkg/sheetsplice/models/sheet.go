package models

import "github.com/tiendc/go-deepcopy"

// Worksheet owns a grid together with every position-keyed overlay.
// Overlays never outlive their worksheet and are only mutated as a unit.
type Worksheet struct {
	// Name is the sheet name; sheet-qualified formula references to it are rebased.
	Name string `json:"name"`
	// RowCount is the grid height.
	RowCount int `json:"row_count"`
	// ColumnCount is the grid width.
	ColumnCount int `json:"column_count"`
	// Cells is the sparse grid.
	Cells map[CellKey]Cell `json:"cells,omitempty"`
	// StyleOverlay holds per-cell style overrides applied on top of Cell.StyleID.
	StyleOverlay map[CellKey]int `json:"style_overlay,omitempty"`
	// Columns maps column number to customized column metadata.
	Columns map[int]ColumnMeta `json:"columns,omitempty"`
	// Rows maps row number to customized row metadata.
	Rows map[int]RowMeta `json:"rows,omitempty"`
	// Merges lists non-overlapping merged regions; the anchor is (R1, C1).
	Merges []Area `json:"merges,omitempty"`
	// ConditionalFormats lists formatting rules in document order.
	ConditionalFormats []ConditionalFormatRule `json:"conditional_formats,omitempty"`
	// AutoFilter is the filterable table extent, if any.
	AutoFilter *Area `json:"auto_filter,omitempty"`
	// DataValidations lists input validation rules.
	DataValidations []DataValidation `json:"data_validations,omitempty"`
	// PrintAreas lists user-defined print areas.
	PrintAreas []Area `json:"print_areas,omitempty"`
	// Tables lists the Excel tables anchored on the sheet.
	Tables []Table `json:"tables,omitempty"`
}

// NewWorksheet returns an empty worksheet.
func NewWorksheet(name string) *Worksheet {
	return &Worksheet{
		Name:         name,
		Cells:        make(map[CellKey]Cell),
		StyleOverlay: make(map[CellKey]int),
		Columns:      make(map[int]ColumnMeta),
		Rows:         make(map[int]RowMeta),
	}
}

// Clone returns a deep copy of the worksheet.
func (ws *Worksheet) Clone() (*Worksheet, error) {
	var dst Worksheet
	if err := deepcopy.Copy(&dst, ws); err != nil {
		return nil, err
	}
	return &dst, nil
}

// Cell returns the cell at row, col.
func (ws *Worksheet) Cell(row, col int) (Cell, bool) {
	c, ok := ws.Cells[CellKey{Row: row, Col: col}]
	return c, ok
}

// SetCell stores a cell and grows the grid extent to include it.
// Storing an empty cell removes it.
func (ws *Worksheet) SetCell(row, col int, c Cell) {
	key := CellKey{Row: row, Col: col}
	if c.IsEmpty() {
		delete(ws.Cells, key)
		return
	}
	if ws.Cells == nil {
		ws.Cells = make(map[CellKey]Cell)
	}
	ws.Cells[key] = c
	ws.grow(row, col)
}

// SetValue replaces the value of a cell, keeping its style.
func (ws *Worksheet) SetValue(row, col int, v *Value) {
	c, _ := ws.Cell(row, col)
	c.Value = v
	ws.SetCell(row, col, c)
}

// SetStyle replaces the style handle of a cell, keeping its value.
func (ws *Worksheet) SetStyle(row, col, styleID int) {
	c, _ := ws.Cell(row, col)
	c.StyleID = styleID
	ws.SetCell(row, col, c)
}

// EffectiveStyle returns the overlay style when present, else the cell style.
func (ws *Worksheet) EffectiveStyle(row, col int) int {
	key := CellKey{Row: row, Col: col}
	if s, ok := ws.StyleOverlay[key]; ok {
		return s
	}
	return ws.Cells[key].StyleID
}

// MergeOwner returns the merged region covering the cell, if any.
func (ws *Worksheet) MergeOwner(row, col int) (Area, bool) {
	for _, m := range ws.Merges {
		if m.Contains(row, col) {
			return m, true
		}
	}
	return Area{}, false
}

// IsMergeOwned reports whether the cell is a non-anchor cell of a merged region.
func (ws *Worksheet) IsMergeOwned(row, col int) bool {
	m, ok := ws.MergeOwner(row, col)
	return ok && (m.R1 != row || m.C1 != col)
}

// ApplyOverlay paints the style overlay on the given cells, skipping cells
// owned by a merge anchor. It returns the number of cells painted.
func (ws *Worksheet) ApplyOverlay(styleID int, keys ...CellKey) int {
	if ws.StyleOverlay == nil {
		ws.StyleOverlay = make(map[CellKey]int)
	}
	painted := 0
	for _, k := range keys {
		if ws.IsMergeOwned(k.Row, k.Col) {
			continue
		}
		ws.StyleOverlay[k] = styleID
		ws.grow(k.Row, k.Col)
		painted++
	}
	return painted
}

// HasOverlappingMerges reports whether any two merged regions overlap.
func (ws *Worksheet) HasOverlappingMerges() bool {
	for i := range ws.Merges {
		for j := i + 1; j < len(ws.Merges); j++ {
			if ws.Merges[i].Overlaps(ws.Merges[j]) {
				return true
			}
		}
	}
	return false
}

// Extent returns the grid size along the given axis.
func (ws *Worksheet) Extent(axis Axis) int {
	if axis == AxisRows {
		return ws.RowCount
	}
	return ws.ColumnCount
}

func (ws *Worksheet) grow(row, col int) {
	if row > ws.RowCount {
		ws.RowCount = row
	}
	if col > ws.ColumnCount {
		ws.ColumnCount = col
	}
}
