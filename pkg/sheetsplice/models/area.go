package models

import "github.com/xuri/excelize/v2"

// Area represents inclusive cell coordinate bounds.
// It is used for merged regions, the auto-filter and print areas.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Anchor returns the top-left cell of the area.
func (a Area) Anchor() CellKey {
	return CellKey{Row: a.R1, Col: a.C1}
}

// Contains reports whether the cell lies inside the area.
func (a Area) Contains(row, col int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}

// Overlaps reports whether two areas share at least one cell.
func (a Area) Overlaps(b Area) bool {
	return a.R1 <= b.R2 && b.R1 <= a.R2 && a.C1 <= b.C2 && b.C1 <= a.C2
}

// IsSingleCell reports whether the area covers one cell or less.
func (a Area) IsSingleCell() bool {
	return a.R2 <= a.R1 && a.C2 <= a.C1
}

// Ref formats the area as an A1-style range such as "B2:D4".
// Invalid coordinates yield an empty string.
func (a Area) Ref() string {
	start, err := excelize.CoordinatesToCellName(a.C1, a.R1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(a.C2, a.R2)
	if err != nil {
		return ""
	}
	return start + ":" + end
}
