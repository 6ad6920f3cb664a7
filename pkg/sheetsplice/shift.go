package sheetsplice

import (
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
)

// shiftCells moves cell contents and style overlays along the edited axis.
// Cells inside a deleted span are dropped; inserted positions stay empty.
func shiftCells(ws *models.Worksheet, e models.Edit) {
	ws.Cells = rekeyCells(ws.Cells, e)
	ws.StyleOverlay = rekeyCells(ws.StyleOverlay, e)
}

func rekeyCells[V any](m map[models.CellKey]V, e models.Edit) map[models.CellKey]V {
	if m == nil {
		return nil
	}
	out := make(map[models.CellKey]V, len(m))
	for k, v := range m {
		col, row, ok := ref.RebaseCell(k.Col, k.Row, e)
		if !ok {
			continue
		}
		out[models.CellKey{Row: row, Col: col}] = v
	}
	return out
}

// rekeyPositions moves values keyed by a single position on the edited axis.
func rekeyPositions[V any](m map[int]V, e models.Edit) map[int]V {
	if m == nil {
		return nil
	}
	limit := ref.Limit(e.Axis)
	out := make(map[int]V, len(m))
	for p, v := range m {
		np, ok := ref.MapPosition(p, e)
		if !ok || np > limit {
			continue
		}
		out[np] = v
	}
	return out
}
