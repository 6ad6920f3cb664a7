package sheetsplice

import (
	"maps"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
)

// anchorCapture is the visible content of a merged region taken before the
// cell shift, so the shift cannot relocate the wrong cell into the anchor.
type anchorCapture struct {
	area       models.Area
	cell       models.Cell
	overlay    int
	hasOverlay bool
}

func captureAnchors(ws *models.Worksheet) []anchorCapture {
	captures := make([]anchorCapture, 0, len(ws.Merges))
	for _, m := range ws.Merges {
		key := m.Anchor()
		c := anchorCapture{area: m, cell: ws.Cells[key]}
		c.overlay, c.hasOverlay = ws.StyleOverlay[key]
		captures = append(captures, c)
	}
	return captures
}

// resolveMerges recomputes every merged region after the cell shift.
func (m *mutation) resolveMerges(captures []anchorCapture) {
	if len(captures) == 0 {
		return
	}
	ws := m.ws
	merges := make([]models.Area, 0, len(captures))
	for _, c := range captures {
		area, ok := m.rebaseMerge(c.area)
		if !ok {
			continue
		}
		m.restoreAnchor(c, area)
		if area.IsSingleCell() {
			cell, _ := ref.FormatCellRef(area.C1, area.R1)
			m.report.add(DegenerateMergeDropped, "merge "+c.area.Ref(), c.area.Ref(),
				"merged region reduced to the single cell %s and was unmerged", cell)
			continue
		}
		merges = append(merges, area)
	}
	ws.Merges = merges

	// non-anchor cells of a surviving region carry no overlay
	maps.DeleteFunc(ws.StyleOverlay, func(k models.CellKey, _ int) bool {
		for _, area := range merges {
			if area.Contains(k.Row, k.Col) && k != area.Anchor() {
				return true
			}
		}
		return false
	})
	m.log.Debugf("kept %d of %d merged regions", len(merges), len(captures))
}

// rebaseMerge returns the region after the edit, or false when the merge
// no longer exists.
func (m *mutation) rebaseMerge(area models.Area) (models.Area, bool) {
	e := m.edit
	if e.Op == models.OpMove {
		return m.moveMerge(area)
	}
	na, outcome := ref.RebaseArea(area, e)
	if outcome.Dropped() {
		m.report.add(MergeRemoved, "merge "+area.Ref(), area.Ref(),
			"every %s of the merged region was deleted", unit(e.Axis))
		return na, false
	}
	return na, true
}

// moveMerge keeps a region only when its positions stay contiguous.
func (m *mutation) moveMerge(area models.Area) (models.Area, bool) {
	e := m.edit
	lo, hi := &area.C1, &area.C2
	if e.Axis == models.AxisRows {
		lo, hi = &area.R1, &area.R2
	}
	first, last := *lo, *hi
	nlo, nhi := ref.Limit(e.Axis), 0
	for p := first; p <= last; p++ {
		np, _ := ref.MapPosition(p, e)
		nlo, nhi = min(nlo, np), max(nhi, np)
	}
	if nhi-nlo != last-first {
		m.report.add(MergeSplit, "merge "+area.Ref(), area.Ref(),
			"moving %s %d to %d tore the merged region apart; its cells were unmerged", unit(e.Axis), e.From, e.To)
		return area, false
	}
	// the old anchor's content now sits somewhere inside the region
	if np, _ := ref.MapPosition(first, e); np != nlo {
		stale := area.Anchor()
		if e.Axis == models.AxisRows {
			stale.Row = np
		} else {
			stale.Col = np
		}
		if c, ok := m.ws.Cells[stale]; ok {
			c.Value = nil
			m.ws.SetCell(stale.Row, stale.Col, c)
		}
	}
	*lo, *hi = nlo, nhi
	return area, true
}

// restoreAnchor writes the captured anchor content at the region's new anchor.
func (m *mutation) restoreAnchor(c anchorCapture, area models.Area) {
	ws := m.ws
	key := area.Anchor()
	if c.cell.IsEmpty() {
		delete(ws.Cells, key)
	} else {
		ws.Cells[key] = c.cell
	}
	if c.hasOverlay {
		ws.StyleOverlay[key] = c.overlay
	} else {
		delete(ws.StyleOverlay, key)
	}
}
