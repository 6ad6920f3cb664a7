package sheetsplice

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

// Phase is a step of a structural edit.
type Phase string

const (
	// PhaseIdle means no edit is in flight.
	PhaseIdle Phase = "idle"
	// PhaseSnapshotting copies the worksheet and captures metadata and merge anchors.
	PhaseSnapshotting Phase = "snapshotting"
	// PhaseShiftingCells moves cells and style overlays to their new positions.
	PhaseShiftingCells Phase = "shifting cells"
	// PhaseRebasingOverlays rewrites merges, rules, filters, tables and formulas.
	PhaseRebasingOverlays Phase = "rebasing overlays"
	// PhaseRestoring re-applies column and row metadata at the mapped positions.
	PhaseRestoring Phase = "restoring metadata"
)

// mutation carries the state of one edit in flight. All work happens on
// ws, a scratch copy of the caller's worksheet.
type mutation struct {
	ws     *models.Worksheet
	edit   models.Edit
	opts   Options
	report *Report
	phase  Phase
	log    logrus.FieldLogger
}

// Apply performs one structural edit on ws.
//
// The edit is validated first; an invalid edit returns an error wrapping
// ErrInvalidEdit and leaves ws untouched. Otherwise every phase runs on a
// scratch copy that replaces *ws only once all phases succeeded, so callers
// never observe a half-applied edit. Expected side effects such as removed
// rules or collapsed references are listed in the returned Report.
func Apply(ws *models.Worksheet, e models.Edit, opts Options) (*Report, error) {
	if err := Validate(ws, e); err != nil {
		return nil, err
	}
	report := &Report{Sheet: ws.Name, Edit: e}
	if e.IsNoop() {
		return report, nil
	}

	m := &mutation{
		edit:   e,
		opts:   opts,
		report: report,
		phase:  PhaseIdle,
		log:    opts.logger().WithFields(logrus.Fields{"sheet": ws.Name, "edit": e.String()}),
	}
	scratch, err := m.run(ws)
	if err != nil {
		return nil, err
	}
	*ws = *scratch
	m.log.WithField("diagnostics", len(report.Diagnostics)).Debug("edit committed")
	return report, nil
}

// ApplyAll applies edits in order, stopping at the first error. Edits that
// were applied before the failing one stay applied.
func ApplyAll(ws *models.Worksheet, edits []models.Edit, opts Options) ([]*Report, error) {
	reports := make([]*Report, 0, len(edits))
	for i, e := range edits {
		r, err := Apply(ws, e, opts)
		if err != nil {
			return reports, fmt.Errorf("edit %d of %d: %w", i+1, len(edits), err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (m *mutation) enter(p Phase) {
	m.phase = p
	m.log.WithField("phase", string(p)).Debug("entering phase")
}

func (m *mutation) run(ws *models.Worksheet) (*models.Worksheet, error) {
	e := m.edit
	m.enter(PhaseSnapshotting)
	extent := extentOf(ws, e.Axis)
	scratch, err := ws.Clone()
	if err != nil {
		return nil, &PhaseError{Phase: m.phase, Err: err}
	}
	m.ws = scratch
	meta := snapshotMetadata(scratch)
	anchors := captureAnchors(scratch)

	m.enter(PhaseShiftingCells)
	shiftCells(scratch, e)
	ensureMaps(scratch)

	m.enter(PhaseRebasingOverlays)
	m.resolveMerges(anchors)
	m.rebaseConditionalFormats()
	m.rebaseAutoFilter()
	m.rebaseTables()
	m.rebaseDataValidations()
	m.rebasePrintAreas()
	if m.opts.ShouldRebaseCellFormulas() {
		m.rebaseCellFormulas()
	}

	m.enter(PhaseRestoring)
	meta.restore(scratch, e)
	switch e.Op {
	case models.OpDelete:
		extent -= e.Count
	case models.OpInsert:
		extent += e.Count
	}
	if e.Axis == models.AxisRows {
		scratch.RowCount = extent
	} else {
		scratch.ColumnCount = extent
	}

	m.enter(PhaseIdle)
	return scratch, nil
}

func ensureMaps(ws *models.Worksheet) {
	if ws.Cells == nil {
		ws.Cells = make(map[models.CellKey]models.Cell)
	}
	if ws.StyleOverlay == nil {
		ws.StyleOverlay = make(map[models.CellKey]int)
	}
}
