package sheetsplice

import (
	"maps"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

// metaSnapshot holds column and row metadata keyed by pre-edit position.
type metaSnapshot struct {
	columns map[int]models.ColumnMeta
	rows    map[int]models.RowMeta
}

// snapshotMetadata captures customized column and row metadata.
// Entries that carry no customization are not kept.
func snapshotMetadata(ws *models.Worksheet) metaSnapshot {
	s := metaSnapshot{
		columns: maps.Clone(ws.Columns),
		rows:    maps.Clone(ws.Rows),
	}
	maps.DeleteFunc(s.columns, func(_ int, m models.ColumnMeta) bool { return m.IsDefault() })
	maps.DeleteFunc(s.rows, func(_ int, m models.RowMeta) bool { return m.IsDefault() })
	return s
}

// restore writes the snapshot back at post-edit positions. Metadata of
// deleted positions is dropped; inserted positions get none.
func (s metaSnapshot) restore(ws *models.Worksheet, e models.Edit) {
	columns, rows := s.columns, s.rows
	if e.Axis == models.AxisColumns {
		columns = rekeyPositions(columns, e)
	} else {
		rows = rekeyPositions(rows, e)
	}
	ws.Columns = nonNil(columns)
	ws.Rows = nonNil(rows)
}

func nonNil[V any](m map[int]V) map[int]V {
	if m == nil {
		return make(map[int]V)
	}
	return m
}
