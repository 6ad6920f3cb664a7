package sheetsplice

import (
	"fmt"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

// DiagnosticKind classifies an expected side effect of a valid edit.
type DiagnosticKind string

const (
	// CollapsedReference is a formula reference whose target was deleted.
	CollapsedReference DiagnosticKind = "collapsed_reference"
	// RangeDropped is one sub-range of a range list that no longer exists.
	RangeDropped DiagnosticKind = "range_dropped"
	// RuleRemoved is a conditional formatting rule whose range list emptied.
	RuleRemoved DiagnosticKind = "rule_removed"
	// DegenerateMergeDropped is a merge reduced to a single cell.
	DegenerateMergeDropped DiagnosticKind = "degenerate_merge_dropped"
	// MergeRemoved is a merge whose cells were all deleted.
	MergeRemoved DiagnosticKind = "merge_removed"
	// MergeSplit is a merge torn apart by a move.
	MergeSplit DiagnosticKind = "merge_split"
	// AutoFilterRemoved means the auto-filter range was deleted.
	AutoFilterRemoved DiagnosticKind = "auto_filter_removed"
	// ValidationRemoved is a data validation whose range list emptied.
	ValidationRemoved DiagnosticKind = "validation_removed"
	// PrintAreaRemoved is a print area that was deleted.
	PrintAreaRemoved DiagnosticKind = "print_area_removed"
	// TableRemoved is a table whose range was deleted or left without data rows.
	TableRemoved DiagnosticKind = "table_removed"
	// TableColumnRemoved is a table column deleted with its sheet column.
	TableColumnRemoved DiagnosticKind = "table_column_removed"
)

// Diagnostic records one non-fatal outcome of an edit.
type Diagnostic struct {
	// Kind classifies the diagnostic.
	Kind DiagnosticKind `json:"kind"`
	// Target names the affected object, e.g. "conditional format D1:E10" or "cell B4".
	Target string `json:"target"`
	// Ref is the reference or range involved, as it read before the edit.
	Ref string `json:"ref,omitempty"`
	// Message is a human readable description.
	Message string `json:"message"`
}

// Report is returned by a successful edit.
type Report struct {
	Sheet       string       `json:"sheet"`
	Edit        models.Edit  `json:"edit"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Count returns the number of diagnostics of the given kind.
func (r *Report) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Report) add(kind DiagnosticKind, target, ref, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Kind:    kind,
		Target:  target,
		Ref:     ref,
		Message: fmt.Sprintf(format, args...),
	})
}
