// Package sheetsplice applies structural edits (row and column deletion,
// insertion and moves) to a worksheet while keeping merged regions,
// conditional formatting, layout metadata and references consistent.
package sheetsplice

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/formula"
)

// Options configures edit behavior.
type Options struct {
	// CollapsedFormulas decides how formula references into a deleted span
	// are written. Empty means formula.KeepText.
	CollapsedFormulas formula.CollapsePolicy
	// RebaseCellFormulas specifies whether formulas stored in cells are
	// rewritten along with the overlays.
	// If nil, defaults to true.
	RebaseCellFormulas *bool
	// Logger receives per-phase debug entries. If nil, nothing is logged.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default edit options.
func DefaultOptions() Options {
	return Options{
		CollapsedFormulas: formula.KeepText,
	}
}

// ShouldRebaseCellFormulas returns whether cell formulas are rewritten.
func (o Options) ShouldRebaseCellFormulas() bool {
	if o.RebaseCellFormulas != nil {
		return *o.RebaseCellFormulas
	}
	return true
}

// CollapsePolicy returns the effective policy for collapsed formula references.
func (o Options) CollapsePolicy() formula.CollapsePolicy {
	if o.CollapsedFormulas == "" {
		return formula.KeepText
	}
	return o.CollapsedFormulas
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}
