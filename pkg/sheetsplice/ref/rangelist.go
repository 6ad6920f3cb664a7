package ref

import (
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

// ParseRangeList parses a space-separated range list.
func ParseRangeList(list string) ([]models.Area, error) {
	var areas []models.Area
	for _, part := range strings.Fields(list) {
		a, err := ParseRange(part)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, nil
}

// RebaseRangeList rebases every sub-range of a space-separated range list.
// It returns the surviving ranges joined by spaces and the sub-ranges that
// were dropped. An empty result means the owner of the list must be removed.
// Sub-ranges that do not parse are kept verbatim.
func RebaseRangeList(list string, e models.Edit) (string, []string) {
	var kept, dropped []string
	seen := make(map[string]bool)
	for _, part := range strings.Fields(list) {
		a, shape, err := parseShaped(part)
		if err != nil {
			if !seen[part] {
				seen[part] = true
				kept = append(kept, part)
			}
			continue
		}
		na, outcome := RebaseArea(a, e)
		if outcome.Dropped() {
			dropped = append(dropped, part)
			continue
		}
		text := formatPart(na, shape, !strings.Contains(part, ":"))
		if seen[text] {
			continue
		}
		seen[text] = true
		kept = append(kept, text)
	}
	return strings.Join(kept, " "), dropped
}

// formatPart keeps single-cell parts in their short form and whole spans
// as "C:D" or "2:5".
func formatPart(a models.Area, shape Shape, single bool) string {
	if single && a.IsSingleCell() {
		if s, err := FormatCellRef(a.C1, a.R1); err == nil {
			return s
		}
	}
	return FormatRange(a, shape)
}
