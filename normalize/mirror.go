package normalize

import (
	"fmt"

	"github.com/dlvinn/tashih/model"
	"github.com/dlvinn/tashih/script"
)

// TableMirror reverses the cell order of table rows for RTL presentation.
// A table authored left-to-right has its logical first column on the
// visual left; reversing each row puts it on the visual right where an
// RTL reader expects it.
type TableMirror struct {
	classifier *script.Classifier
}

// NewTableMirror returns a TableMirror gated on the given classifier.
func NewTableMirror(c *script.Classifier) *TableMirror {
	return &TableMirror{classifier: c}
}

// Mirror reverses the cell order of every row with more than one cell,
// in place. The gate is checked once per table, not per row: if no cell
// classifies as Arabic, no row is touched. The reordering is pure: cell
// identity, contents, and internal paragraph structure are unaffected.
// It reports whether the table was mirrored; an error means a row's cell
// collection could not be reordered, which indicates a structurally
// invalid document.
func (m *TableMirror) Mirror(t model.Table, c *FixCounters) (bool, error) {
	if !m.hasArabicCell(t) {
		return false, nil
	}

	for i, row := range t.Rows() {
		cells := row.Cells()
		if len(cells) <= 1 {
			continue
		}
		if err := row.Reverse(); err != nil {
			return false, fmt.Errorf("mirroring row %d: %w", i, err)
		}
		c.TableCellsMirrored += len(cells)
	}

	return true, nil
}

func (m *TableMirror) hasArabicCell(t model.Table) bool {
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			if m.classifier.IsArabic(cell.Text()) {
				return true
			}
		}
	}
	return false
}
