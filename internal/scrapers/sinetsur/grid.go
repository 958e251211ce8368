package sinetsur

import (
	"fmt"
	"sinetsur-notifier/lib/textutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type DiagnosticKind int

const (
	DIAG_UNIT_SELECTOR_NOT_FOUND DiagnosticKind = iota
	DIAG_WRONG_ACTIVE_UNIT
	DIAG_TAB_NOT_ACTIVE
	DIAG_GRID_NOT_FOUND
	DIAG_TABLE_NOT_FOUND
	DIAG_TABLE_BODY_NOT_FOUND
)

func (k DiagnosticKind) String() string {
	switch k {
	case DIAG_UNIT_SELECTOR_NOT_FOUND:
		return "unit selector not found"
	case DIAG_WRONG_ACTIVE_UNIT:
		return "wrong active unit"
	case DIAG_TAB_NOT_ACTIVE:
		return "expected tab not active"
	case DIAG_GRID_NOT_FOUND:
		return "grid container not found"
	case DIAG_TABLE_NOT_FOUND:
		return "table not found"
	case DIAG_TABLE_BODY_NOT_FOUND:
		return "table body not found"
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// Diagnostic is returned when the board is not in the state extraction
// expects. It is an expected, recoverable condition rather than a defect.
type Diagnostic struct {
	Kind DiagnosticKind
	// Observed is what was found instead, if anything.
	Observed string
}

func (d Diagnostic) Error() string {
	if d.Observed == "" {
		return d.Kind.String()
	}
	return fmt.Sprintf("%s: %q", d.Kind.String(), d.Observed)
}

// Row is the ordered list of cells of one grid row.
type Row struct {
	cells *goquery.Selection
}

func NewRow(tr *goquery.Selection) Row {
	return Row{cells: tr.Find("td")}
}

func (r Row) Len() int {
	return r.cells.Length()
}

func (r Row) Cell(i int) *goquery.Selection {
	return r.cells.Eq(i)
}

// GridLocator finds the categorized patients grid on the intake board, it
// refuses to return rows when the board is showing a different unit or tab
// so that the wrong category is never silently extracted.
type GridLocator struct {
	UnitSelector string
	ExpectedUnit string
	TabSelector  string
	ExpectedTab  string
	GridSelector string
	RowsSelector string
}

func NewGridLocator() GridLocator {
	return GridLocator{
		UnitSelector: selector_unit_input,
		ExpectedUnit: expected_unit,
		TabSelector:  selector_selected_tab,
		ExpectedTab:  expected_tab,
		GridSelector: selector_grid_container,
		RowsSelector: selector_grid_rows,
	}
}

// ActiveUnit returns the normalized value of the unit combo-box and whether
// the combo-box was found at all.
func (l GridLocator) ActiveUnit(doc *goquery.Document) (string, bool) {
	input := doc.Find(l.UnitSelector).First()
	if input.Length() == 0 {
		return "", false
	}
	return textutil.NormalizeToken(input.AttrOr("value", "")), true
}

// Locate returns the data rows of the grid in document order, or a
// Diagnostic describing the first precondition that did not hold.
func (l GridLocator) Locate(doc *goquery.Document) ([]Row, error) {
	unit, found := l.ActiveUnit(doc)
	if !found {
		return nil, Diagnostic{Kind: DIAG_UNIT_SELECTOR_NOT_FOUND}
	}
	if unit != textutil.NormalizeToken(l.ExpectedUnit) {
		return nil, Diagnostic{Kind: DIAG_WRONG_ACTIVE_UNIT, Observed: unit}
	}

	tab := doc.Find(l.TabSelector).First()
	if tab.Length() == 0 {
		return nil, Diagnostic{Kind: DIAG_TAB_NOT_ACTIVE}
	}
	tabText := textutil.CollapseWhitespace(tab.Text())
	if !strings.Contains(tabText, l.ExpectedTab) {
		return nil, Diagnostic{Kind: DIAG_TAB_NOT_ACTIVE, Observed: tabText}
	}

	grid := doc.Find(l.GridSelector).First()
	if grid.Length() == 0 {
		return nil, Diagnostic{Kind: DIAG_GRID_NOT_FOUND}
	}
	table := grid.Find("table").First()
	if table.Length() == 0 {
		return nil, Diagnostic{Kind: DIAG_TABLE_NOT_FOUND}
	}
	body := table.Find("tbody").First()
	if body.Length() == 0 {
		return nil, Diagnostic{Kind: DIAG_TABLE_BODY_NOT_FOUND}
	}

	var rows []Row
	body.Find(l.RowsSelector).Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, NewRow(tr))
	})
	return rows, nil
}
