package sinetsur

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func rowIds(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = cellText(r.Cell(0))
	}
	return ids
}

func TestLocateRows(t *testing.T) {
	doc := parseDoc(t, boardPageTest)

	rows, err := NewGridLocator().Locate(doc)
	require.NoError(t, err)
	// group headers and footers are not data rows
	require.Equal(t, []string{"A1", "B1", "A2", "C1", "A1", "D1"}, rowIds(rows))
	require.Equal(t, 9, rows[0].Len())
	require.Equal(t, 6, rows[5].Len())
}

func TestActiveUnit(t *testing.T) {
	unit, found := NewGridLocator().ActiveUnit(parseDoc(t, boardPageTest))
	require.True(t, found)
	require.Equal(t, "INFANTIL", unit)

	_, found = NewGridLocator().ActiveUnit(parseDoc(t, loginPageTest))
	require.False(t, found)
}

func TestLocateDiagnostics(t *testing.T) {
	cases := []struct {
		name     string
		old      string
		new      string
		kind     DiagnosticKind
		observed string
	}{
		{
			name: "missing unit selector",
			old:  `id="ctl00_ContentPlaceHolder1_RadToolBar1_i0_cbxUnidades_Input"`,
			new:  `id="something_else"`,
			kind: DIAG_UNIT_SELECTOR_NOT_FOUND,
		},
		{
			name:     "wrong unit",
			old:      `value=" Infantil "`,
			new:      `value="Urgencia"`,
			kind:     DIAG_WRONG_ACTIVE_UNIT,
			observed: "URGENCIA",
		},
		{
			name: "no selected tab",
			old:  `class="rtsLink rtsSelected"`,
			new:  `class="rtsLink"`,
			kind: DIAG_TAB_NOT_ACTIVE,
		},
		{
			name:     "other tab selected",
			old:      `Categorizados (5)`,
			new:      `Atendidos (2)`,
			kind:     DIAG_TAB_NOT_ACTIVE,
			observed: "Atendidos (2)",
		},
		{
			name: "missing grid",
			old:  `id="ctl00_ContentPlaceHolder1_dgv_categorizados_GridData"`,
			new:  `id="ctl00_ContentPlaceHolder1_dgv_espera_GridData"`,
			kind: DIAG_GRID_NOT_FOUND,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			doc := boardWith(t, test.old, test.new)

			rows, err := NewGridLocator().Locate(doc)
			require.Nil(t, rows)

			var diag Diagnostic
			require.True(t, errors.As(err, &diag))
			require.Equal(t, test.kind, diag.Kind)
			require.Equal(t, test.observed, diag.Observed)
		})
	}
}

func TestLocateMissingTable(t *testing.T) {
	page := `<input id="unit" value="INFANTIL" />
		<a class="rtsLink rtsSelected">Categorizados</a>
		<div id="grid">%s</div>`
	locator := NewGridLocator()
	locator.UnitSelector = "input#unit"
	locator.GridSelector = "div#grid"

	{
		_, err := locator.Locate(parseDoc(t, []byte(fmt.Sprintf(page, "<p>sin datos</p>"))))
		require.Equal(t, Diagnostic{Kind: DIAG_TABLE_NOT_FOUND}, err)
	}
	{
		// an empty table is the only way to end up without a body, the
		// parser inserts <tbody> as soon as there is a row
		_, err := locator.Locate(parseDoc(t, []byte(fmt.Sprintf(page, "<table></table>"))))
		require.Equal(t, Diagnostic{Kind: DIAG_TABLE_BODY_NOT_FOUND}, err)
	}
	{
		rows, err := locator.Locate(parseDoc(t, []byte(fmt.Sprintf(page, `<table><tr class="rgRow"><td>X</td></tr></table>`))))
		require.NoError(t, err)
		require.Equal(t, []string{"X"}, rowIds(rows))
	}
}

func TestDiagnosticError(t *testing.T) {
	require.Equal(t, "grid container not found", Diagnostic{Kind: DIAG_GRID_NOT_FOUND}.Error())
	require.Equal(
		t,
		`wrong active unit: "URGENCIA"`,
		Diagnostic{Kind: DIAG_WRONG_ACTIVE_UNIT, Observed: "URGENCIA"}.Error(),
	)
}
