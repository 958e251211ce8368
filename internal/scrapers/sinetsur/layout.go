// layout.go contains every literal the portal's markup forces on us: form
// field names, element ids and class names. A change on the portal's side
// should only ever require changes in this file.

package sinetsur

// hidden fields ASP.NET regenerates on every page load, they must be echoed
// back unmodified on the login postback
const (
	field_viewstate           = "__VIEWSTATE"
	field_event_validation    = "__EVENTVALIDATION"
	field_viewstate_generator = "__VIEWSTATEGENERATOR"
)

// RequiredFormFields are the hidden fields the login postback must carry.
var RequiredFormFields = []string{
	field_viewstate,
	field_event_validation,
	field_viewstate_generator,
}

const (
	field_username = "ctl00$ContentPlaceHolder1$txtNombreUsuario"
	field_password = "ctl00$ContentPlaceHolder1$txtPass"
	// the submit button is an <input type="image">, browsers send the click
	// position relative to the image along with the form
	field_submit_x = "ctl00$ContentPlaceHolder1$btnEntrar.x"
	field_submit_y = "ctl00$ContentPlaceHolder1$btnEntrar.y"

	submit_click_x = "50"
	submit_click_y = "10"
)

const (
	selector_logged_in_user = "h4#ContentPlaceHolder1_txtNombreUsuario"
	selector_unit_input     = "input#ctl00_ContentPlaceHolder1_RadToolBar1_i0_cbxUnidades_Input"
	selector_selected_tab   = "a.rtsLink.rtsSelected"
	selector_grid_container = "div#ctl00_ContentPlaceHolder1_dgv_categorizados_GridData"
	// telerik RadGrid renders data rows alternating between these two classes,
	// headers and group separators use other classes
	selector_grid_rows = "tr.rgRow, tr.rgAltRow"

	expected_unit = "INFANTIL"
	expected_tab  = "Categorizados"
)

const (
	// zero-based index of the "subunidad" column
	column_subunit = 7
	min_columns    = column_subunit + 1

	marker_text  = "PED"
	marker_title = "PEDIATRIA"
)
