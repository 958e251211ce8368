package sinetsur

import (
	"sinetsur-notifier/internal/seenset"
	"sinetsur-notifier/lib/htmlutil"
	"sinetsur-notifier/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Record is a patient row that matched the category filter.
type Record struct {
	// Id is the text of the first column (the patient's RUT).
	Id     string
	Fields []string
}

// RecordExtractor filters grid rows down to the ones tagged with the
// pediatric sub-unit marker and projects them into Records.
type RecordExtractor struct {
	MarkerColumn int
	MinColumns   int
	MarkerText   string
	MarkerTitle  string
}

func NewRecordExtractor() RecordExtractor {
	return RecordExtractor{
		MarkerColumn: column_subunit,
		MinColumns:   min_columns,
		MarkerText:   marker_text,
		MarkerTitle:  marker_title,
	}
}

// Matches reports whether the row carries the sub-unit marker. The portal
// renders the marker either as the short code ("PED") or only in the tooltip
// ("...PEDIATRIA..."), so both are checked.
func (e RecordExtractor) Matches(row Row) bool {
	if row.Len() < e.MinColumns || row.Len() <= e.MarkerColumn {
		return false
	}
	// rows without a marker are patients that were not triaged into a
	// sub-unit yet
	marker := row.Cell(e.MarkerColumn).Find("span").First()
	if marker.Length() == 0 {
		return false
	}

	text := textutil.NormalizeToken(htmlutil.StrippedText(marker))
	if text == textutil.NormalizeToken(e.MarkerText) {
		return true
	}
	return textutil.ContainsFold(marker.AttrOr("title", ""), e.MarkerTitle)
}

// Extract returns the rows that match the marker and are not in seen, in
// row order. Every returned id is added to seen before the next row is
// looked at, so a row repeated further down the same page is dropped.
func (e RecordExtractor) Extract(rows []Row, seen *seenset.Set) []Record {
	var records []Record
	for _, row := range rows {
		if !e.Matches(row) {
			continue
		}

		id := htmlutil.StrippedText(row.Cell(0))
		if seen.Contains(id) {
			continue
		}

		records = append(records, Record{
			Id:     id,
			Fields: e.fields(row),
		})
		seen.Add(id)
	}
	return records
}

func (e RecordExtractor) fields(row Row) []string {
	fields := make([]string, row.Len())
	for i := 0; i < row.Len(); i++ {
		fields[i] = cellText(row.Cell(i))
	}
	return fields
}

// cells sometimes wrap the display value in a <label> next to hidden
// markup, when that is the case only the label is wanted
func cellText(cell *goquery.Selection) string {
	label := cell.Find("label").First()
	if label.Length() > 0 {
		return htmlutil.StrippedText(label)
	}
	return htmlutil.StrippedText(cell)
}
