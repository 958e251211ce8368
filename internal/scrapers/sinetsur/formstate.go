package sinetsur

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// FormState maps a hidden field's name to its current value.
type FormState map[string]string

// ExtractFormState reads the current value of each named input in the
// document. Inputs that are not present are omitted, an input without a
// value attribute is recorded with an empty value.
func ExtractFormState(doc *goquery.Document, names []string) FormState {
	state := FormState{}
	for _, name := range names {
		input := doc.Find(fmt.Sprintf(`input[name="%s"]`, name)).First()
		if input.Length() == 0 {
			continue
		}
		state[name] = input.AttrOr("value", "")
	}
	return state
}
