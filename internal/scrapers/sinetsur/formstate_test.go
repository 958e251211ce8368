package sinetsur

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFormState(t *testing.T) {
	doc := parseDoc(t, loginPageTest)

	state := ExtractFormState(doc, RequiredFormFields)
	require.Equal(t, FormState{
		"__VIEWSTATE":          "/wEPDwUKMTY1NDU2MTA1MmRkZ7lJ3nJ0bR1pQ==",
		"__VIEWSTATEGENERATOR": "C2EE9ABB",
		"__EVENTVALIDATION":    "/wEdAATg0Lc1pUQ1uKQ9Xw==",
	}, state)
}

func TestExtractFormStateOmitsMissingFields(t *testing.T) {
	contents := strings.Replace(
		string(loginPageTest),
		`<input type="hidden" name="__EVENTVALIDATION" id="__EVENTVALIDATION" value="/wEdAATg0Lc1pUQ1uKQ9Xw==" />`,
		"",
		1,
	)
	doc := parseDoc(t, []byte(contents))

	state := ExtractFormState(doc, RequiredFormFields)
	require.Len(t, state, 2)
	_, ok := state["__EVENTVALIDATION"]
	require.False(t, ok)
}

func TestExtractFormStateEmptyValue(t *testing.T) {
	doc := parseDoc(t, []byte(`<form><input type="hidden" name="__VIEWSTATE" /></form>`))

	state := ExtractFormState(doc, RequiredFormFields)
	require.Equal(t, FormState{"__VIEWSTATE": ""}, state)
}
