package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestStrippedText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<table><tr>
			<td id="a">
				12.345.678-9
				<label> Juan  Perez </label>
				<script>var x = 1;</script>
			</td>
			<td id="b"><span title="x">  PED </span></td>
		</tr></table>`))
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "12.345.678-9Juan  Perez", StrippedText(doc.Find("#a")))
	require.Equal(t, "PED", StrippedText(doc.Find("#b span")))
	require.Equal(t, "", StrippedText(doc.Find("#missing")))
	require.Contains(t, GetText(doc.Find("#a").Nodes[0]), " Juan  Perez ")
}
