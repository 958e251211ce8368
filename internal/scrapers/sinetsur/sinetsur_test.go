package sinetsur

import (
	"bytes"
	"strings"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
)

//go:embed testdata/login_page.html
var loginPageTest []byte

//go:embed testdata/board_page.html
var boardPageTest []byte

func parseDoc(t testing.TB, contents []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// boardWith returns the board fixture with every occurrence of old replaced.
func boardWith(t testing.TB, old, new string) *goquery.Document {
	t.Helper()
	original := string(boardPageTest)
	if !strings.Contains(original, old) {
		t.Fatalf("board fixture does not contain %q", old)
	}
	return parseDoc(t, []byte(strings.ReplaceAll(original, old, new)))
}
