package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the raw text of a node and all of its descendants.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, false)
	return buffer.String()
}

// GetStrippedText returns the text of a node where every text node has its
// surrounding whitespace removed before being concatenated.
//
// ex. `<td> 12.345.678-9 <label> Juan </label></td>` -> "12.345.678-9Juan"
func GetStrippedText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, true)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer, strip bool) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if strip {
			buffer.WriteString(strings.TrimSpace(node.Data))
			return
		}
		buffer.WriteString(node.Data)
		return
	}
	// script/style contents are not rendered text
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer, strip)
		child = child.NextSibling
	}
}

// StrippedText is GetStrippedText over every node in the selection.
func StrippedText(sel *goquery.Selection) string {
	var out strings.Builder
	for _, n := range sel.Nodes {
		out.WriteString(GetStrippedText(n))
	}
	return out.String()
}
