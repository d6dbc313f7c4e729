package parse

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// nodeText concatenates all text nodes under node.
func nodeText(node *html.Node) string {
	var buffer bytes.Buffer
	collectText(node, &buffer)
	return buffer.String()
}

func collectText(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buffer)
	}
}

// cleanText normalizes extracted text: non-printable characters become
// spaces, surrounding whitespace is trimmed and inner whitespace runs
// collapse to a single space. Scraped markup routinely pads values with
// newlines and indentation.
func cleanText(s string) string {
	var printable strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) {
			printable.WriteRune(c)
		} else {
			printable.WriteRune(' ')
		}
	}
	s = strings.TrimSpace(printable.String())
	return innerWhitespace.ReplaceAllString(s, " ")
}
