// Package scrape implements ports.QuoteSource adapters for the sites the
// collector harvests quotes from. Each source fetches pages through the
// resilient clients.Client and maps external failures to domain errors.
//
// Sources return raw, source-attributed records in page order. Cleaning,
// deduplication, and sorting happen downstream in the pipeline package;
// sources only apply cheap per-line gates to avoid shipping obvious noise.
package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// speakerPattern matches dialogue lines attributed to the character,
// e.g. "Red: ...", "Reddington: ...", "Raymond Reddington: ...".
var speakerPattern = regexp.MustCompile(`(?i)^(?:Raymond\s+)?(?:Red|Reddington|Mr\.?\s*Reddington)\s*:\s*`)

// minLineLength filters out interjections and stage noise. Lines shorter
// than this are never worth keeping, regardless of attribution.
const minLineLength = 15

// extractSpokenLine returns the quote portion of an attributed dialogue
// line, or "" when the line is not spoken by the character or too short.
func extractSpokenLine(line string) string {
	loc := speakerPattern.FindStringIndex(line)
	if loc == nil {
		return ""
	}

	text := strings.TrimSpace(line[loc[1]:])
	if len(text) < minLineLength {
		return ""
	}

	return text
}

// nodeText returns the concatenated text content of an HTML node tree,
// with element boundaries joined by single spaces.
func nodeText(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(b.String()), " ")
}

// findElements returns all descendant elements with the given tag name,
// in document order.
func findElements(n *html.Node, tag string) []*html.Node {
	var found []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return found
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}

	return ""
}

// hasClass reports whether the element carries the given CSS class.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}

	return false
}

// findElementByClass returns the first descendant element with the given
// tag and class, or nil.
func findElementByClass(n *html.Node, tag, class string) *html.Node {
	for _, el := range findElements(n, tag) {
		if hasClass(el, class) {
			return el
		}
	}

	return nil
}
