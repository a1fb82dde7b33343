package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags are the formatting elements TVmaze uses in show summaries.
var allowedTags = map[atom.Atom]bool{
	atom.P:      true,
	atom.Br:     true,
	atom.B:      true,
	atom.Strong: true,
	atom.I:      true,
	atom.Em:     true,
	atom.U:      true,
	atom.Ul:     true,
	atom.Ol:     true,
	atom.Li:     true,
}

// droppedTags are removed together with their content.
var droppedTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Template: true,
	atom.Noscript: true,
}

// SanitizeSummary keeps the formatting markup of a summary and strips everything else.
// Allowed elements lose all attributes; other elements are unwrapped to their text.
func SanitizeSummary(summary string) string {
	if summary == "" {
		return ""
	}

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(summary), context)
	if err != nil {
		return html.EscapeString(summary)
	}

	var b strings.Builder
	for _, n := range nodes {
		writeSanitized(&b, n)
	}
	return b.String()
}

func writeSanitized(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		if droppedTags[n.DataAtom] {
			return
		}
	default:
		// Comments and doctypes carry nothing displayable.
		return
	}

	allowed := allowedTags[n.DataAtom]
	if allowed {
		b.WriteString("<" + n.Data + ">")
	}
	if allowed && n.DataAtom == atom.Br {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeSanitized(b, c)
	}
	if allowed {
		b.WriteString("</" + n.Data + ">")
	}
}

// PlainSummary reduces a summary to its visible text with whitespace collapsed,
// for terminal output.
func PlainSummary(summary string) string {
	if summary == "" {
		return ""
	}

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(summary), context)
	if err != nil {
		return strings.Join(strings.Fields(summary), " ")
	}

	var b strings.Builder
	for _, n := range nodes {
		writeText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if droppedTags[n.DataAtom] {
			return
		}
	default:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	// Block boundaries separate words.
	if n.DataAtom == atom.P || n.DataAtom == atom.Br || n.DataAtom == atom.Li {
		b.WriteByte(' ')
	}
}
