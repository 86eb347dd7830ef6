package dom

import (
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML document into the local tree representation.
// The returned document's Root is the <body> element; <style> contents from
// anywhere in the document are collected into Stylesheets in document order.
// <script> elements and comments are dropped.
func Parse(input string) (*Document, error) {
	parsed, err := xhtml.Parse(strings.NewReader(input))
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	collectStylesheets(parsed, doc)

	body := findElement(parsed, atom.Body)
	root := NewElement("body")
	if body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if converted := convert(c); converted != nil {
				root.AddChild(converted)
			}
		}
	}
	doc.Root = root
	return doc, nil
}

func collectStylesheets(n *xhtml.Node, doc *Document) {
	if n.Type == xhtml.ElementNode && n.DataAtom == atom.Style {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.TextNode {
				sb.WriteString(c.Data)
			}
		}
		doc.Stylesheets = append(doc.Stylesheets, sb.String())
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStylesheets(c, doc)
	}
}

func findElement(n *xhtml.Node, a atom.Atom) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// convert maps an x/net/html node to the local node type.
// Returns nil for nodes that do not participate in layout.
func convert(n *xhtml.Node) *Node {
	switch n.Type {
	case xhtml.TextNode:
		return NewText(n.Data)
	case xhtml.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return nil
		}
		el := NewElement(n.Data)
		for _, attr := range n.Attr {
			el.SetAttribute(attr.Key, attr.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if converted := convert(c); converted != nil {
				el.AddChild(converted)
			}
		}
		return el
	default:
		return nil
	}
}
