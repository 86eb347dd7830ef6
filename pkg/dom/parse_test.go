package dom

import (
	"testing"
)

func TestParse_BodyAndStylesheets(t *testing.T) {
	doc, err := Parse(`<html><head><style>p { color: red }</style></head>
<body><p class="intro">Hello <b>world</b></p></body></html>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(doc.Stylesheets) != 1 {
		t.Fatalf("Expected 1 stylesheet, got %d", len(doc.Stylesheets))
	}
	if doc.Stylesheets[0] != "p { color: red }" {
		t.Errorf("Unexpected stylesheet content: %q", doc.Stylesheets[0])
	}

	var p *Node
	for _, child := range doc.Root.Children {
		if child.Type == ElementNode && child.TagName == "p" {
			p = child
		}
	}
	if p == nil {
		t.Fatal("Expected a <p> under the body root")
	}
	if cls, _ := p.GetAttribute("class"); cls != "intro" {
		t.Errorf("Expected class intro, got %q", cls)
	}
	if got := FirstNonEmptyText(p).Text; got != "Hello " {
		t.Errorf("Expected first text 'Hello ', got %q", got)
	}
}

func TestParse_SkipsScripts(t *testing.T) {
	doc, err := Parse(`<body><script>var x = 1;</script><p>text</p></body>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, child := range doc.Root.Children {
		if child.Type == ElementNode && child.TagName == "script" {
			t.Error("Script elements should be dropped from the tree")
		}
	}
}

func TestParse_FragmentWithoutBodyTag(t *testing.T) {
	doc, err := Parse(`<p>just a paragraph</p>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if FirstNonEmptyText(doc.Root) == nil {
		t.Error("Expected paragraph text under the root")
	}
}
