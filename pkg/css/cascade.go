package css

import (
	"sort"
	"strings"

	"folio/pkg/dom"
)

// Rule is a parsed style rule: one selector plus its declarations.
// Selector lists are split into one Rule per selector during parsing.
type Rule struct {
	Selector     Selector
	Declarations *Style
}

// Selector supports the subset the engine needs: universal, tag, class,
// and tag.class selectors.
type Selector struct {
	Tag         string // empty matches any tag
	Class       string // empty matches any class
	Specificity int
}

type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS text into a stylesheet. Unparseable rules are
// skipped rather than failing the whole sheet.
func ParseStylesheet(cssText string) *Stylesheet {
	cssText = stripComments(cssText)
	sheet := &Stylesheet{}

	for {
		open := strings.Index(cssText, "{")
		if open < 0 {
			break
		}
		closing := strings.Index(cssText[open:], "}")
		if closing < 0 {
			break
		}
		closing += open

		selectors := cssText[:open]
		body := cssText[open+1 : closing]
		cssText = cssText[closing+1:]

		decls := NewStyle()
		ParseDeclarations(decls, body)

		for _, selText := range strings.Split(selectors, ",") {
			sel, ok := parseSelector(selText)
			if !ok {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Declarations: decls})
		}
	}
	return sheet
}

func stripComments(s string) string {
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			return s
		}
		end := strings.Index(s[start+2:], "*/")
		if end < 0 {
			return s[:start]
		}
		s = s[:start] + s[start+2+end+2:]
	}
}

func parseSelector(s string) (Selector, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, false
	}
	if s == "*" {
		return Selector{}, true
	}

	sel := Selector{}
	if dot := strings.Index(s, "."); dot >= 0 {
		sel.Tag = s[:dot]
		sel.Class = s[dot+1:]
	} else {
		sel.Tag = s
	}
	if sel.Tag != "" {
		sel.Specificity += 1
	}
	if sel.Class != "" {
		sel.Specificity += 10
	}
	return sel, true
}

// Matches reports whether the selector matches the node.
func (sel Selector) Matches(node *dom.Node) bool {
	if node.Type != dom.ElementNode {
		return false
	}
	if sel.Tag != "" && sel.Tag != node.TagName {
		return false
	}
	if sel.Class != "" && !node.HasClass(sel.Class) {
		return false
	}
	return true
}

// ComputeStyle computes the final style for a node by applying the cascade:
// matching rules lowest specificity first, then inline styles on top.
func ComputeStyle(node *dom.Node, stylesheets []*Stylesheet) *Style {
	finalStyle := NewStyle()

	allRules := make([]Rule, 0)
	for _, sheet := range stylesheets {
		for _, rule := range sheet.Rules {
			if rule.Selector.Matches(node) {
				allRules = append(allRules, rule)
			}
		}
	}

	sort.SliceStable(allRules, func(i, j int) bool {
		return allRules[i].Selector.Specificity < allRules[j].Selector.Specificity
	})

	for _, rule := range allRules {
		for property, value := range rule.Declarations.Properties {
			finalStyle.Set(property, value)
		}
	}

	// Inline styles win over everything in the sheet subset we support
	if styleAttr, ok := node.GetAttribute("style"); ok {
		inlineStyle := ParseInlineStyle(styleAttr)
		for property, value := range inlineStyle.Properties {
			finalStyle.Set(property, value)
		}
	}

	return finalStyle
}
