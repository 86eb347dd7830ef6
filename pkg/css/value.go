package css

import "strings"

// ValueKind classifies the shape of a raw style value. Plugins that need a
// normalized text value resolve the raw string through ParseValue exactly
// once, at capture time, instead of re-dispatching on the shape later.
type ValueKind int

const (
	ValueIdent ValueKind = iota
	ValueString
	ValueUnrecognized
)

// Value is a closed variant over the value shapes the style system produces:
// a named identifier, a quoted literal string, or anything else.
type Value struct {
	Kind ValueKind
	Text string // normalized text; empty for ValueUnrecognized
}

// ParseValue resolves a raw property value into a Value.
// Quoted values become ValueString with the quotes stripped; identifier-shaped
// values become ValueIdent; everything else is ValueUnrecognized with no text.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{Kind: ValueUnrecognized}
	}

	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') ||
			(raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			return Value{Kind: ValueString, Text: raw[1 : len(raw)-1]}
		}
	}

	if isIdent(raw) {
		return Value{Kind: ValueIdent, Text: raw}
	}
	return Value{Kind: ValueUnrecognized}
}

func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
