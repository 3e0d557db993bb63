package helper

import "strings"

// referenceAnchor marks a raw parameter as a REFERENCE (a pointer path
// into the event) rather than a literal VALUE.
const referenceAnchor = "$"

// ParamType classifies a Parameter as a literal or a pointer path.
type ParamType int

const (
	Value ParamType = iota
	Reference
)

func (t ParamType) String() string {
	if t == Reference {
		return "REFERENCE"
	}
	return "VALUE"
}

// Parameter is a tagged value produced by parsing a helper
// invocation's textual argument.
type Parameter struct {
	Type  ParamType
	Value string
}

// ParseParameter classifies raw by its leading anchor character.
// Escaping the anchor in literal values is the caller's responsibility.
func ParseParameter(raw string) Parameter {
	if strings.HasPrefix(raw, referenceAnchor) {
		return Parameter{Type: Reference, Value: strings.TrimPrefix(raw, referenceAnchor)}
	}
	return Parameter{Type: Value, Value: raw}
}

// ParseParameters classifies a full raw argument list in order.
func ParseParameters(raws []string) []Parameter {
	params := make([]Parameter, len(raws))
	for i, raw := range raws {
		params[i] = ParseParameter(raw)
	}
	return params
}
