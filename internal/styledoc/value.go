package styledoc

import "strings"

// ValueKind discriminates the StyleValue union.
type ValueKind int

const (
	// ValueLiteral is a raw value with no registry counterpart. Literals
	// are the drift-eligible case.
	ValueLiteral ValueKind = iota
	// ValueToken resolves to an entry in the token registry.
	ValueToken
	// ValueComposite is a multi-part value (e.g. box-shadow layers).
	ValueComposite
)

// StyleValue is one declared property value after extraction. The zero
// value is an empty literal.
//
// Raw always holds the normalized source text. For ValueToken, TokenName
// holds the registry key and ByValue records whether resolution happened
// through var() reference syntax (false) or through value equality against
// the registry (true). By-value resolution keeps cross-dialect comparison
// honest while still letting the drift detector flag the missing reference
// syntax.
type StyleValue struct {
	Kind      ValueKind
	Raw       string
	Unit      string
	TokenName string
	ByValue   bool
	Children  []StyleValue
}

// Literal constructs a literal value.
func Literal(raw, unit string) StyleValue {
	return StyleValue{Kind: ValueLiteral, Raw: raw, Unit: unit}
}

// Token constructs a token reference resolved via var() syntax.
func Token(name, raw string) StyleValue {
	return StyleValue{Kind: ValueToken, Raw: raw, TokenName: name}
}

// TokenByValue constructs a token reference resolved by value equality.
func TokenByValue(name, raw, unit string) StyleValue {
	return StyleValue{Kind: ValueToken, Raw: raw, Unit: unit, TokenName: name, ByValue: true}
}

// Composite constructs a multi-part value.
func Composite(raw string, children []StyleValue) StyleValue {
	return StyleValue{Kind: ValueComposite, Raw: raw, Children: children}
}

// CompareKey returns the identity used for equality during duplicate and
// consistency detection: the token name when one resolved, otherwise the
// normalized raw text. A literal in one dialect and a token reference to
// the same token in another compare equal through this key.
func (v StyleValue) CompareKey() string {
	switch v.Kind {
	case ValueToken:
		return "token:" + v.TokenName
	case ValueComposite:
		keys := make([]string, len(v.Children))
		for i, c := range v.Children {
			keys[i] = c.CompareKey()
		}
		return strings.Join(keys, " ")
	default:
		return v.Raw
	}
}

// IsToken reports whether the value resolved to a registry token.
func (v StyleValue) IsToken() bool { return v.Kind == ValueToken }
