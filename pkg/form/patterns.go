package form

import "github.com/goliatone/go-paramgen/pkg/param"

// Numeric validation patterns. The Optional variants also accept the empty
// string.
const (
	PatternInteger         = `^-?\d+$`
	PatternIntegerOptional = `^$|^-?\d+$`
	PatternDecimal         = `^-?\d+(\.\d+)?$`
	PatternDecimalOptional = `^$|^-?\d+(\.\d+)?$`
)

// inputFor maps a scalar kind to its widget and validation pattern.
func inputFor(kind param.Kind, required bool) (InputType, string) {
	switch kind {
	case param.KindInt:
		if required {
			return InputString, PatternInteger
		}
		return InputString, PatternIntegerOptional
	case param.KindFloat, param.KindDecimal:
		if required {
			return InputString, PatternDecimal
		}
		return InputString, PatternDecimalOptional
	case param.KindBoolean:
		return InputBoolean, ""
	case param.KindXML:
		return InputText, ""
	case param.KindString:
		return InputString, ""
	default:
		return InputJSON, ""
	}
}
