package naming

import "strings"

// DefaultIdentifier is emitted when sanitizing yields an empty identifier.
const DefaultIdentifier = "param"

// Sanitize converts a dotted value name into an emitted identifier: leading
// quote-escape characters are stripped and every '.' becomes '_'.
func Sanitize(name string) string {
	trimmed := strings.TrimLeft(name, "'")
	trimmed = strings.ReplaceAll(trimmed, ".", "_")
	if trimmed == "" {
		return DefaultIdentifier
	}
	return trimmed
}

// DiscriminatorID returns the identifier of the synthetic field selecting the
// active member of the union stored at name.
func DiscriminatorID(name string) string {
	return Sanitize(name) + "DataType"
}

// ToggleID returns the identifier of the synthetic "enable" toggle guarding an
// optional composite stored at name.
func ToggleID(name string) string {
	return "enable" + UpperFirst(Sanitize(name))
}

// UpperFirst upper-cases the first ASCII letter of s.
func UpperFirst(s string) string {
	if s == "" {
		return ""
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// LowerFirst lower-cases the first ASCII letter of s.
func LowerFirst(s string) string {
	if s == "" {
		return ""
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		return string(s[0]-'A'+'a') + s[1:]
	}
	return s
}
