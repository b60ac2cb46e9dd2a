package naming

import (
	"strings"
	"unicode"
)

// SplitWords breaks an identifier into words on separators ('-', '_', ' ',
// '.', quote) and camelCase boundaries. Runs of capitals stay together until
// the last capital that starts a lower-case word ("HTTPServer" yields
// "HTTP", "Server").
func SplitWords(input string) []string {
	var words []string
	for _, chunk := range strings.FieldsFunc(input, isSeparator) {
		words = append(words, splitCamel(chunk)...)
	}
	return words
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '_', ' ', '.', '\'', '/', '\t':
		return true
	}
	return false
}

func splitCamel(chunk string) []string {
	runes := []rune(chunk)
	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		switch {
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			boundary = true
		case unicode.IsLetter(prev) && unicode.IsDigit(cur):
			boundary = true
		case unicode.IsDigit(prev) && unicode.IsLetter(cur):
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			boundary = true
		}
		if boundary {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// Pascal joins the words of input in PascalCase.
func Pascal(input string) string {
	var b strings.Builder
	for _, word := range SplitWords(input) {
		b.WriteString(capitalize(word))
	}
	return b.String()
}

// LowerCamel joins words in lowerCamelCase.
func LowerCamel(words []string) string {
	var b strings.Builder
	for i, word := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		b.WriteString(capitalize(word))
	}
	return b.String()
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
