package form

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-paramgen/pkg/naming"
)

// DefaultLabeler converts a value name segment into a human-friendly label.
// It splits on underscores/dashes and camelCase boundaries and title-cases
// each word ("authConfig" becomes "Auth Config").
func DefaultLabeler(name string) string {
	name = strings.TrimLeft(name, "'")
	if name == "" {
		return ""
	}
	caser := cases.Title(language.English)
	words := naming.SplitWords(name)
	for i, word := range words {
		words[i] = caser.String(word)
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
