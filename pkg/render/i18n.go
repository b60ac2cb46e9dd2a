package render

import (
	"errors"
	"strings"
)

// LabelKeyPrefix prefixes the translation keys looked up for form labels.
const LabelKeyPrefix = "labels."

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves localized strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. err is nil when the translator returned an empty string.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// MapTranslator is a static Translator keyed by locale then key. The empty
// locale acts as the default table.
type MapTranslator map[string]map[string]string

// Translate looks key up in locale, then in the default table.
func (m MapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if msg, ok := m[locale][key]; ok {
		return msg, nil
	}
	if msg, ok := m[""][key]; ok {
		return msg, nil
	}
	return "", errors.New("render: missing translation for " + key)
}

// LocalizedLabeler wraps fallback so value name segments are first looked up
// as LabelKeyPrefix+segment in t. fallback produces the text when the lookup
// misses; onMissing, when set, overrides that choice.
func LocalizedLabeler(locale string, t Translator, fallback func(string) string, onMissing MissingTranslationHandler) func(string) string {
	return func(segment string) string {
		def := segment
		if fallback != nil {
			def = fallback(segment)
		}
		return translate(locale, LabelKeyPrefix+strings.TrimLeft(segment, "'"), def, t, onMissing)
	}
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, fallback, ErrMissingTranslator)
		}
		return fallback
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
