// Package i18n provides the label and message strings shown to operators
// in Portuguese (the default), English and Spanish.
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"

	"noctopo/internal/domain"
)

// Language codes as stored in the theme settings
const (
	PortugueseBR = "pt-br"
	English      = "en"
	Spanish      = "es"
)

// Translator resolves message keys for a requested language
type Translator struct {
	matcher language.Matcher
	codes   []string
}

// New creates a translator for the bundled languages
func New() *Translator {
	return &Translator{
		matcher: language.NewMatcher([]language.Tag{
			language.BrazilianPortuguese,
			language.English,
			language.Spanish,
		}),
		codes: []string{PortugueseBR, English, Spanish},
	}
}

// Language maps a requested language (a theme code or an Accept-Language
// value) to one of the bundled codes
func (t *Translator) Language(requested string) string {
	requested = strings.TrimSpace(requested)
	if _, ok := catalog[strings.ToLower(requested)]; ok {
		return strings.ToLower(requested)
	}
	if requested == "" {
		return PortugueseBR
	}
	_, idx := language.MatchStrings(t.matcher, requested)
	if idx < 0 || idx >= len(t.codes) {
		return PortugueseBR
	}
	return t.codes[idx]
}

// T returns the message for key in lang, falling back to Portuguese and
// then to the key itself
func (t *Translator) T(lang, key string) string {
	if msg, ok := catalog[t.Language(lang)][key]; ok {
		return msg
	}
	if msg, ok := catalog[PortugueseBR][key]; ok {
		return msg
	}
	return key
}

// ErrorKey returns the message key describing err, or "" when err is not
// a known rejection
func ErrorKey(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateConnection):
		return "connectionExists"
	case errors.Is(err, domain.ErrDuplicateDevice):
		return "deviceExists"
	case errors.Is(err, domain.ErrSelfLink):
		return "selfLink"
	case errors.Is(err, domain.ErrAnchorDegree):
		return "anchorDegree"
	case errors.Is(err, domain.ErrInvalidBackup):
		return "invalidBackup"
	case errors.Is(err, domain.ErrNotFound):
		return "notFound"
	default:
		return ""
	}
}

// Message returns the localized message for err, or err.Error() when the
// error is not a known rejection
func (t *Translator) Message(lang string, err error) string {
	if key := ErrorKey(err); key != "" {
		return t.T(lang, key)
	}
	return err.Error()
}
