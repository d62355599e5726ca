// Package calendar provides locale-aware weekday naming for the temporal
// views. The dashboards label weekdays in Spanish, Monday first; the locale is
// resolved through BCP 47 matching so an English deployment only changes
// configuration.
package calendar

import (
	"time"

	"golang.org/x/text/language"
)

// Localizer resolves weekday names for one locale.
type Localizer struct {
	tag   language.Tag
	names [7]string // Monday-first
}

var supported = []language.Tag{
	language.Spanish, // default
	language.English,
}

var weekdayNames = map[language.Tag][7]string{
	language.Spanish: {"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"},
	language.English: {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
}

var matcher = language.NewMatcher(supported)

// NewLocalizer builds a localizer for a BCP 47 tag like "es" or "en-US".
// Unknown locales fall back to Spanish, the corpus language.
func NewLocalizer(locale string) *Localizer {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _, _ := tag.Raw()
	resolved := language.Spanish
	if base == mustBase(language.English) {
		resolved = language.English
	}
	return &Localizer{tag: resolved, names: weekdayNames[resolved]}
}

func mustBase(t language.Tag) language.Base {
	b, _, _ := t.Raw()
	return b
}

// Tag returns the resolved language tag.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// WeekdayName returns the localized name for a date's weekday.
func (l *Localizer) WeekdayName(t time.Time) string {
	return l.names[mondayIndex(t.Weekday())]
}

// Names returns all weekday names in Monday-first order.
func (l *Localizer) Names() [7]string {
	return l.names
}

// MondayIndex maps a time.Weekday onto the Monday-first axis used by every
// weekday chart: Monday=0 .. Sunday=6.
func MondayIndex(d time.Weekday) int {
	return mondayIndex(d)
}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
