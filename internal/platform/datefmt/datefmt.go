// Package datefmt formats publication dates the way the blog displays them,
// "dd MMM yyyy" with localised month abbreviations.
package datefmt

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthAbbreviations = map[string][12]string{
	"pt": {"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
	"en": {"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"},
}

// Formatter formats dates for one locale and timezone.
type Formatter struct {
	months   [12]string
	location *time.Location
	tag      language.Tag
}

// New creates a formatter for locale (a BCP 47 tag such as "pt-BR") in the
// named IANA timezone. An empty timezone means UTC.
func New(locale, timezone string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("datefmt.New: invalid locale %q: %w", locale, err)
	}

	base, _ := tag.Base()
	months, ok := monthAbbreviations[base.String()]
	if !ok {
		return nil, fmt.Errorf("datefmt.New: unsupported locale %q", locale)
	}

	location := time.UTC
	if timezone != "" {
		location, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("datefmt.New: %w", err)
		}
	}

	return &Formatter{
		months:   months,
		location: location,
		tag:      tag,
	}, nil
}

// Short formats t as e.g. "15 mar 2021".
func (f *Formatter) Short(t time.Time) string {
	local := t.In(f.location)
	return fmt.Sprintf("%02d %s %d", local.Day(), f.months[local.Month()-1], local.Year())
}

// Title is Short with the month capitalised, e.g. "15 Mar 2021", as shown in
// the post listing. A Caser is stateful, so each call builds its own.
func (f *Formatter) Title(t time.Time) string {
	return cases.Title(f.tag).String(f.Short(t))
}

// ShortPtr formats t, or returns "" when t is nil.
func (f *Formatter) ShortPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.Short(*t)
}

// TitlePtr is Title for optional timestamps.
func (f *Formatter) TitlePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.Title(*t)
}
