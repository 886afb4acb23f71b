package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RequiredFields are the fields every processed document must have, in the order they are
// checked.
var RequiredFields = []string{"title", "date"}

// DateFormat is the canonical layout of the "date" field after processing.
const DateFormat = "2006-01-02"

// timestampLayouts are tried first, in order. They cover full timestamps with a time of day and
// an optional zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
}

// Process returns a normalized copy of m. It rewrites "date" to DateFormat, checks that the
// RequiredFields are present and derives "slug" from "title" when the document does not set one.
// The input is never modified.
func Process(m Metadata) (Metadata, error) {
	processed := m.Clone()

	if date, ok := processed["date"]; ok {
		std, err := StandardizeDate(date)
		if err != nil {
			return nil, err
		}
		processed["date"] = std
	}

	if err := ensureRequiredFields(processed); err != nil {
		return nil, err
	}

	generateDerivedFields(processed)
	return processed, nil
}

// StandardizeDate parses date in one of the accepted formats and returns it as YYYY-MM-DD.
//
// A value of ten characters containing a slash must be DD/MM/YYYY (two, two and four characters
// around the slashes) and is read day first. Other values are tried as a full timestamp, then as
// YYYY-MM-DD, then as MM/DD/YYYY. Surrounding whitespace is not removed.
func StandardizeDate(date string) (string, error) {
	if strings.TrimSpace(date) == "" {
		return "", DateParseError(date, errors.New("date string is empty"))
	}
	if len(date) < 8 {
		return "", DateParseError(date, errors.New("date string is too short"))
	}

	value := date
	if strings.Contains(date, "/") && len(date) == 10 {
		parts := strings.Split(date, "/")
		if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
			return "", DateParseError(date, errors.New("invalid DD/MM/YYYY date format"))
		}
		value = parts[2] + "-" + parts[1] + "-" + parts[0]
	}

	t, err := parseDate(value)
	if err != nil {
		return "", DateParseError(date, err)
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()), nil
}

func parseDate(value string) (t time.Time, err error) {
	for _, layout := range timestampLayouts {
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if t, err = time.Parse(DateFormat, value); err == nil {
		return t, nil
	}
	return time.Parse("1/2/2006", value)
}

func ensureRequiredFields(m Metadata) error {
	for _, field := range RequiredFields {
		if strings.TrimSpace(m[field]) == "" {
			return MissingFieldError(field)
		}
	}
	return nil
}

func generateDerivedFields(m Metadata) {
	if _, ok := m["slug"]; ok {
		return
	}
	if title, ok := m["title"]; ok {
		m["slug"] = Slug(title)
	}
}

// Slug derives a URL slug from a title: the title is lowercased and every space becomes a hyphen.
// Nothing else is changed, so punctuation is kept and runs of spaces become runs of hyphens.
func Slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
