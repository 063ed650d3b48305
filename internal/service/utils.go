package service

import (
	"strings"
	"unicode/utf8"
)

// cleanText trims user supplied text and drops invalid UTF-8 so it can be
// stored in a Postgres TEXT column.
func cleanText(s string) string {
	return strings.TrimSpace(sanitizeUTF8(s))
}

func cleanTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := cleanText(*s)
	return &v
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
