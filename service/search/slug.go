package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripMarks  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	nonSlugChar = regexp.MustCompile(`[^\w\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Slugify turns "Áo Thun Đỏ" into "ao-thun-do".
func Slugify(text string) string {
	s, _, err := transform.String(stripMarks, text)
	if err != nil {
		s = text
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == 'đ' || r == 'Đ':
			return 'd'
		case r > unicode.MaxASCII:
			return -1
		}
		return r
	}, s)
	s = nonSlugChar.ReplaceAllString(strings.ToLower(s), "")
	s = strings.TrimSpace(s)
	return whitespace.ReplaceAllString(s, "-")
}
