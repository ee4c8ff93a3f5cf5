package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxQueryLen = 100
	maxIDLen    = 256
	maxPage     = 10000
)

var reView = regexp.MustCompile(`^(store|cart|STORE|CART)$`)

// Q checks a search query: invalid UTF-8, control characters and terms longer
// than MaxQueryLen runes are rejected. Surrounding whitespace is kept so the
// echoed term matches what was typed; a blank query is valid and means "everything".
func Q(s string) (string, bool) {
	if !printable(s) || utf8.RuneCountInString(s) > MaxQueryLen {
		return "", false
	}
	return s, true
}

func printable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// Page parses a 1-based page number; anything unparsable or below 1 is page 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxPage {
		return maxPage
	} // clamp to avoid abuse
	return n
}

// ID checks the shape of a game identifier. Remote ids are free text, so only
// empty, oversized or non-printable values are refused; callers still look the
// id up in the catalog.
func ID(s string) (string, bool) {
	return s, s != "" && len(s) <= maxIDLen && printable(s)
}

// View validates a screen name from the route.
func View(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reView.MatchString(s)
}
