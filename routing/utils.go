package routing

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower folds s to lower case. A Caser keeps state, so a new one is built
// for every non-trivial string.
func lower(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf || (c >= 'A' && c <= 'Z') {
			return cases.Lower(language.Und).String(s)
		}
	}

	return s
}

// stripActionPrefix removes prefix from action, unless nothing would remain.
func stripActionPrefix(action, prefix string) string {
	if prefix == "" || len(action) <= len(prefix) {
		return action
	}

	if strings.EqualFold(action[:len(prefix)], prefix) {
		return action[len(prefix):]
	}

	return action
}

// unescape decodes a path token, keeping it raw when it is not valid
// percent-encoding.
func unescape(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}

	if u, err := url.PathUnescape(s); err == nil {
		return u
	}

	return s
}

func indexOf(items []string, s string) int {
	for i := range items {
		if items[i] == s {
			return i
		}
	}

	return -1
}
