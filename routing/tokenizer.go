package routing

import "strings"

type tokenKind uint8

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// name returns the variable name of a variable token.
func (t token) name() string {
	return t.text[1:]
}

func isNameChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isSeparator(c byte) bool {
	return strings.IndexByte(separators, c) >= 0
}

// tokenize splits a path, without its leading '/', into literals, separators
// and variables.
//
// A variable is '$' followed by the longest run of [A-Za-z0-9_]. A '$' which
// is not followed by a name character is a separator.
func tokenize(path string) []token {
	tokens := make([]token, 0, 8)

	for i := 0; i < len(path); {
		c := path[i]

		switch {
		case c == '$' && i+1 < len(path) && isNameChar(path[i+1]):
			end := i + 2
			for end < len(path) && isNameChar(path[end]) {
				end++
			}

			tokens = append(tokens, token{kind: variable, text: path[i:end], offset: i})
			i = end

		case isSeparator(c):
			tokens = append(tokens, token{kind: separator, text: path[i : i+1], offset: i})
			i++

		default:
			end := i + 1
			for end < len(path) && !isSeparator(path[end]) {
				end++
			}

			tokens = append(tokens, token{kind: literal, text: path[i:end], offset: i})
			i = end
		}
	}

	return tokens
}
