package widget

import (
	"fmt"
	"strings"
)

// ProbeCode checks that code is a well-formed token stream: delimiters
// balance and nest, string and char literals terminate, and block comments
// close. It does not look at what the code means.
func ProbeCode(code string) error {
	var stack []rune
	src := []rune(code)
	line := 1
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrMalformedCode, line, fmt.Sprintf(format, args...))
	}

	for i := 0; i < len(src); i++ {
		r := src[i]
		switch {
		case r == '\n':
			line++

		case r == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			i--

		case r == '/' && i+1 < len(src) && src[i+1] == '*':
			depth := 1
			i += 2
			for ; i < len(src) && depth > 0; i++ {
				switch {
				case src[i] == '\n':
					line++
				case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
					depth++
					i++
				case src[i] == '*' && i+1 < len(src) && src[i+1] == '/':
					depth--
					i++
				}
			}
			if depth > 0 {
				return fail("unterminated block comment")
			}
			i--

		case r == 'r' && i+1 < len(src) && (src[i+1] == '"' || src[i+1] == '#') && !identBefore(src, i):
			hashes := 0
			j := i + 1
			for j < len(src) && src[j] == '#' {
				hashes++
				j++
			}
			if j >= len(src) || src[j] != '"' {
				continue
			}
			closing := "\"" + strings.Repeat("#", hashes)
			rest := string(src[j+1:])
			end := strings.Index(rest, closing)
			if end < 0 {
				return fail("unterminated raw string")
			}
			body := []rune(rest[:end])
			line += strings.Count(string(body), "\n")
			i = j + 1 + len(body) + len([]rune(closing)) - 1

		case r == '"':
			i++
			for ; i < len(src) && src[i] != '"'; i++ {
				if src[i] == '\\' {
					i++
				} else if src[i] == '\n' {
					line++
				}
			}
			if i >= len(src) {
				return fail("unterminated string literal")
			}

		case r == '\'':
			switch {
			case i+1 < len(src) && src[i+1] == '\\':
				j := i + 3
				for j < len(src) && src[j] != '\'' && src[j] != '\n' {
					j++
				}
				if j >= len(src) || src[j] != '\'' {
					return fail("unterminated char literal")
				}
				i = j
			case i+2 < len(src) && src[i+2] == '\'':
				i += 2
			}
			// otherwise a lifetime or label such as 'a

		case r == '(' || r == '[' || r == '{':
			stack = append(stack, r)

		case r == ')' || r == ']' || r == '}':
			if len(stack) == 0 {
				return fail("unexpected %q", r)
			}
			open := stack[len(stack)-1]
			if pairs[open] != r {
				return fail("%q closed by %q", open, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fail("unclosed %q", stack[len(stack)-1])
	}
	return nil
}

var pairs = map[rune]rune{'(': ')', '[': ']', '{': '}'}

func identBefore(src []rune, i int) bool {
	if i == 0 {
		return false
	}
	p := src[i-1]
	return p == '_' || (p >= 'a' && p <= 'z') || (p >= 'A' && p <= 'Z') || (p >= '0' && p <= '9')
}
