package types

import (
	"strings"
	"unicode/utf8"
)

// Literal and identifier recognizers. Every predicate trims surrounding
// whitespace before matching, so " 5 " is an integer.

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isOctalDigit(c byte) bool {
	return '0' <= c && c <= '7'
}

// IsIdentifier reports whether text names a variable or a type. An
// identifier starts with a letter, or with '_' followed by at least one more
// word character; a lone "_" is not an identifier.
func IsIdentifier(text string) bool {
	s := strings.TrimSpace(text)
	if s == "" {
		return false
	}
	switch {
	case isLetter(s[0]):
	case s[0] == '_':
		if len(s) < 2 {
			return false
		}
	default:
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isWordChar(s[i]) {
			return false
		}
	}
	return true
}

// IsMethodIdentifier reports whether text names a function. Unlike
// variables, function names must start with a letter.
func IsMethodIdentifier(text string) bool {
	s := strings.TrimSpace(text)
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isWordChar(s[i]) {
			return false
		}
	}
	return true
}

// digits returns the length of the run of decimal digits at the start of s.
func digits(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

// IsInteger matches -?[0-9]+.
func IsInteger(text string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(text), "-")
	return s != "" && digits(s) == len(s)
}

// IsDouble matches an optionally negative decimal number: "5", "5.", "5.25"
// or ".25".
func IsDouble(text string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(text), "-")
	if s == "" {
		return false
	}
	whole := digits(s)
	rest := s[whole:]
	if rest == "" {
		return whole > 0
	}
	if rest[0] != '.' {
		return false
	}
	frac := digits(rest[1:])
	if frac != len(rest)-1 {
		return false
	}
	return whole > 0 || frac > 0
}

// IsBoolean matches true, false, or any numeric literal.
func IsBoolean(text string) bool {
	s := strings.TrimSpace(text)
	return s == "true" || s == "false" || IsDouble(s)
}

// IsChar matches a single-quoted character: 'a', 'é', '\n', '\123' or
// '\x7f'. An escape of any single character is accepted, so '\x' is valid.
func IsChar(text string) bool {
	s := strings.TrimSpace(text)
	if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return false
	}
	body := s[1 : len(s)-1]
	if body[0] != '\\' {
		r, size := utf8.DecodeRuneInString(body)
		return size == len(body) && r != utf8.RuneError && r != '\'' && r != '\n'
	}
	esc := body[1:]
	switch {
	case esc == "":
		return false
	case utf8.RuneCountInString(esc) == 1:
		return true
	case esc[0] == 'x':
		hex := esc[1:]
		if len(hex) < 1 || len(hex) > 2 {
			return false
		}
		for i := 0; i < len(hex); i++ {
			if !isHexDigit(hex[i]) {
				return false
			}
		}
		return true
	case len(esc) <= 3:
		for i := 0; i < len(esc); i++ {
			if !isOctalDigit(esc[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsString matches a double-quoted string. A backslash escapes the character
// after it; an unescaped quote may only close the literal.
func IsString(text string) bool {
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != '"' {
		return false
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i == len(s)-1
		}
	}
	return false
}
