// Package literal decodes the source text of string, integer and float
// literals into values.
package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseString decodes a quoted string literal, including its quotes.
func ParseString(source string) (string, error) {
	if len(source) < 2 || (source[0] != '"' && source[0] != '\'') || source[len(source)-1] != source[0] {
		return "", fmt.Errorf("malformed string literal %s", source)
	}
	body := source[1 : len(source)-1]

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errors.New("unterminated escape sequence")
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case 'x':
			if i+3 > len(body) {
				return "", errors.New("incomplete \\x escape")
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape %q", body[i+1:i+3])
			}
			sb.WriteByte(byte(v))
			i += 2
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 >= len(body) || body[i+1] != '{' || end < 0 {
				return "", errors.New("expected \\u{...} escape")
			}
			digits := body[i+2 : i+end]
			if len(digits) == 0 || len(digits) > 6 {
				return "", fmt.Errorf("invalid unicode escape %q", digits)
			}
			v, err := strconv.ParseUint(digits, 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", fmt.Errorf("invalid unicode escape %q", digits)
			}
			sb.WriteRune(rune(v))
			i += end
		default:
			return "", fmt.Errorf("unknown escape sequence \\%c", body[i])
		}
	}
	return sb.String(), nil
}

// ParseInt decodes a decimal, 0x, 0o or 0b integer literal. Underscores
// may separate digits.
func ParseInt(source string) (int64, error) {
	base := 10
	digits := source
	if len(source) > 2 && source[0] == '0' {
		switch source[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			digits = source[2:]
		}
	}

	digits, ok := stripSeparators(digits)
	if !ok {
		return 0, fmt.Errorf("invalid integer literal %s", source)
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("integer literal %s out of range", source)
		}
		return 0, fmt.Errorf("invalid integer literal %s", source)
	}
	return v, nil
}

// ParseFloat decodes a float literal such as 1.5, 2e10 or 1_000.5
func ParseFloat(source string) (float64, error) {
	digits, ok := stripSeparators(source)
	if !ok {
		return 0, fmt.Errorf("invalid float literal %s", source)
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("float literal %s out of range", source)
		}
		return 0, fmt.Errorf("invalid float literal %s", source)
	}
	return v, nil
}

// Quote renders s as a double-quoted literal that ParseString accepts.
// Bytes that are not valid UTF-8 are written as \xHH escapes.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, `\x%02x`, s[i])
			i++
			continue
		}
		i += size
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// stripSeparators removes underscores between digits. A leading, trailing
// or doubled underscore is rejected.
func stripSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, s != ""
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			sb.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigitLike(s[i-1]) || !isDigitLike(s[i+1]) {
			return "", false
		}
	}
	return sb.String(), true
}

func isDigitLike(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
