package search

import (
	"fmt"
	"strconv"
	"strings"

	"transcompare/internal/core/utils"
)

// Unescape decodes the escapes understood by extended mode:
// \n \r \t \0 \\ \xHH and \uHHHH. Unknown escapes are kept as written.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}

		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case 'x', 'u':
			width := 2
			if s[i] == 'u' {
				width = 4
			}
			if i+1+width > len(s) {
				return "", badEscape(s, i)
			}
			v, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil {
				return "", badEscape(s, i)
			}
			b.WriteRune(rune(v))
			i += width
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String(), nil
}

func badEscape(s string, i int) error {
	return utils.NewValidationError(fmt.Sprintf("malformed escape \\%c at position %d", s[i], i-1), nil).
		WithContext("text", s)
}
