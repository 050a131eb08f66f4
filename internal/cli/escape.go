package cli

import "fmt"

// Escape decoder states.
const (
	escNormal = iota
	escBackslash
	escControl
	escDecimal
	escOctal
	escHex
)

// DecodeEscapes converts the textual form of a delimiter set into raw
// bytes. Supported notations:
//
//	C escapes:           \\  \a  \b  \f  \t  \r  \n
//	Control characters:  ^J (keeps the low 5 bits of the next byte)
//	Numeric values:      \### and \d### (3 decimal digits),
//	                     \o### (3 octal digits), \x## (2 hex digits)
//
// Any other backslash pair passes the second byte through unchanged. A
// truncated escape or an out-of-range numeric value is an error.
func DecodeEscapes(s string) (string, error) {
	out := make([]byte, 0, len(s))
	state := escNormal
	sum, count := 0, 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case escNormal:
			switch c {
			case '\\':
				state = escBackslash
			case '^':
				state = escControl
			default:
				out = append(out, c)
			}

		case escBackslash:
			state = escNormal
			switch c {
			case '\\':
				out = append(out, '\\')
			case 'a':
				out = append(out, '\a')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case 'n':
				out = append(out, '\n')
			case 'd':
				state, sum, count = escDecimal, 0, 0
			case 'o':
				state, sum, count = escOctal, 0, 0
			case 'x':
				state, sum, count = escHex, 0, 0
			default:
				if c >= '0' && c <= '9' {
					state, sum, count = escDecimal, int(c-'0'), 1
				} else {
					out = append(out, c)
				}
			}

		case escControl:
			out = append(out, c&31)
			state = escNormal

		case escDecimal:
			if c < '0' || c > '9' {
				return "", fmt.Errorf("bad decimal escape at byte %d", i)
			}
			sum = 10*sum + int(c-'0')
			if count++; count == 3 {
				if sum > 255 {
					return "", fmt.Errorf("decimal escape value %d out of range", sum)
				}
				out = append(out, byte(sum))
				state = escNormal
			}

		case escOctal:
			if c < '0' || c > '7' {
				return "", fmt.Errorf("bad octal escape at byte %d", i)
			}
			sum = 8*sum + int(c-'0')
			if count++; count == 3 {
				if sum > 255 {
					return "", fmt.Errorf("octal escape value %d out of range", sum)
				}
				out = append(out, byte(sum))
				state = escNormal
			}

		case escHex:
			v := hexValue(c)
			if v < 0 {
				return "", fmt.Errorf("bad hex escape at byte %d", i)
			}
			sum = 16*sum + v
			if count++; count == 2 {
				out = append(out, byte(sum))
				state = escNormal
			}
		}
	}

	if state != escNormal {
		return "", fmt.Errorf("truncated escape at end of %q", s)
	}
	return string(out), nil
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}
