package testutils

import "strings"

// StripANSI removes terminal escape sequences (CSI such as colors and
// OSC such as titles) from a string.
func StripANSI(str string) string {
	var b strings.Builder
	runes := []rune(str)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\x1b' {
			b.WriteRune(runes[i])
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		switch runes[i+1] {
		case '[':
			// CSI ends with a byte in @..~
			i += 2
			for i < len(runes) && (runes[i] < '@' || runes[i] > '~') {
				i++
			}
		case ']':
			// OSC ends with BEL or ESC \
			i += 2
			for i < len(runes) && runes[i] != '\a' {
				if runes[i] == '\x1b' && i+1 < len(runes) && runes[i+1] == '\\' {
					i++
					break
				}
				i++
			}
		default:
			i++
		}
	}
	return b.String()
}
