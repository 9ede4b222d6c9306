package manifest

import "strings"

const bom = "\uFEFF"

// Unescape expands \n \t \r \\ \" and \'. Any other backslash sequence is
// kept as is, backslash included.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			var r byte
			switch s[i+1] {
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			case 'r':
				r = '\r'
			case '\\':
				r = '\\'
			case '"':
				r = '"'
			case '\'':
				r = '\''
			}
			if r != 0 {
				b.WriteByte(r)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// StripBOM removes a leading UTF-8 byte-order mark.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, bom)
}
