// Package numparse is the canonical numeric contract for the whole pipeline:
// every monetary or count value pulled out of text goes through ParseValue.
package numparse

import (
	"strconv"
	"strings"
)

var suffixMultipliers = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
}

// ParseValue parses a textual monetary value ("$2.5M", "1,200", "3B") into a
// float. The second return is false when the text is not a number; ParseValue
// never panics and never returns NaN.
func ParseValue(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	last := s[len(s)-1]
	if mult, ok := suffixMultipliers[upperByte(last)]; ok {
		prefix := s[:len(s)-1]
		n, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return 0, false
		}
		return n * mult, true
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
