// Package phonemask formats raw keystroke text as a Brazilian phone number.
package phonemask

import "strings"

const (
	areaLen   = 2
	middleLen = 5
	suffixLen = 4
	maxDigits = areaLen + middleLen + suffixLen
)

// Digits returns s with every character other than ASCII 0-9 removed.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Format masks raw as "(DD) NNNNN-NNNN", growing the mask with the number of
// digits typed so far. Digits beyond the eleventh are dropped.
//
//	""            -> ""
//	"5"           -> "(5)"
//	"5199988"     -> "(51) 99988"
//	"51999887766" -> "(51) 99988-7766"
func Format(raw string) string {
	d := Digits(raw)
	if len(d) > maxDigits {
		d = d[:maxDigits]
	}

	switch n := len(d); {
	case n == 0:
		return ""
	case n <= areaLen:
		return "(" + d + ")"
	case n <= areaLen+middleLen:
		return "(" + d[:areaLen] + ") " + d[areaLen:]
	default:
		return "(" + d[:areaLen] + ") " + d[areaLen:areaLen+middleLen] + "-" + d[areaLen+middleLen:]
	}
}
