package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseLenientInt reads the leading integer of text (after leading
// whitespace, optional sign, then digits) and ignores anything after it.
// Text with no leading digits yields def.
func ParseLenientInt(text string, def int) int {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}
	return n
}

// ParseLenientFloat reads the longest leading decimal number of text
// (sign, digits, fraction, exponent) and ignores anything after it.
// Text with no numeric prefix, or a prefix that is not finite, yields def.
func ParseLenientFloat(text string, def float64) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := floatPrefixLen(s)
	if end == 0 {
		return def
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return def
	}
	return v
}

// floatPrefixLen returns the length of the longest prefix of s that is a
// decimal floating point literal, or 0.
func floatPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	mantissa := i - intStart
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		frac := j - i - 1
		if mantissa > 0 || frac > 0 {
			mantissa += frac
			i = j
		}
	}
	if mantissa == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// nonNegative clamps parsed counters to the >= 0 domain.
func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
