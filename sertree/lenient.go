package sertree

import (
	"math"
	"strconv"
	"strings"
)

// LenientFloat parses the longest numeric prefix of s, ignoring leading
// white space. It returns 0 when s has no numeric prefix.
func LenientFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	n := floatPrefix(s)
	if n == 0 {
		return 0
	}
	// out of range prefixes come back as ±Inf
	f, _ := strconv.ParseFloat(s[:n], 64)
	return f
}

// LenientInt parses the longest integer prefix of s, ignoring leading white
// space. Values out of range saturate; no prefix yields 0.
func LenientInt(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	n := intPrefix(s)
	if n == 0 {
		return 0
	}
	// saturates on ErrRange
	i, _ := strconv.ParseInt(s[:n], 10, 0)
	return int(i)
}

func intPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0
	}
	return i
}

func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
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

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// FormatDouble renders d the way ECMAScript renders numbers: positional
// notation for magnitudes in [1e-6, 1e21), exponent notation otherwise.
func FormatDouble(d float64) string {
	switch {
	case math.IsNaN(d):
		return "NaN"
	case math.IsInf(d, 1):
		return "Infinity"
	case math.IsInf(d, -1):
		return "-Infinity"
	case d == 0:
		return "0"
	}
	abs := math.Abs(d)
	if abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(d, 'g', -1, 64)
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func doubleToInt(d float64) int {
	switch {
	case math.IsNaN(d):
		return 0
	case d >= math.MaxInt:
		return math.MaxInt
	case d <= math.MinInt:
		return math.MinInt
	}
	return int(d)
}
