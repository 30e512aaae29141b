package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/energy-billing/invoice-reader/dto"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func splitLines(text string) []string {
	return strings.Split(lineBreaks.Replace(text), "\n")
}

// ParseBRNumber parses a number written with "." as thousands separator and
// "," as decimal separator, e.g. "1.234,56".
func ParseBRNumber(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

// substr returns the characters of s in span, clamped to the string bounds.
func substr(s string, span dto.Span) string {
	runes := []rune(s)
	start, end := clamp(span.Start, len(runes)), clamp(span.End, len(runes))
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// runeIndex is strings.Index counted in characters instead of bytes.
func runeIndex(s, sep string) int {
	i := strings.Index(s, sep)
	if i < 0 {
		return i
	}
	return utf8.RuneCountInString(s[:i])
}
