// Package normalize canonicalises raw form and query input.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Email trims and lowercases an e-mail address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding space and collapses inner runs; case is kept.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AuthMethod trims and lowercases a sign-in method.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases a status key.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims and lowercases a role tag.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Roles normalises role tags, dropping blanks and duplicates.
func Roles(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = Role(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// RefID trims a reference select value. "todos"/"all" mean no selection.
func RefID(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "all", "todos", "todas":
		return ""
	}
	return s
}

// Phone keeps digits and a leading "+".
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Amount parses a money value typed as "1.234,50", "1234,5" or "1234.50".
// Blank or unparseable input yields nil.
func Amount(s string) *float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Coordinate parses a latitude or longitude, accepting a decimal comma.
// Blank, unparseable or out-of-range input yields nil.
func Coordinate(s string, limit float64) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < -limit || v > limit {
		return nil
	}
	return &v
}
