// internal/app/system/format/number.go
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/locales/pt_BR"
)

var ptBR = pt_BR.New()

// Currency renders v as Brazilian reais with two decimals, matching the
// browser's pt-BR output: "R$\u00a01.234,50", "-R$\u00a05,00". A nil value
// is the zero-currency string "R$ 0,00".
//
// The locales table carries no "R$" symbol for BRL, so only the number
// part comes from it.
func Currency(v *float64) string {
	if v == nil {
		return "R$ 0,00"
	}
	n := math.Round(*v*100) / 100
	sign := ""
	if n < 0 {
		sign = "-"
	}
	return sign + "R$\u00a0" + ptBR.FmtNumber(math.Abs(n), 2)
}

// Money is Currency for a plain value.
func Money(v float64) string {
	return Currency(&v)
}

// Number renders v with pt-BR grouping and at most three fraction digits,
// dropping trailing zeros. A nil value renders as "0".
func Number(v *float64) string {
	if v == nil {
		return "0"
	}
	return ptBR.FmtNumber(*v, fractionDigits(*v, 3))
}

// Percent renders v (already a percentage, 12.5 for 12,5%) with exactly one
// decimal. A nil value renders as "0%".
func Percent(v *float64) string {
	if v == nil {
		return "0%"
	}
	return ptBR.FmtPercent(*v, 1)
}

// fractionDigits counts the significant decimals of v rounded to max places.
func fractionDigits(v float64, max int) uint64 {
	s := strconv.FormatFloat(v, 'f', max, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	frac := strings.TrimRight(s[dot+1:], "0")
	return uint64(len(frac))
}
