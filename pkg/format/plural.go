package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/ast"
)

// Plural category names as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// maxOperandDigits bounds the integer and fraction operands passed to the
// CLDR rules; rules only ever inspect the low-order digits.
const maxOperandDigits = 9

// PluralCategory returns the CLDR plural category of n in the given locale.
func PluralCategory(locale string, kind ast.PluralType, n float64) string {
	return pluralCategory(language.Make(locale), kind, n)
}

func pluralCategory(tag language.Tag, kind ast.PluralType, n float64) string {
	rules := plural.Cardinal
	if kind == ast.Ordinal {
		rules = plural.Ordinal
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return PluralOther
	}

	i, v, w, f, t := pluralOperands(n)
	switch rules.MatchPlural(tag, i, v, w, f, t) {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// pluralOperands computes the CLDR operands of n:
// i integer digits, v visible fraction digit count, w the same without
// trailing zeros, f visible fraction digits, t the same without trailing zeros.
func pluralOperands(n float64) (i, v, w, f, t int) {
	s := strconv.FormatFloat(math.Abs(n), 'f', -1, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")
	i = lowDigits(intPart)

	if len(fracPart) > maxOperandDigits {
		fracPart = fracPart[:maxOperandDigits]
	}
	v = len(fracPart)
	f, _ = strconv.Atoi(fracPart)

	trimmed := strings.TrimRight(fracPart, "0")
	w = len(trimmed)
	t, _ = strconv.Atoi(trimmed)

	return i, v, w, f, t
}

// lowDigits parses the last maxOperandDigits digits of an integer string,
// keeping large non-zero values non-zero.
func lowDigits(s string) int {
	if len(s) <= maxOperandDigits {
		n, _ := strconv.Atoi(s)
		return n
	}
	n, _ := strconv.Atoi(s[len(s)-maxOperandDigits:])
	if n == 0 {
		return int(math.Pow10(maxOperandDigits))
	}
	return n
}
