// Package entropy scores how much information a number appears to carry.
//
// A value's signature is the integer left after removing everything that makes
// a number look engineered: the decimal point, trailing zeros, a small common
// denominator, a square root or a calendar year. Low signatures mean low
// evidentiary value; high signatures are the arbitrary-looking numbers that
// should not repeat by chance.
package entropy

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNonFinite is returned when a signature is requested for NaN or ±Inf.
var ErrNonFinite = errors.New("entropy: non-finite value")

// Signature is the integer digit pattern of a number.
type Signature uint64

const (
	// YearSignature is returned for integers that look like calendar years.
	YearSignature Signature = 100

	minYear = 1900
	maxYear = 2030

	// MaxDenominator bounds the fraction search.
	MaxDenominator = 99
	// FractionTolerance is the largest difference between a value and a
	// candidate fraction that still counts as a match. Below 1 it shrinks in
	// proportion to the value.
	FractionTolerance = 5e-5

	// Values with fewer fractional digits are taken at face value.
	minPatternFractionDigits = 3
	// Only expansions at least this long can be a rounded repeating decimal
	// or an irrational root; shorter decimals terminate.
	minExpansionFractionDigits = 6
	// Squares of values below this collapse to zero and prove nothing.
	minSquareRootMagnitude = 0.01
	// Relative slack allowed when deciding that a product or square is a
	// two-decimal number, capped at maxDecimalSlack.
	decimalTolerance = 1e-9
	maxDecimalSlack  = 1e-6
)

// matcher inspects an absolute value and either returns a definitive
// signature or reports no match.
type matcher func(a float64) (Signature, bool)

// matchers are tried in order; the first match wins.
var matchers = []matcher{
	matchYear,
	matchFraction,
	matchDecimalFraction,
	matchSquareRoot,
}

// NumberSignature returns the entropy signature of v. The result does not
// depend on the sign of v.
func NumberSignature(v float64) (Signature, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	a := math.Abs(v)
	for _, m := range matchers {
		if sig, ok := m(a); ok {
			return sig, nil
		}
	}
	return DigitSignature(a), nil
}

// DigitSignature returns the digits of |v| with the decimal point removed and
// trailing zeros stripped: 123.46 -> 12346, 12000 -> 12, 0.3 -> 3, 0 -> 0.
// The shortest decimal representation is used, so no digits are invented or
// rounded away.
func DigitSignature(v float64) Signature {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	s = strings.Replace(s, ".", "", 1)
	s = strings.TrimLeft(s, "0")
	// Stripping on the string keeps values like 1e300 from overflowing.
	s = strings.TrimRight(s, "0")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// float64 carries at most 17 significant digits, so this cannot happen.
		return Signature(math.MaxUint64)
	}
	return Signature(n)
}

func matchYear(a float64) (Signature, bool) {
	if a == math.Trunc(a) && a >= minYear && a <= maxYear {
		return YearSignature, true
	}
	return 0, false
}

// matchFraction looks for n/d with an integer numerator, smallest d first.
func matchFraction(a float64) (Signature, bool) {
	if !hasPatternPrecision(a) {
		return 0, false
	}
	for d := 1; d <= MaxDenominator; d++ {
		n := math.Round(a * float64(d))
		if n >= 1 && math.Abs(a-n/float64(d)) < FractionTolerance*math.Min(1, a) {
			return DigitSignature(n), true
		}
	}
	return 0, false
}

// matchDecimalFraction looks for q/d where q has at most two decimals, e.g.
// 9.20666… = 27.62/3.
func matchDecimalFraction(a float64) (Signature, bool) {
	if !hasLongExpansion(a) {
		return 0, false
	}
	for d := 1; d <= MaxDenominator; d++ {
		if q, ok := twoDecimal(a * float64(d)); ok {
			return DigitSignature(q), true
		}
	}
	return 0, false
}

// matchSquareRoot detects values produced by sqrt of a short decimal.
func matchSquareRoot(a float64) (Signature, bool) {
	if a < minSquareRootMagnitude || !hasLongExpansion(a) {
		return 0, false
	}
	if q, ok := twoDecimal(a * a); ok {
		return DigitSignature(q), true
	}
	return 0, false
}

// twoDecimal reports whether x is a positive number with at most two decimals,
// allowing for floating point noise.
func twoDecimal(x float64) (float64, bool) {
	q := math.Round(x*100) / 100
	if q > 0 && math.Abs(x-q) <= math.Min(decimalTolerance*x, maxDecimalSlack) {
		return q, true
	}
	return 0, false
}

func hasPatternPrecision(a float64) bool {
	return fractionDigits(a) >= minPatternFractionDigits
}

func hasLongExpansion(a float64) bool {
	return fractionDigits(a) >= minExpansionFractionDigits
}

// fractionDigits counts the digits after the decimal point in the shortest
// representation of a.
func fractionDigits(a float64) int {
	s := strconv.FormatFloat(a, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}
