package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an integer currency scalar. All balances, prices and salaries in
// the simulation are Money values; a ledger balance is never observably
// negative.
type Money int64

// moneyUnits are the thousands suffixes used when rendering Money.
var moneyUnits = []string{"", "k", "M", "G", "T", "P", "E"}

// Add returns m + o, saturating at the maximum representable value.
func (m Money) Add(o Money) Money {
	if m > math.MaxInt64-o {
		return Money(math.MaxInt64)
	}
	return m + o
}

// Sub returns m - o, saturating at zero.
func (m Money) Sub(o Money) Money {
	if o >= m {
		return 0
	}
	return m - o
}

// MulF scales m by a float factor, rounding half away from zero.
func (m Money) MulF(f float64) Money {
	return Money(math.Round(float64(m) * f))
}

// Div divides m by n with round-half-up semantics. n must be positive.
func (m Money) Div(n int) Money {
	if n <= 0 {
		panic(fmt.Sprintf("Money.Div: non-positive divisor %d", n))
	}
	return (m + Money(n)/2) / Money(n)
}

// SumMoney adds up a slice of Money values.
func SumMoney(values []Money) Money {
	var total Money
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// String renders the amount with thousands suffixes, e.g. 1500 -> "1.5kCr".
func (m Money) String() string {
	value := float64(m)
	unit := ""
	for _, u := range moneyUnits {
		unit = u
		if value < 1000.0 {
			break
		}
		value /= 1000.0
	}
	s := strconv.FormatFloat(value, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + unit + "Cr"
}

// ParseMoney parses the format produced by String, e.g. "1.5kCr" or "250".
// A trailing "Cr" (with or without a space) is optional.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Cr")
	s = strings.TrimSuffix(s, " ")
	if s == "" {
		return 0, fmt.Errorf("parse money: empty input")
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'k':
		multiplier = 1e3
	case 'M':
		multiplier = 1e6
	case 'G':
		multiplier = 1e9
	case 'T':
		multiplier = 1e12
	case 'P':
		multiplier = 1e15
	case 'E':
		multiplier = 1e18
	}
	if multiplier != 1.0 {
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("parse money %q: negative amount", s)
	}
	return Money(value * multiplier), nil
}
