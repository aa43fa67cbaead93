// Package core provides the domain types shared across the dashboard:
// calendar dates, signed money amounts, transactions and contracts.
//
// This file contains functions for converting between cent and euro
// representations of monetary amounts.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseSignedCents converts a signed decimal string to cents with half-up
// rounding on the third decimal place. Both dot (12.34) and comma (12,34)
// decimal separators are accepted.
//
// Examples:
//
//	ParseSignedCents("12.34")  -> 1234, nil
//	ParseSignedCents("-12,34") -> -1234, nil
//	ParseSignedCents("12.346") -> 1235, nil (rounds up)
func ParseSignedCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return cents, nil
}

// CentsFromFloat converts a decimal euro amount to cents with half-up
// rounding. Aggregator payloads carry amounts as JSON numbers.
func CentsFromFloat(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Euros returns the euro value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Euros() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount as a plain decimal, e.g. "-12.99".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

// MarshalJSON writes the amount as a JSON number in euros, e.g. -12.99.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or decimal string in euros.
func (m *Money) UnmarshalJSON(data []byte) error {
	cents, err := ParseSignedCents(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	m.Cents = cents
	return nil
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
