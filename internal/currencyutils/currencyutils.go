// Package currencyutils parses and formats ledger amounts.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDecimalSeparator matches Brazilian bank exports ("1.234,56").
const DefaultDecimalSeparator = ','

var currencyNoise = regexp.MustCompile(`[R$€£¥\s\x{00A0}']`)

// ParseAmount parses a signed amount written with the given decimal separator.
// Currency symbols, spaces and apostrophes are ignored, the other separator is
// treated as a thousands separator, and a trailing minus or surrounding
// parentheses mark a negative value. The empty string is an error: a blank
// amount is not the same thing as zero.
func ParseAmount(amountStr string, decimalSep rune) (decimal.Decimal, error) {
	standardized, err := StandardizeAmount(amountStr, decimalSep)
	if err != nil {
		return decimal.Zero, err
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount rewrites amountStr into the form decimal.NewFromString accepts.
func StandardizeAmount(amountStr string, decimalSep rune) (string, error) {
	s := currencyNoise.ReplaceAllString(strings.TrimSpace(amountStr), "")
	if s == "" {
		return "", fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		negative = !negative
		s = strings.TrimSuffix(s, "-")
	}

	switch decimalSep {
	case ',':
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case '.':
		s = strings.ReplaceAll(s, ",", "")
	default:
		return "", fmt.Errorf("unsupported decimal separator %q", decimalSep)
	}

	if negative {
		if strings.HasPrefix(s, "-") {
			return "", fmt.Errorf("ambiguous sign in amount '%s'", amountStr)
		}
		s = "-" + s
	}
	return s, nil
}

// FormatAmount renders amount with two decimal places and the given separator,
// without thousands grouping (e.g. "-1500,00").
func FormatAmount(amount decimal.Decimal, decimalSep rune) string {
	formatted := amount.StringFixed(2)
	if decimalSep != '.' {
		formatted = strings.Replace(formatted, ".", string(decimalSep), 1)
	}
	return formatted
}
