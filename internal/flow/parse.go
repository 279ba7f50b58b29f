package flow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeNumber prepares user-typed numeric text for parsing. The decimal
// separators '.' and ',' are accepted interchangeably.
func normalizeNumber(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
}

// ParseAmount parses a money amount typed by the user into an exact decimal.
func ParseAmount(text string) (decimal.Decimal, error) {
	norm := normalizeNumber(text)
	if norm == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	amount, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a number: %w", text, err)
	}
	return amount, nil
}

// ParseFloat parses a non-money numeric value (e.g. mileage) typed by the user.
func ParseFloat(text string) (float64, error) {
	norm := normalizeNumber(text)
	if norm == "" {
		return 0, fmt.Errorf("empty number")
	}
	value, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number: %w", text, err)
	}
	return value, nil
}
