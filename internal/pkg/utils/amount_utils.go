package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatUnits converts an integer-precision raw amount string into its
// decimal representation, e.g. ("1230000", 6) -> "1.23". Raw amounts stay
// strings end to end so large balances never pass through a float.
func FormatUnits(raw string, decimals int) (string, error) {
	if raw == "" {
		return "0", nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("invalid raw amount %q: %w", raw, err)
	}
	return d.Shift(int32(-decimals)).String(), nil
}

// RawUnits converts a provider-reported decimal amount into an
// integer-precision raw string, e.g. (1.23, 6) -> "1230000". Fractions below
// the token's precision are truncated.
func RawUnits(amount float64, decimals int) string {
	return decimal.NewFromFloat(amount).Shift(int32(decimals)).Truncate(0).String()
}
