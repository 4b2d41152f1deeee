// Package normalize converts loosely formatted CSV and console text into
// canonical values and formats them back for display and export.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CurrencySymbol prefixes every formatted price.
	CurrencySymbol = "$"

	// DateLayout is the MM/DD/YYYY form used by the import and backup files.
	DateLayout = "01/02/2006"

	// TimestampLayout is the long form shown on screen.
	TimestampLayout = "Monday January 02, 2006 03:04PM"
)

var (
	ErrInvalidCurrencyFormat = errors.New("invalid currency format")
	ErrInvalidDateFormat     = errors.New("invalid date format")
	ErrInvalidIntegerFormat  = errors.New("invalid integer format")
)

var hundred = decimal.NewFromInt(100)

// ParseCurrency turns text such as "$2.50" into cents. The currency symbol is
// optional. Fractions of a cent are rounded half away from zero.
func ParseCurrency(text string) (int64, error) {
	raw := strings.TrimSpace(text)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, CurrencySymbol))
	if raw == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidCurrencyFormat)
	}
	// decimal also reads exponents; prices are plain dollars and cents
	if strings.ContainsAny(raw, "eE") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCurrencyFormat, text)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCurrencyFormat, text)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidCurrencyFormat, text)
	}

	cents := amount.Mul(hundred).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidCurrencyFormat, text)
	}

	return cents.IntPart(), nil
}

// FormatCurrency renders cents as a dollar amount with two decimals.
func FormatCurrency(cents int64) string {
	return CurrencySymbol + decimal.New(cents, -2).StringFixed(2)
}

// ParseDate parses an MM/DD/YYYY date into midnight UTC.
func ParseDate(text string) (time.Time, error) {
	t, err := time.Parse("1/2/2006", strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, text)
	}
	return t, nil
}

// FormatDate renders t as MM/DD/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp renders t in the long on-screen form.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseInteger parses a base 10 integer, ignoring surrounding whitespace.
func ParseInteger(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIntegerFormat, text)
	}
	return n, nil
}

// ParseQuantity parses a units-on-hand count. Negative counts are rejected.
func ParseQuantity(text string) (int, error) {
	n, err := ParseInteger(text)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: quantity %d is negative", ErrInvalidIntegerFormat, n)
	}
	return n, nil
}
