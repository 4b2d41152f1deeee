package normalize

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"$2.50", 250},
		{"$3.00", 300},
		{"2.5", 250},
		{" $ 7.99 ", 799},
		{"$0", 0},
		{"$1.005", 101},
		{"$1.004", 100},
		{"$12", 1200},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurrency(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCurrency_Invalid(t *testing.T) {
	for _, in := range []string{"", "$", "abc", "$1.2.3", "$-1.00", "-$1.00", "$$1", "$1e2", "1E2", "$2.5e-1"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCurrency(in)
			assert.ErrorIs(t, err, ErrInvalidCurrencyFormat)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$2.50", FormatCurrency(250))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$0.07", FormatCurrency(7))
	assert.Equal(t, "$1234.56", FormatCurrency(123456))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("01/01/2020")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("4/8/2018")
	require.NoError(t, err)
	assert.Equal(t, "04/08/2018", FormatDate(got))

	for _, in := range []string{"", "2020-01-01", "13/01/2020", "01/32/2020", "01/01/20"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Wednesday January 01, 2020 12:00AM", FormatTimestamp(ts))

	ts = time.Date(2021, time.July, 14, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Wednesday July 14, 2021 03:04PM", FormatTimestamp(ts))
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = ParseQuantity("-1")
	assert.ErrorIs(t, err, ErrInvalidIntegerFormat)

	_, err = ParseQuantity("4.5")
	assert.ErrorIs(t, err, ErrInvalidIntegerFormat)

	n, err = ParseInteger("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, n)
}

func TestProperty_CurrencyRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("parsing a formatted price yields the same cents", prop.ForAll(
		func(dollars int64, cents int64) bool {
			text := fmt.Sprintf("$%d.%02d", dollars, cents)

			first, err := ParseCurrency(text)
			if err != nil {
				t.Logf("FAIL: parse %q: %v", text, err)
				return false
			}

			second, err := ParseCurrency(FormatCurrency(first))
			if err != nil {
				t.Logf("FAIL: parse formatted %q: %v", FormatCurrency(first), err)
				return false
			}

			return first == second && first == dollars*100+cents
		},
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 99),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_DateRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("formatting a parsed date yields the original text", prop.ForAll(
		func(month int, day int, year int) bool {
			text := fmt.Sprintf("%02d/%02d/%04d", month, day, year)

			parsed, err := ParseDate(text)
			if err != nil {
				t.Logf("FAIL: parse %q: %v", text, err)
				return false
			}

			return FormatDate(parsed) == text
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
		gen.IntRange(1970, 2099),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
