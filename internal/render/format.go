package render

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ZeroCurrency is printed wherever an amount cannot be formatted
const ZeroCurrency = "$0.00"

// Ellipsis is the default truncation suffix
const Ellipsis = "..."

// ErrInvalidAmount is returned when an amount is missing or not a number
var ErrInvalidAmount = errors.New("invalid currency amount")

// Truncate shortens text longer than maxLen to maxLen-len(suffix) characters plus suffix.
// Lengths are counted in runes.
func Truncate(text string, maxLen int, suffix string) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	keep := maxLen - len([]rune(suffix))
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + suffix
}

// FormatCurrency renders "$1,234.56". A missing amount is an error.
func FormatCurrency(amount decimal.NullDecimal) (string, error) {
	if !amount.Valid {
		return "", ErrInvalidAmount
	}
	return Currency(amount.Decimal), nil
}

// SafeCurrency is FormatCurrency with failures degraded to ZeroCurrency
func SafeCurrency(amount decimal.NullDecimal) string {
	s, err := FormatCurrency(amount)
	if err != nil {
		return ZeroCurrency
	}
	return s
}

// Currency renders a decimal with thousands separators and 2 decimals.
// Negative amounts keep the sign after the dollar: "$-12.50".
func Currency(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	sb.WriteByte('$')
	if d.Round(2).IsNegative() {
		sb.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('.')
	sb.WriteString(frac)
	return sb.String()
}

// FormatDate renders MM/DD/YYYY
func FormatDate(t time.Time) string {
	return t.Format("01/02/2006")
}

// FormatDueDate renders an optional payment date, "N/A" when there is none
func FormatDueDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return FormatDate(*t)
}

// Clock supplies the current time to renderers
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
